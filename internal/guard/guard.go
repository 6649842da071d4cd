package guard

import (
	"net/url"
	"strings"
)

// Action 路由守衛的判定結果
type Action int

const (
	Allow Action = iota
	RedirectLogin
	RedirectAdminHome
	RedirectUserHome
)

const (
	LoginPath   = "/login"
	AdminHome   = "/admin"
	UserHome    = "/"
	adminPrefix = "/admin"
)

// Decision 單次導航的判定。Redirect 只在 Action != Allow 時有值。
type Decision struct {
	Action   Action
	Redirect string
}

// Decide 純函式：依 (path, isAuthenticated, isAdmin) 決定放行或導向。
// 每次導航都要重新評估，不可快取——登入登出會改變輸入。
// 規則（依序）：
//  1. 未登入 → 導向 /login，原路徑放在 redirect query 供登入後返回
//  2. admin 走到非 /admin 頁 → 導向 /admin
//  3. 非 admin 走到 /admin 頁 → 導向 /
//  4. 其餘放行
func Decide(path string, isAuthenticated, isAdmin bool) Decision {
	if !isAuthenticated {
		return Decision{
			Action:   RedirectLogin,
			Redirect: LoginPath + "?redirect=" + url.QueryEscape(path),
		}
	}

	if isAdmin && !strings.HasPrefix(path, adminPrefix) {
		return Decision{Action: RedirectAdminHome, Redirect: AdminHome}
	}

	if !isAdmin && strings.HasPrefix(path, adminPrefix) {
		return Decision{Action: RedirectUserHome, Redirect: UserHome}
	}

	return Decision{Action: Allow}
}
