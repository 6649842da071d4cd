package middleware

import (
	"net/http"
	"strings"

	"tickify/internal/guard"

	"github.com/gin-gonic/gin"
)

// apiPrefix 去掉後剩下的路徑才是守衛規則認得的頁面路徑
// （/api/v1/admin/settings → /admin/settings）
const apiPrefix = "/api/v1"

// Guard 依路由守衛規則檢查目前請求。掛在 /admin 群組，接在 RequireAuth 之後。
// API 不能像瀏覽器一樣 302，判定不放行時以狀態碼 + redirect 欄位回應。
func Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		path := strings.TrimPrefix(c.Request.URL.Path, apiPrefix)

		decision := guard.Decide(path, claims != nil, claims != nil && claims.IsAdmin)
		switch decision.Action {
		case guard.Allow:
			c.Next()
		case guard.RedirectLogin:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "authentication required",
				"redirect": decision.Redirect,
			})
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "access denied",
				"redirect": decision.Redirect,
			})
		}
	}
}
