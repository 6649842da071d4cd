package session

// User 正規化後的登入者資料。欄位缺漏時一律以零值補上。
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	IsAdmin   bool   `json:"is_admin"`
}

// UserFields 部分更新用，nil 欄位不動
type UserFields struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Username  *string `json:"username,omitempty"`
}

// Session 目前登入狀態：user + bearer token。
// IsAuthenticated 不是獨立欄位，一律由 token 推導。
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// IsAuthenticated token 非空即視為已登入
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}
