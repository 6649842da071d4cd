package middleware

import (
	"net/http"
	"strings"

	"tickify/internal/guard"
	"tickify/internal/service"

	"github.com/gin-gonic/gin"
)

// ContextClaimsKey 放在 gin context 裡的已驗證 claims
const ContextClaimsKey = "auth_claims"

// RequireAuth 驗證 Bearer token。未帶或無效一律 401，
// 回應帶 redirect 欄位讓 client 知道該導去哪裡。
func RequireAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortUnauthorized(c, "authentication required")
			return
		}

		claims, err := authService.VerifyToken(token)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// RequireAdmin 必須接在 RequireAuth 之後
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil {
			abortUnauthorized(c, "authentication required")
			return
		}
		if !claims.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "admin access required",
				"redirect": guard.UserHome,
			})
			return
		}
		c.Next()
	}
}

// ClaimsFrom 取出 RequireAuth 放進 context 的 claims，沒有就回 nil
func ClaimsFrom(c *gin.Context) *service.Claims {
	v, ok := c.Get(ContextClaimsKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, msg string) {
	decision := guard.Decide(c.Request.URL.Path, false, false)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":    msg,
		"redirect": decision.Redirect,
	})
}
