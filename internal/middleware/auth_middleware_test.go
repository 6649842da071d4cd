package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tickify/internal/middleware"
	"tickify/internal/mocks"
	"tickify/internal/service"
	apperrors "tickify/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type errorBody struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	authService := mocks.NewAuthServiceMock()
	router := gin.New()
	router.GET("/api/v1/orders", middleware.RequireAuth(authService), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, "authentication required", body.Error)
	assert.Equal(t, "/login?redirect=%2Fapi%2Fv1%2Forders", body.Redirect)
	authService.AssertNotCalled(t, "VerifyToken", mock.Anything)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	authService := mocks.NewAuthServiceMock()
	router := gin.New()
	router.GET("/api/v1/orders", middleware.RequireAuth(authService), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, header := range []string{"Token abc", "Bearer", "abc"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header=%q", header)
	}
	authService.AssertNotCalled(t, "VerifyToken", mock.Anything)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	authService := mocks.NewAuthServiceMock()
	authService.On("VerifyToken", "bad-token").Return(nil, apperrors.ErrInvalidToken)

	router := gin.New()
	router.GET("/api/v1/orders", middleware.RequireAuth(authService), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, "invalid or expired token", body.Error)
	assert.NotEmpty(t, body.Redirect)
}

func TestRequireAuth_ValidTokenExposesClaims(t *testing.T) {
	authService := mocks.NewAuthServiceMock()
	authService.On("VerifyToken", "good-token").Return(&service.Claims{UserID: 7, IsAdmin: true}, nil)

	var seen *service.Claims
	router := gin.New()
	router.GET("/api/v1/orders", middleware.RequireAuth(authService), func(c *gin.Context) {
		seen = middleware.ClaimsFrom(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "bearer good-token") // scheme 不分大小寫
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, seen)
	assert.Equal(t, 7, seen.UserID)
	assert.True(t, seen.IsAdmin)
}

func TestRequireAdmin(t *testing.T) {
	router := gin.New()
	router.GET("/api/v1/admin/ping",
		func(c *gin.Context) { c.Set(middleware.ContextClaimsKey, &service.Claims{UserID: 1, IsAdmin: false}) },
		middleware.RequireAdmin(),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, "/", body.Redirect)
}

func guardRouter(claims *service.Claims) *gin.Engine {
	router := gin.New()
	router.GET("/api/v1/admin/settings",
		func(c *gin.Context) {
			if claims != nil {
				c.Set(middleware.ContextClaimsKey, claims)
			}
		},
		middleware.Guard(),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return router
}

func TestGuard_AdminAllowed(t *testing.T) {
	router := guardRouter(&service.Claims{UserID: 1, IsAdmin: true})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/settings", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuard_NonAdminForbidden(t *testing.T) {
	router := guardRouter(&service.Claims{UserID: 1, IsAdmin: false})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/settings", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, "/", body.Redirect)
}

func TestGuard_UnauthenticatedGets401WithLoginRedirect(t *testing.T) {
	router := guardRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/settings", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeErrorBody(t, w)
	// API prefix 先剝掉再判定，redirect 是頁面路徑
	assert.Equal(t, "/login?redirect=%2Fadmin%2Fsettings", body.Redirect)
}
