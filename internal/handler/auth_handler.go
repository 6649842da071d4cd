package handler

import (
	"errors"
	"net/http"

	"tickify/internal/middleware"
	"tickify/internal/model"
	"tickify/internal/service"
	apperrors "tickify/pkg/app_errors"
	"tickify/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service     service.AuthService
	userService service.UserService
}

func NewAuthHandler(service service.AuthService, userService service.UserService) *AuthHandler {
	return &AuthHandler{service: service, userService: userService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	resp, err := h.service.Register(c, req)
	if err != nil {
		h.handleAuthError(c, err, "Register")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	resp, err := h.service.Login(c, req)
	if err != nil {
		h.handleAuthError(c, err, "Login")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me 回傳目前登入者資料，client 重新整理後用它補回 session
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	user, err := h.service.GetUser(c, claims.UserID)
	if err != nil {
		h.handleAuthError(c, err, "Me")
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

// UpdateMe 更新目前登入者的個人資料（部分欄位）
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Username  *string `json:"username"`
	}
	if err := BindJson(c, &req); err != nil {
		return
	}
	if req.FirstName == nil && req.LastName == nil && req.Username == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one field is required"})
		return
	}

	user, err := h.userService.UpdateProfile(c, claims.UserID, model.UpdateUserParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
	})
	if err != nil {
		h.handleAuthError(c, err, "UpdateMe")
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEmailTaken):
		log.Warn("Email already registered")
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		log.Warn("Invalid credentials")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, apperrors.ErrUserNotFound):
		log.Warn("User not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
