package handler

import (
	"errors"
	"net/http"
	"strconv"

	"tickify/internal/middleware"
	"tickify/internal/model"
	"tickify/internal/service"
	apperrors "tickify/pkg/app_errors"
	"tickify/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler 管理後台：全域設定、使用者管理、儀表板、廣播
type AdminHandler struct {
	settingsService  service.SettingsService
	userService      service.UserService
	analyticsService service.AnalyticsService
	broadcastService service.BroadcastService
}

func NewAdminHandler(
	settingsService service.SettingsService,
	userService service.UserService,
	analyticsService service.AnalyticsService,
	broadcastService service.BroadcastService,
) *AdminHandler {
	return &AdminHandler{
		settingsService:  settingsService,
		userService:      userService,
		analyticsService: analyticsService,
		broadcastService: broadcastService,
	}
}

func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Get(c)
	if err != nil {
		h.handleError(c, err, "GetSettings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var params model.UpdateSettingsParams
	if err := BindJson(c, &params); err != nil {
		return
	}
	settings, err := h.settingsService.Update(c, params)
	if err != nil {
		h.handleError(c, err, "UpdateSettings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c)
	if err != nil {
		h.handleError(c, err, "ListUsers")
		return
	}
	responses := make([]*model.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}
	c.JSON(http.StatusOK, responses)
}

func (h *AdminHandler) BanUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}
	if err := h.userService.Ban(c, id); err != nil {
		h.handleError(c, err, "BanUser")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) Summary(c *gin.Context) {
	summary, err := h.analyticsService.AdminSummary(c)
	if err != nil {
		h.handleError(c, err, "Summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *AdminHandler) EventSales(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}
	summary, err := h.analyticsService.EventSales(c, eventID)
	if err != nil {
		h.handleError(c, err, "EventSales")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *AdminHandler) CreateBroadcast(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	var req model.CreateBroadcastRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	created, err := h.broadcastService.Create(c, claims.UserID, req)
	if err != nil {
		h.handleError(c, err, "CreateBroadcast")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *AdminHandler) ListBroadcasts(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}
	broadcasts, err := h.broadcastService.ListByEventID(c, eventID)
	if err != nil {
		h.handleError(c, err, "ListBroadcasts")
		return
	}
	c.JSON(http.StatusOK, broadcasts)
}

func (h *AdminHandler) SendBroadcast(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid broadcast id"})
		return
	}
	broadcast, err := h.broadcastService.Send(c, id)
	if err != nil {
		h.handleError(c, err, "SendBroadcast")
		return
	}
	c.JSON(http.StatusOK, broadcast)
}

func (h *AdminHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		log.Warn("User not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, apperrors.ErrBroadcastNotFound):
		log.Warn("Broadcast not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Broadcast not found or already sent"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
