package handler

import (
	"errors"
	"net/http"
	"strconv"

	"tickify/internal/model"
	"tickify/internal/service"
	apperrors "tickify/pkg/app_errors"
	"tickify/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PromoHandler struct {
	service service.PromoService
}

func NewPromoHandler(service service.PromoService) *PromoHandler {
	return &PromoHandler{service: service}
}

func (h *PromoHandler) Create(c *gin.Context) {
	var req model.CreatePromoRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	created, err := h.service.Create(c, req)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *PromoHandler) ListByEvent(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}
	promos, err := h.service.ListByEventID(c, eventID)
	if err != nil {
		h.handleError(c, err, "ListByEvent")
		return
	}
	c.JSON(http.StatusOK, promos)
}

// SetActiveRequest 啟用/停用優惠碼
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *PromoHandler) SetActive(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid promo id"})
		return
	}
	var req SetActiveRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	if err := h.service.SetActive(c, id, *req.Active); err != nil {
		h.handleError(c, err, "SetActive")
		return
	}
	c.Status(http.StatusOK)
}

func (h *PromoHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid promo id"})
		return
	}
	if err := h.service.Delete(c, id); err != nil {
		h.handleError(c, err, "Delete")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PromoHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrPromoNotFound):
		log.Warn("Promo code not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Promo code not found"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
