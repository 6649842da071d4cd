package handler

import (
	"errors"
	"net/http"
	"strconv"

	"tickify/internal/middleware"
	"tickify/internal/service"
	apperrors "tickify/pkg/app_errors"
	"tickify/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(service service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// ListMine 目前登入者的訂單
func (h *OrderHandler) ListMine(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	orders, err := h.service.ListByUserID(c, claims.UserID)
	if err != nil {
		h.handleOrderError(c, err, "ListMine")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder 訂單明細。非 admin 只能看自己的
func (h *OrderHandler) GetOrder(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	order, err := h.service.GetOrderByID(c, idInt)
	if err != nil {
		h.handleOrderError(c, err, "GetOrder")
		return
	}

	claims := middleware.ClaimsFrom(c)
	if claims == nil || (!claims.IsAdmin && order.UserID != claims.UserID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// CancelOrder 取消訂單並釋放庫存。非 admin 只能取消自己的
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	if !claims.IsAdmin {
		order, err := h.service.GetOrderByID(c, idInt)
		if err != nil {
			h.handleOrderError(c, err, "CancelOrder")
			return
		}
		if order.UserID != claims.UserID {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
	}

	if err := h.service.CancelOrder(c, idInt); err != nil {
		h.handleOrderError(c, err, "CancelOrder")
		return
	}
	c.Status(http.StatusOK)
}

// List 全部訂單（admin）
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.service.OrderList(c)
	if err != nil {
		h.handleOrderError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ConfirmOrder 確認訂單（admin）
func (h *OrderHandler) ConfirmOrder(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	if err := h.service.ConfirmOrder(c, idInt); err != nil {
		h.handleOrderError(c, err, "ConfirmOrder")
		return
	}
	c.Status(http.StatusOK)
}

// DeleteOrder 刪除訂單（admin，soft delete）
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	if err := h.service.DeleteOrder(c, idInt); err != nil {
		h.handleOrderError(c, err, "DeleteOrder")
		return
	}
	c.Status(http.StatusOK)
}

func (h *OrderHandler) handleOrderError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrOrderNotFound):
		log.Warn("Order not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, apperrors.ErrInvalidOrderStatus):
		log.Warn("Invalid order status transition")
		c.JSON(http.StatusConflict, gin.H{"error": "Invalid order status transition"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
