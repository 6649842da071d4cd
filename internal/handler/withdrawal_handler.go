package handler

import (
	"context"
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

type WithdrawalHandler struct {
	service service.WithdrawalService
}

func NewWithdrawalHandler(service service.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{service: service}
}

// Request 主辦方建立提領申請
func (h *WithdrawalHandler) Request(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req model.CreateWithdrawalRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.Request(c, claims.UserID, req.Amount)
	if err != nil {
		h.handleError(c, err, "Request")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListMine 目前登入者的提領紀錄
func (h *WithdrawalHandler) ListMine(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	withdrawals, err := h.service.ListMine(c, claims.UserID)
	if err != nil {
		h.handleError(c, err, "ListMine")
		return
	}
	c.JSON(http.StatusOK, withdrawals)
}

// ListAll 全部提領申請（admin）
func (h *WithdrawalHandler) ListAll(c *gin.Context) {
	withdrawals, err := h.service.ListAll(c)
	if err != nil {
		h.handleError(c, err, "ListAll")
		return
	}
	c.JSON(http.StatusOK, withdrawals)
}

// ReviewRequest 審核附註
type ReviewRequest struct {
	Note *string `json:"note"`
}

// Approve 核准提領（admin）
func (h *WithdrawalHandler) Approve(c *gin.Context) {
	h.review(c, "Approve", h.service.Approve)
}

// Reject 駁回提領（admin）
func (h *WithdrawalHandler) Reject(c *gin.Context) {
	h.review(c, "Reject", h.service.Reject)
}

func (h *WithdrawalHandler) review(
	c *gin.Context,
	operation string,
	fn func(ctx context.Context, id int, note *string) (*model.Withdrawal, error),
) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid withdrawal id"})
		return
	}

	var req ReviewRequest
	if c.Request.ContentLength > 0 {
		if err := BindJson(c, &req); err != nil {
			return
		}
	}

	withdrawal, err := fn(c, id, req.Note)
	if err != nil {
		h.handleError(c, err, operation)
		return
	}
	c.JSON(http.StatusOK, withdrawal)
}

func (h *WithdrawalHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrWithdrawalNotFound):
		log.Warn("Withdrawal not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Withdrawal not found"})
	case errors.Is(err, apperrors.ErrInvalidWithdrawalAmount):
		log.Warn("Invalid withdrawal amount")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount is outside the allowed range"})
	case errors.Is(err, apperrors.ErrInvalidWithdrawalStatus):
		log.Warn("Invalid withdrawal status transition")
		c.JSON(http.StatusConflict, gin.H{"error": "Withdrawal has already been reviewed"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
