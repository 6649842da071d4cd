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

type CheckoutHandler struct {
	service         service.CheckoutService
	promoService    service.PromoService
	settingsService service.SettingsService
}

func NewCheckoutHandler(
	service service.CheckoutService,
	promoService service.PromoService,
	settingsService service.SettingsService,
) *CheckoutHandler {
	return &CheckoutHandler{
		service:         service,
		promoService:    promoService,
		settingsService: settingsService,
	}
}

// Quote 試算結帳金額，結帳頁每次調整購物車都會打
func (h *CheckoutHandler) Quote(c *gin.Context) {
	var req model.CheckoutRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	summary, err := h.service.Quote(c, req)
	if err != nil {
		h.handleCheckoutError(c, err, "Quote")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Checkout 下單。成功回 202：訂單已受理，落庫由 worker 非同步完成
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req model.CheckoutRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	order, err := h.service.PlaceOrder(c, claims.UserID, req)
	if err != nil {
		h.handleCheckoutError(c, err, "Checkout")
		return
	}

	c.JSON(http.StatusAccepted, order)
}

// ValidatePromo 結帳頁套用優惠碼時的即時驗證
func (h *CheckoutHandler) ValidatePromo(c *gin.Context) {
	var req model.ValidatePromoRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	applied, err := h.promoService.Validate(c, req)
	if err != nil {
		h.handleCheckoutError(c, err, "ValidatePromo")
		return
	}

	c.JSON(http.StatusOK, applied)
}

// PlatformFee 結帳頁啟動時取得平台手續費百分比
func (h *CheckoutHandler) PlatformFee(c *gin.Context) {
	c.JSON(http.StatusOK, model.PlatformFeeResponse{
		FeePercentage: h.settingsService.PlatformFeePercentage(c),
	})
}

func (h *CheckoutHandler) handleCheckoutError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrInsufficientStock):
		log.Warn("Insufficient stock")
		c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock"})
	case errors.Is(err, apperrors.ErrExceedsMaxPerUser):
		log.Warn("Exceeds max per user")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Exceeds max per user"})
	case errors.Is(err, apperrors.ErrTicketNotFound):
		log.Warn("Ticket not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
	case errors.Is(err, apperrors.ErrPromoNotFound):
		log.Warn("Promo code not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Promo code not found"})
	case errors.Is(err, apperrors.ErrPromoInactive):
		log.Warn("Promo code inactive")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Promo code is not active"})
	case errors.Is(err, apperrors.ErrPromoExpired):
		log.Warn("Promo code expired")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Promo code has expired"})
	case errors.Is(err, apperrors.ErrPromoNotApplicable):
		log.Warn("Promo code not applicable")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Promo code does not apply to selected tickets"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
