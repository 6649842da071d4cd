package apperrors

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")

	ErrEventNotFound  = errors.New("event not found")
	ErrTicketNotFound = errors.New("ticket not found")
	ErrOrderNotFound  = errors.New("order not found")

	ErrPromoNotFound      = errors.New("promo code not found")
	ErrPromoInactive      = errors.New("promo code inactive")
	ErrPromoExpired       = errors.New("promo code expired")
	ErrPromoNotApplicable = errors.New("promo code not applicable")

	ErrWithdrawalNotFound      = errors.New("withdrawal not found")
	ErrInvalidWithdrawalAmount = errors.New("invalid withdrawal amount")
	ErrInvalidWithdrawalStatus = errors.New("invalid withdrawal status")

	ErrBroadcastNotFound = errors.New("broadcast not found")

	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrExceedsMaxPerUser  = errors.New("exceeds max per user")
	ErrInvalidOrderStatus = errors.New("invalid order status")

	ErrInvalidInput        = errors.New("invalid input")
	ErrInternalServerError = errors.New("internal server error")
)
