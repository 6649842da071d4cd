package model

import "time"

// WithdrawalStatus 提領（payout）狀態類型
type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusRejected WithdrawalStatus = "rejected"
)

// IsValid 驗證狀態是否有效
func (s WithdrawalStatus) IsValid() bool {
	switch s {
	case WithdrawalStatusPending, WithdrawalStatusApproved, WithdrawalStatusRejected:
		return true
	}
	return false
}

// CanTransitionTo 檢查是否可以轉換到目標狀態
func (s WithdrawalStatus) CanTransitionTo(target WithdrawalStatus) bool {
	if s != WithdrawalStatusPending {
		return false
	}
	return target == WithdrawalStatusApproved || target == WithdrawalStatusRejected
}

// Withdrawal 主辦方提領申請
type Withdrawal struct {
	ID        int              `json:"id" db:"id"`
	UserID    int              `json:"user_id" db:"user_id"`
	Amount    float64          `json:"amount" db:"amount"`
	Status    WithdrawalStatus `json:"status" db:"status"`
	Note      *string          `json:"note,omitempty" db:"note"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" db:"updated_at"`
}

// CreateWithdrawalRequest 提領申請請求
type CreateWithdrawalRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Note   *string `json:"note"`
}
