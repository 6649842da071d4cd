package model

import "time"

// DiscountType 折扣類型
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// IsValid 驗證折扣類型是否有效
func (d DiscountType) IsValid() bool {
	switch d {
	case DiscountTypePercentage, DiscountTypeFixed:
		return true
	}
	return false
}

// PromoCode 優惠碼模型。TicketIDs 為空表示適用於活動所有票種。
type PromoCode struct {
	ID           int          `json:"id" db:"id"`
	EventID      int          `json:"event_id" db:"event_id"`
	Code         string       `json:"code" db:"code"`
	DiscountType DiscountType `json:"discount_type" db:"discount_type"`
	Value        float64      `json:"value" db:"value"`
	TicketIDs    []int        `json:"ticket_ids" db:"ticket_ids"`
	MaxUses      int          `json:"max_uses" db:"max_uses"`
	Uses         int          `json:"uses" db:"uses"`
	Active       bool         `json:"active" db:"active"`
	StartsAt     *time.Time   `json:"starts_at,omitempty" db:"starts_at"`
	ExpiresAt    *time.Time   `json:"expires_at,omitempty" db:"expires_at"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time   `json:"deleted_at,omitempty" db:"deleted_at"`
}

// IsDeleted 檢查優惠碼是否已刪除
func (p *PromoCode) IsDeleted() bool {
	return p.DeletedAt != nil
}

// AppliedPromo 後端驗證通過的折扣描述，pricing 只消費、不產生
type AppliedPromo struct {
	Code         string       `json:"code"`
	DiscountType DiscountType `json:"discount_type"`
	Value        float64      `json:"value"`
	TicketIDs    []int        `json:"ticket_ids"`
}

// ToApplied 轉成結帳用的折扣值物件
func (p *PromoCode) ToApplied() *AppliedPromo {
	return &AppliedPromo{
		Code:         p.Code,
		DiscountType: p.DiscountType,
		Value:        p.Value,
		TicketIDs:    p.TicketIDs,
	}
}

// CreatePromoRequest 創建優惠碼請求
type CreatePromoRequest struct {
	EventID      int          `json:"event_id" binding:"required"`
	Code         string       `json:"code" binding:"required"`
	DiscountType DiscountType `json:"discount_type" binding:"required"`
	Value        float64      `json:"value" binding:"required,gt=0"`
	TicketIDs    []int        `json:"ticket_ids"`
	MaxUses      int          `json:"max_uses"`
	StartsAt     *time.Time   `json:"starts_at"`
	ExpiresAt    *time.Time   `json:"expires_at"`
}

// ValidatePromoRequest 驗證優惠碼請求
type ValidatePromoRequest struct {
	EventID   int    `json:"event_id" binding:"required"`
	Code      string `json:"code" binding:"required"`
	TicketIDs []int  `json:"ticket_ids"`
}
