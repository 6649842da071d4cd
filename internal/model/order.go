package model

import "time"

// OrderStatus 訂單狀態類型
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid 驗證狀態是否有效
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo 檢查是否可以轉換到目標狀態
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	transitions := map[OrderStatus][]OrderStatus{
		OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
		OrderStatusConfirmed: {OrderStatusCancelled},
		OrderStatusCancelled: {}, // 不能轉換到任何狀態
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}

// Order 訂單模型，一次結帳產生一筆訂單（可含多個票種）
type Order struct {
	ID        int         `json:"id" db:"id"`
	RequestID string      `json:"request_id" db:"request_id"`
	UserID    int         `json:"user_id" db:"user_id"`
	EventID   int         `json:"event_id" db:"event_id"`
	Subtotal  float64     `json:"subtotal" db:"subtotal"`
	Discount  float64     `json:"discount" db:"discount"`
	Fee       float64     `json:"fee" db:"fee"`
	Total     float64     `json:"total" db:"total"`
	PromoCode *string     `json:"promo_code,omitempty" db:"promo_code"`
	Status    OrderStatus `json:"status" db:"status"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time  `json:"deleted_at,omitempty" db:"deleted_at"`

	Items []OrderItem `json:"items" db:"-"`
}

// OrderItem 訂單項目（line item）：一個票種 + 數量
type OrderItem struct {
	ID        int     `json:"id" db:"id"`
	OrderID   int     `json:"order_id" db:"order_id"`
	TicketID  int     `json:"ticket_id" db:"ticket_id"`
	Quantity  int     `json:"quantity" db:"quantity"`
	UnitPrice float64 `json:"unit_price" db:"unit_price"`
}

// IsDeleted 檢查訂單是否已刪除
func (o *Order) IsDeleted() bool {
	return o.DeletedAt != nil
}

// CheckoutItem 結帳選擇的 line item，數量至少 1；同一票種最多一筆
type CheckoutItem struct {
	TicketID int `json:"ticket_id" binding:"required"`
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest 結帳請求
type CheckoutRequest struct {
	EventID   int            `json:"event_id" binding:"required"`
	Items     []CheckoutItem `json:"items" binding:"required,dive"`
	PromoCode *string        `json:"promo_code"`
}

// OrderResponse 訂單響應
type OrderResponse struct {
	ID        int         `json:"id"`
	RequestID string      `json:"request_id"`
	UserID    int         `json:"user_id"`
	EventID   int         `json:"event_id"`
	Subtotal  float64     `json:"subtotal"`
	Discount  float64     `json:"discount"`
	Fee       float64     `json:"fee"`
	Total     float64     `json:"total"`
	Status    string      `json:"status"`
	Items     []OrderItem `json:"items"`
	CreatedAt string      `json:"created_at"`
}
