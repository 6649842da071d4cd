package model

import "time"

// BroadcastStatus 廣播狀態
type BroadcastStatus string

const (
	BroadcastStatusDraft BroadcastStatus = "draft"
	BroadcastStatusSent  BroadcastStatus = "sent"
)

// Broadcast 主辦方/管理員對活動購票者的公告訊息
type Broadcast struct {
	ID       int             `json:"id" db:"id"`
	EventID  int             `json:"event_id" db:"event_id"`
	SenderID int             `json:"sender_id" db:"sender_id"`
	Subject  string          `json:"subject" db:"subject"`
	Body     string          `json:"body" db:"body"`
	Status   BroadcastStatus `json:"status" db:"status"`
	SentAt   *time.Time      `json:"sent_at,omitempty" db:"sent_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateBroadcastRequest 建立廣播請求
type CreateBroadcastRequest struct {
	EventID int    `json:"event_id" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}
