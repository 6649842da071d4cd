package model

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID          int        `json:"id" db:"id"`
	EventID     uuid.UUID  `json:"event_id" db:"event_id"`
	OrganizerID int        `json:"organizer_id" db:"organizer_id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description,omitempty" db:"description"`
	Venue       *string    `json:"venue,omitempty" db:"venue"`
	StartsAt    *time.Time `json:"starts_at,omitempty" db:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty" db:"ends_at"`
	Published   bool       `json:"published" db:"published"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// IsDeleted 檢查活動是否已刪除
func (e *Event) IsDeleted() bool {
	return e.DeletedAt != nil
}

type UpdateEventParams struct {
	Name        *string
	Description *string
	Venue       *string
	StartsAt    *time.Time
	EndsAt      *time.Time
	Published   *bool
}

// CreateEventRequest 創建活動請求（多步驟建立精靈的最終 payload）
type CreateEventRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description *string    `json:"description"`
	Venue       *string    `json:"venue"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}
