package model

import (
	"time"

	"github.com/google/uuid"
)

// User 平台使用者模型
type User struct {
	ID           int        `json:"id" db:"id"`
	UserID       uuid.UUID  `json:"user_id" db:"user_id"`
	FirstName    string     `json:"first_name" db:"first_name"`
	LastName     string     `json:"last_name" db:"last_name"`
	Email        string     `json:"email" db:"email"`
	Username     string     `json:"username" db:"username"`
	PasswordHash string     `json:"-" db:"password_hash"`
	IsAdmin      bool       `json:"is_admin" db:"is_admin"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// IsDeleted 檢查使用者是否已被停用（ban）
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

type UpdateUserParams struct {
	FirstName *string
	LastName  *string
	Username  *string
}

// RegisterRequest 註冊請求
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginRequest 登入請求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse 登入/註冊成功回應，token + user + message
type AuthResponse struct {
	Token   string        `json:"token"`
	User    *UserResponse `json:"user"`
	Message string        `json:"message"`
}

// UserResponse 使用者回應（不含密碼雜湊）
type UserResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	IsAdmin   bool   `json:"is_admin"`
}

// ToResponse 轉成對外回應格式，公開識別使用 user_id
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.UserID.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Username:  u.Username,
		IsAdmin:   u.IsAdmin,
	}
}
