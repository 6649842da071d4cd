package model

import "time"

// DefaultPlatformFeePercentage 平台手續費取不到時的預設值（百分比）
const DefaultPlatformFeePercentage = 3.0

// Settings 平台全域設定
type Settings struct {
	ID                    int       `json:"id" db:"id"`
	PlatformFeePercentage float64   `json:"fee_percentage" db:"platform_fee_percentage"`
	MinWithdrawalAmount   float64   `json:"min_withdrawal_amount" db:"min_withdrawal_amount"`
	MaxWithdrawalAmount   float64   `json:"max_withdrawal_amount" db:"max_withdrawal_amount"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultSettings 預設設定
func DefaultSettings() *Settings {
	return &Settings{
		PlatformFeePercentage: DefaultPlatformFeePercentage,
		MinWithdrawalAmount:   10.0,
		MaxWithdrawalAmount:   1000000.0,
	}
}

// UpdateSettingsParams 更新設定（部分欄位）
type UpdateSettingsParams struct {
	PlatformFeePercentage *float64 `json:"fee_percentage"`
	MinWithdrawalAmount   *float64 `json:"min_withdrawal_amount"`
	MaxWithdrawalAmount   *float64 `json:"max_withdrawal_amount"`
}

// PlatformFeeResponse 結帳頁取得手續費的回應
type PlatformFeeResponse struct {
	FeePercentage float64 `json:"fee_percentage"`
}
