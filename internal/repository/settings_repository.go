package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tickify/internal/model"
	apperrors "tickify/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const settingsColumns = `id, platform_fee_percentage, min_withdrawal_amount,
		max_withdrawal_amount, created_at, updated_at`

// SettingsRepository 平台設定只有一列（id = 1），不存在時由 service 補預設值
type SettingsRepository interface {
	Get(ctx context.Context) (*model.Settings, error)
	Update(ctx context.Context, params model.UpdateSettingsParams) (*model.Settings, error)
}

type SettingsRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewSettingsRepository(pool *pgxpool.Pool) SettingsRepository {
	return &SettingsRepositoryImpl{
		pool: pool,
	}
}

func scanSettings(row pgx.Row, settings *model.Settings) error {
	return row.Scan(
		&settings.ID,
		&settings.PlatformFeePercentage,
		&settings.MinWithdrawalAmount,
		&settings.MaxWithdrawalAmount,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
}

func (r *SettingsRepositoryImpl) Get(ctx context.Context) (*model.Settings, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM settings
		WHERE id = 1
	`, settingsColumns)

	var settings model.Settings
	err := scanSettings(r.pool.QueryRow(ctx, query), &settings)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrInvalidInput
		}
		return nil, err
	}

	return &settings, nil
}

func (r *SettingsRepositoryImpl) Update(ctx context.Context, params model.UpdateSettingsParams) (*model.Settings, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.PlatformFeePercentage != nil {
		sets = append(sets, fmt.Sprintf("platform_fee_percentage = $%d", argPos))
		args = append(args, *params.PlatformFeePercentage)
		argPos++
	}

	if params.MinWithdrawalAmount != nil {
		sets = append(sets, fmt.Sprintf("min_withdrawal_amount = $%d", argPos))
		args = append(args, *params.MinWithdrawalAmount)
		argPos++
	}

	if params.MaxWithdrawalAmount != nil {
		sets = append(sets, fmt.Sprintf("max_withdrawal_amount = $%d", argPos))
		args = append(args, *params.MaxWithdrawalAmount)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// add updated_at
	sets = append(sets, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now().UTC())

	query := fmt.Sprintf(`
		UPDATE settings
		SET %s
		WHERE id = 1
		RETURNING %s
	`, strings.Join(sets, ", "), settingsColumns)

	var settings model.Settings
	err := scanSettings(r.pool.QueryRow(ctx, query, args...), &settings)
	if err != nil {
		return nil, err
	}

	return &settings, nil
}
