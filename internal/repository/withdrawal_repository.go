package repository

import (
	"context"
	"fmt"
	"time"

	"tickify/internal/model"
	apperrors "tickify/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const withdrawalColumns = `id, user_id, amount, status, note, created_at, updated_at`

type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal *model.Withdrawal) (*model.Withdrawal, error)
	List(ctx context.Context) ([]*model.Withdrawal, error)
	FindByID(ctx context.Context, id int) (*model.Withdrawal, error)
	FindByUserID(ctx context.Context, userID int) ([]*model.Withdrawal, error)
	UpdateStatusWithLock(ctx context.Context, tx pgx.Tx, id int, status model.WithdrawalStatus, note *string) (*model.Withdrawal, error)
}

type WithdrawalRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewWithdrawalRepository(pool *pgxpool.Pool) WithdrawalRepository {
	return &WithdrawalRepositoryImpl{
		pool: pool,
	}
}

func scanWithdrawal(row pgx.Row, w *model.Withdrawal) error {
	return row.Scan(
		&w.ID,
		&w.UserID,
		&w.Amount,
		&w.Status,
		&w.Note,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
}

func (r *WithdrawalRepositoryImpl) Create(ctx context.Context, withdrawal *model.Withdrawal) (*model.Withdrawal, error) {
	query := fmt.Sprintf(`
		INSERT INTO withdrawals (user_id, amount, status, note)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`, withdrawalColumns)

	err := scanWithdrawal(r.pool.QueryRow(ctx, query,
		withdrawal.UserID, withdrawal.Amount, withdrawal.Status, withdrawal.Note,
	), withdrawal)

	if err != nil {
		return nil, err
	}

	return withdrawal, nil
}

func (r *WithdrawalRepositoryImpl) List(ctx context.Context) ([]*model.Withdrawal, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM withdrawals
		ORDER BY created_at DESC
	`, withdrawalColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	withdrawals := make([]*model.Withdrawal, 0)
	for rows.Next() {
		var w model.Withdrawal
		if err := scanWithdrawal(rows, &w); err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return withdrawals, nil
}

func (r *WithdrawalRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Withdrawal, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM withdrawals
		WHERE id = $1
	`, withdrawalColumns)

	var w model.Withdrawal
	err := scanWithdrawal(r.pool.QueryRow(ctx, query, id), &w)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrWithdrawalNotFound
		}
		return nil, err
	}

	return &w, nil
}

func (r *WithdrawalRepositoryImpl) FindByUserID(ctx context.Context, userID int) ([]*model.Withdrawal, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM withdrawals
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, withdrawalColumns)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	withdrawals := make([]*model.Withdrawal, 0)
	for rows.Next() {
		var w model.Withdrawal
		if err := scanWithdrawal(rows, &w); err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return withdrawals, nil
}

func (r *WithdrawalRepositoryImpl) UpdateStatusWithLock(
	ctx context.Context,
	tx pgx.Tx,
	id int,
	status model.WithdrawalStatus,
	note *string,
) (*model.Withdrawal, error) {
	// 先鎖列、檢查狀態轉換是否合法，再更新
	lockQuery := fmt.Sprintf(`
		SELECT %s
		FROM withdrawals
		WHERE id = $1
		FOR UPDATE
	`, withdrawalColumns)

	var current model.Withdrawal
	err := scanWithdrawal(tx.QueryRow(ctx, lockQuery, id), &current)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrWithdrawalNotFound
		}
		return nil, err
	}

	if !current.Status.CanTransitionTo(status) {
		return nil, apperrors.ErrInvalidWithdrawalStatus
	}

	query := fmt.Sprintf(`
		UPDATE withdrawals
		SET status = $1, note = COALESCE($2, note), updated_at = $3
		WHERE id = $4
		RETURNING %s
	`, withdrawalColumns)

	var w model.Withdrawal
	err = scanWithdrawal(tx.QueryRow(ctx, query, status, note, time.Now().UTC(), id), &w)
	if err != nil {
		return nil, fmt.Errorf("failed to update withdrawal status: %w", err)
	}

	return &w, nil
}
