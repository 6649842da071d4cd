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

const promoColumns = `id, event_id, code, discount_type, value, ticket_ids,
		max_uses, uses, active, starts_at, expires_at, created_at, updated_at, deleted_at`

type PromoRepository interface {
	Create(ctx context.Context, promo *model.PromoCode) (*model.PromoCode, error)
	ListByEventID(ctx context.Context, eventID int) ([]*model.PromoCode, error)
	FindByID(ctx context.Context, id int) (*model.PromoCode, error)
	FindByCode(ctx context.Context, eventID int, code string) (*model.PromoCode, error)
	SetActive(ctx context.Context, id int, active bool) error
	IncrementUses(ctx context.Context, tx pgx.Tx, id int) error
	Delete(ctx context.Context, id int) error
}

type PromoRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewPromoRepository(pool *pgxpool.Pool) PromoRepository {
	return &PromoRepositoryImpl{
		pool: pool,
	}
}

func scanPromo(row pgx.Row, promo *model.PromoCode) error {
	return row.Scan(
		&promo.ID,
		&promo.EventID,
		&promo.Code,
		&promo.DiscountType,
		&promo.Value,
		&promo.TicketIDs,
		&promo.MaxUses,
		&promo.Uses,
		&promo.Active,
		&promo.StartsAt,
		&promo.ExpiresAt,
		&promo.CreatedAt,
		&promo.UpdatedAt,
		&promo.DeletedAt,
	)
}

func (r *PromoRepositoryImpl) Create(ctx context.Context, promo *model.PromoCode) (*model.PromoCode, error) {
	query := fmt.Sprintf(`
		INSERT INTO promo_codes (
			event_id, code, discount_type, value, ticket_ids, max_uses, active, starts_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s
	`, promoColumns)

	err := scanPromo(r.pool.QueryRow(ctx, query,
		promo.EventID, promo.Code, promo.DiscountType, promo.Value,
		promo.TicketIDs, promo.MaxUses, promo.Active, promo.StartsAt, promo.ExpiresAt,
	), promo)

	if err != nil {
		return nil, err
	}

	return promo, nil
}

func (r *PromoRepositoryImpl) ListByEventID(ctx context.Context, eventID int) ([]*model.PromoCode, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM promo_codes
		WHERE event_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`, promoColumns)

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	promos := make([]*model.PromoCode, 0)
	for rows.Next() {
		var promo model.PromoCode
		if err := scanPromo(rows, &promo); err != nil {
			return nil, err
		}
		promos = append(promos, &promo)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return promos, nil
}

func (r *PromoRepositoryImpl) FindByID(ctx context.Context, id int) (*model.PromoCode, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM promo_codes
		WHERE id = $1 AND deleted_at IS NULL
	`, promoColumns)

	var promo model.PromoCode
	err := scanPromo(r.pool.QueryRow(ctx, query, id), &promo)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrPromoNotFound
		}
		return nil, err
	}

	return &promo, nil
}

func (r *PromoRepositoryImpl) FindByCode(ctx context.Context, eventID int, code string) (*model.PromoCode, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM promo_codes
		WHERE event_id = $1 AND UPPER(code) = UPPER($2) AND deleted_at IS NULL
	`, promoColumns)

	var promo model.PromoCode
	err := scanPromo(r.pool.QueryRow(ctx, query, eventID, code), &promo)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrPromoNotFound
		}
		return nil, err
	}

	return &promo, nil
}

func (r *PromoRepositoryImpl) SetActive(ctx context.Context, id int, active bool) error {
	query := `
		UPDATE promo_codes
		SET active = $1, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query, active, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrPromoNotFound
	}

	return nil
}

func (r *PromoRepositoryImpl) IncrementUses(ctx context.Context, tx pgx.Tx, id int) error {
	query := `
		UPDATE promo_codes
		SET uses = uses + 1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
			AND (max_uses = 0 OR uses < max_uses)
	`

	result, err := tx.Exec(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrPromoNotApplicable
	}

	return nil
}

func (r *PromoRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `
		UPDATE promo_codes
		SET deleted_at = $1, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL
	`

	now := time.Now().UTC()
	result, err := r.pool.Exec(ctx, query, now, now, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrPromoNotFound
	}

	return nil
}
