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

const broadcastColumns = `id, event_id, sender_id, subject, body, status, sent_at, created_at, updated_at`

type BroadcastRepository interface {
	Create(ctx context.Context, broadcast *model.Broadcast) (*model.Broadcast, error)
	ListByEventID(ctx context.Context, eventID int) ([]*model.Broadcast, error)
	FindByID(ctx context.Context, id int) (*model.Broadcast, error)
	MarkSent(ctx context.Context, id int) (*model.Broadcast, error)
}

type BroadcastRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewBroadcastRepository(pool *pgxpool.Pool) BroadcastRepository {
	return &BroadcastRepositoryImpl{
		pool: pool,
	}
}

func scanBroadcast(row pgx.Row, b *model.Broadcast) error {
	return row.Scan(
		&b.ID,
		&b.EventID,
		&b.SenderID,
		&b.Subject,
		&b.Body,
		&b.Status,
		&b.SentAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
}

func (r *BroadcastRepositoryImpl) Create(ctx context.Context, broadcast *model.Broadcast) (*model.Broadcast, error) {
	query := fmt.Sprintf(`
		INSERT INTO broadcasts (event_id, sender_id, subject, body, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`, broadcastColumns)

	err := scanBroadcast(r.pool.QueryRow(ctx, query,
		broadcast.EventID, broadcast.SenderID, broadcast.Subject, broadcast.Body, broadcast.Status,
	), broadcast)

	if err != nil {
		return nil, err
	}

	return broadcast, nil
}

func (r *BroadcastRepositoryImpl) ListByEventID(ctx context.Context, eventID int) ([]*model.Broadcast, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM broadcasts
		WHERE event_id = $1
		ORDER BY created_at DESC
	`, broadcastColumns)

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	broadcasts := make([]*model.Broadcast, 0)
	for rows.Next() {
		var b model.Broadcast
		if err := scanBroadcast(rows, &b); err != nil {
			return nil, err
		}
		broadcasts = append(broadcasts, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return broadcasts, nil
}

func (r *BroadcastRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Broadcast, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM broadcasts
		WHERE id = $1
	`, broadcastColumns)

	var b model.Broadcast
	err := scanBroadcast(r.pool.QueryRow(ctx, query, id), &b)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrBroadcastNotFound
		}
		return nil, err
	}

	return &b, nil
}

func (r *BroadcastRepositoryImpl) MarkSent(ctx context.Context, id int) (*model.Broadcast, error) {
	now := time.Now().UTC()
	query := fmt.Sprintf(`
		UPDATE broadcasts
		SET status = $1, sent_at = $2, updated_at = $3
		WHERE id = $4 AND status = $5
		RETURNING %s
	`, broadcastColumns)

	var b model.Broadcast
	err := scanBroadcast(r.pool.QueryRow(ctx, query,
		model.BroadcastStatusSent, now, now, id, model.BroadcastStatusDraft,
	), &b)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrBroadcastNotFound
		}
		return nil, err
	}

	return &b, nil
}
