package repository

import (
	"context"

	"tickify/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AnalyticsRepository interface {
	AdminSummary(ctx context.Context) (*model.AdminSummary, error)
	EventSalesSummary(ctx context.Context, eventID int) (*model.EventSalesSummary, error)
}

type AnalyticsRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepository(pool *pgxpool.Pool) AnalyticsRepository {
	return &AnalyticsRepositoryImpl{
		pool: pool,
	}
}

func (r *AnalyticsRepositoryImpl) AdminSummary(ctx context.Context) (*model.AdminSummary, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE deleted_at IS NULL),
			(SELECT COUNT(*) FROM events WHERE deleted_at IS NULL),
			(SELECT COUNT(*) FROM orders WHERE deleted_at IS NULL),
			(SELECT COUNT(*) FROM orders WHERE status = 'confirmed' AND deleted_at IS NULL),
			COALESCE((SELECT SUM(total) FROM orders WHERE status = 'confirmed' AND deleted_at IS NULL), 0)
	`

	var summary model.AdminSummary
	err := r.pool.QueryRow(ctx, query).Scan(
		&summary.TotalUsers,
		&summary.TotalEvents,
		&summary.TotalOrders,
		&summary.ConfirmedOrders,
		&summary.TotalRevenue,
	)
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

func (r *AnalyticsRepositoryImpl) EventSalesSummary(ctx context.Context, eventID int) (*model.EventSalesSummary, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM orders
				WHERE event_id = $1 AND status = 'confirmed' AND deleted_at IS NULL),
			COALESCE((SELECT SUM(oi.quantity) FROM order_items oi
				JOIN orders o ON o.id = oi.order_id
				WHERE o.event_id = $1 AND o.status = 'confirmed' AND o.deleted_at IS NULL), 0),
			COALESCE((SELECT SUM(total) FROM orders
				WHERE event_id = $1 AND status = 'confirmed' AND deleted_at IS NULL), 0)
	`

	summary := model.EventSalesSummary{EventID: eventID}
	err := r.pool.QueryRow(ctx, query, eventID).Scan(
		&summary.TotalOrders,
		&summary.TicketsSold,
		&summary.TotalRevenue,
	)
	if err != nil {
		return nil, err
	}

	return &summary, nil
}
