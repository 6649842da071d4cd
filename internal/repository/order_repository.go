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

const orderColumns = `id, request_id, user_id, event_id, subtotal, discount, fee, total,
		promo_code, status, created_at, updated_at, deleted_at`

type OrderRepository interface {
	List(ctx context.Context) ([]*model.Order, error)
	FindByID(ctx context.Context, id int) (*model.Order, error)
	FindByUserID(ctx context.Context, userID int) ([]*model.Order, error)
	FindByEventID(ctx context.Context, eventID int) ([]*model.Order, error)
	Delete(ctx context.Context, id int) error

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) (*model.Order, error)
	UpdateStatusWithLock(ctx context.Context, tx pgx.Tx, id int, status model.OrderStatus) (*model.Order, error)
}

type OrderRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &OrderRepositoryImpl{
		pool: pool,
	}
}

func scanOrder(row pgx.Row, order *model.Order) error {
	return row.Scan(
		&order.ID,
		&order.RequestID,
		&order.UserID,
		&order.EventID,
		&order.Subtotal,
		&order.Discount,
		&order.Fee,
		&order.Total,
		&order.PromoCode,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.DeletedAt,
	)
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, order *model.Order) (*model.Order, error) {
	query := fmt.Sprintf(`
		INSERT INTO orders (
			request_id, user_id, event_id, subtotal, discount, fee, total, promo_code, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s
	`, orderColumns)

	err := scanOrder(tx.QueryRow(ctx, query,
		order.RequestID, order.UserID, order.EventID,
		order.Subtotal, order.Discount, order.Fee, order.Total,
		order.PromoCode, order.Status,
	), order)

	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, ticket_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if err := tx.QueryRow(ctx, itemQuery,
			item.OrderID, item.TicketID, item.Quantity, item.UnitPrice,
		).Scan(&item.ID); err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
	}

	return order, nil
}

func (r *OrderRepositoryImpl) List(ctx context.Context) ([]*model.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`, orderColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}

	return r.attachItems(ctx, orders)
}

func (r *OrderRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE id = $1 AND deleted_at IS NULL
	`, orderColumns)

	var order model.Order
	err := scanOrder(r.pool.QueryRow(ctx, query, id), &order)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, err
	}

	orders, err := r.attachItems(ctx, []*model.Order{&order})
	if err != nil {
		return nil, err
	}

	return orders[0], nil
}

func (r *OrderRepositoryImpl) FindByUserID(ctx context.Context, userID int) ([]*model.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`, orderColumns)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}

	return r.attachItems(ctx, orders)
}

func (r *OrderRepositoryImpl) FindByEventID(ctx context.Context, eventID int) ([]*model.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE event_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`, orderColumns)

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}

	return r.attachItems(ctx, orders)
}

func (r *OrderRepositoryImpl) UpdateStatusWithLock(
	ctx context.Context,
	tx pgx.Tx,
	id int,
	status model.OrderStatus,
) (*model.Order, error) {
	query := fmt.Sprintf(`
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING %s
	`, orderColumns)

	var order model.Order
	err := scanOrder(tx.QueryRow(ctx, query, status, time.Now().UTC(), id), &order)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	itemRows, err := tx.Query(ctx, `
		SELECT id, order_id, ticket_id, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
	`, order.ID)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item model.OrderItem
		if err := itemRows.Scan(&item.ID, &item.OrderID, &item.TicketID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}

	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *OrderRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `
		UPDATE orders
		SET deleted_at = $1, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL
	`

	now := time.Now().UTC()
	result, err := r.pool.Exec(ctx, query, now, now, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrOrderNotFound
	}

	return nil
}

func collectOrders(rows pgx.Rows) ([]*model.Order, error) {
	var orders []*model.Order
	for rows.Next() {
		var order model.Order
		if err := scanOrder(rows, &order); err != nil {
			return nil, err
		}
		orders = append(orders, &order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachItems 一次撈回所有訂單的 items，避免逐筆查詢
func (r *OrderRepositoryImpl) attachItems(ctx context.Context, orders []*model.Order) ([]*model.Order, error) {
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]int, 0, len(orders))
	byID := make(map[int]*model.Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, ticket_id, quantity, unit_price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.TicketID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		if order, ok := byID[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
