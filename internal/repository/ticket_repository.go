package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tickify/internal/model"
	apperrors "tickify/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ticketColumns = `id, ticket_id, event_id, name, price, total_stock,
		remaining_stock, max_per_user, transfer_fee, created_at, updated_at, deleted_at`

type TicketRepository interface {
	Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error)
	List(ctx context.Context) ([]*model.Ticket, error)
	ListByEventID(ctx context.Context, eventID int) ([]*model.Ticket, error)
	FindByID(ctx context.Context, id int) (*model.Ticket, error)
	FindByTicketID(ctx context.Context, ticketID uuid.UUID) (*model.Ticket, error)
	Update(ctx context.Context, id int, params model.UpdateTicketParams) (*model.Ticket, error)
	Delete(ctx context.Context, id int) error

	// Transaction methods
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Ticket, error)
	IncrementStock(ctx context.Context, tx pgx.Tx, id int, quantity int) error
	DecrementStock(ctx context.Context, tx pgx.Tx, id int, quantity int) error
	AddStock(ctx context.Context, tx pgx.Tx, id int, quantity int) error
}

type TicketRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &TicketRepositoryImpl{
		pool: pool,
	}
}

func scanTicket(row pgx.Row, ticket *model.Ticket) error {
	return row.Scan(
		&ticket.ID,
		&ticket.TicketID,
		&ticket.EventID,
		&ticket.Name,
		&ticket.Price,
		&ticket.TotalStock,
		&ticket.RemainingStock,
		&ticket.MaxPerUser,
		&ticket.TransferFee,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.DeletedAt,
	)
}

func (r *TicketRepositoryImpl) Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	query := fmt.Sprintf(`
		INSERT INTO tickets (
			ticket_id, event_id, name, price, total_stock, remaining_stock, max_per_user, transfer_fee)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`, ticketColumns)

	err := scanTicket(r.pool.QueryRow(ctx, query,
		ticket.TicketID, ticket.EventID, ticket.Name, ticket.Price,
		ticket.TotalStock, ticket.RemainingStock, ticket.MaxPerUser, ticket.TransferFee,
	), ticket)

	if err != nil {
		return nil, err
	}

	return ticket, nil
}

func (r *TicketRepositoryImpl) List(ctx context.Context) ([]*model.Ticket, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM tickets
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`, ticketColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*model.Ticket, 0)

	for rows.Next() {
		var ticket model.Ticket
		if err := scanTicket(rows, &ticket); err != nil {
			return nil, err
		}
		tickets = append(tickets, &ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (r *TicketRepositoryImpl) ListByEventID(ctx context.Context, eventID int) ([]*model.Ticket, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM tickets
		WHERE event_id = $1 AND deleted_at IS NULL
		ORDER BY price ASC
	`, ticketColumns)

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*model.Ticket, 0)

	for rows.Next() {
		var ticket model.Ticket
		if err := scanTicket(rows, &ticket); err != nil {
			return nil, err
		}
		tickets = append(tickets, &ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (r *TicketRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Ticket, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM tickets
		WHERE id = $1 AND deleted_at IS NULL
	`, ticketColumns)

	var ticket model.Ticket
	err := scanTicket(r.pool.QueryRow(ctx, query, id), &ticket)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	return &ticket, nil
}

func (r *TicketRepositoryImpl) FindByTicketID(ctx context.Context, ticketID uuid.UUID) (*model.Ticket, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM tickets
		WHERE ticket_id = $1 AND deleted_at IS NULL
	`, ticketColumns)

	var ticket model.Ticket
	err := scanTicket(r.pool.QueryRow(ctx, query, ticketID), &ticket)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	return &ticket, nil
}

func (r *TicketRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Ticket, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM tickets
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE
	`, ticketColumns)

	var ticket model.Ticket
	err := scanTicket(tx.QueryRow(ctx, query, id), &ticket)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	return &ticket, nil
}

func (r *TicketRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateTicketParams) (*model.Ticket, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *params.Name)
		argPos++
	}

	if params.Price != nil {
		sets = append(sets, fmt.Sprintf("price = $%d", argPos))
		args = append(args, *params.Price)
		argPos++
	}

	if params.MaxPerUser != nil {
		sets = append(sets, fmt.Sprintf("max_per_user = $%d", argPos))
		args = append(args, *params.MaxPerUser)
		argPos++
	}

	if params.TransferFee != nil {
		sets = append(sets, fmt.Sprintf("transfer_fee = $%d", argPos))
		args = append(args, *params.TransferFee)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// add updated_at
	sets = append(sets, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now().UTC())
	argPos++

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE tickets
		SET %s
		WHERE id = $%d AND deleted_at IS NULL
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, ticketColumns)

	var ticket model.Ticket
	err := scanTicket(r.pool.QueryRow(ctx, query, args...), &ticket)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	return &ticket, nil
}

func (r *TicketRepositoryImpl) IncrementStock(ctx context.Context, tx pgx.Tx, id int, quantity int) error {
	query := `
		UPDATE tickets
		SET remaining_stock = remaining_stock + $1, updated_at = $2
		WHERE id = $3
	`

	result, err := tx.Exec(ctx, query, quantity, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrTicketNotFound
	}

	return nil
}

func (r *TicketRepositoryImpl) DecrementStock(ctx context.Context, tx pgx.Tx, id int, quantity int) error {
	query := `
		UPDATE tickets
		SET remaining_stock = remaining_stock - $1, updated_at = $2
		WHERE id = $3 AND remaining_stock >= $1
	`

	result, err := tx.Exec(ctx, query, quantity, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrInsufficientStock
	}

	return nil
}

func (r *TicketRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `
		UPDATE tickets
		SET deleted_at = $1, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL
	`

	now := time.Now().UTC()
	result, err := r.pool.Exec(ctx, query, now, now, id)
	if err != nil {
		return err
	}

	// check if ticket exists and not already deleted
	if result.RowsAffected() == 0 {
		return apperrors.ErrTicketNotFound
	}

	return nil
}

func (r *TicketRepositoryImpl) AddStock(ctx context.Context, tx pgx.Tx, id int, quantity int) error {
	if quantity <= 0 {
		return apperrors.ErrInvalidInput
	}

	query := `
		UPDATE tickets
		SET total_stock = total_stock + $1,
			remaining_stock = remaining_stock + $1,
			updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL
	`

	result, err := tx.Exec(ctx, query, quantity, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrTicketNotFound
	}

	return nil
}
