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

const eventColumns = `id, event_id, organizer_id, name, description, venue,
		starts_at, ends_at, published, created_at, updated_at, deleted_at`

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	List(ctx context.Context, publishedOnly bool) ([]*model.Event, error)
	ListByOrganizerID(ctx context.Context, organizerID int) ([]*model.Event, error)
	FindByID(ctx context.Context, id int) (*model.Event, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error)
	Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error)
	Delete(ctx context.Context, id int) error
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

func scanEvent(row pgx.Row, event *model.Event) error {
	return row.Scan(
		&event.ID,
		&event.EventID,
		&event.OrganizerID,
		&event.Name,
		&event.Description,
		&event.Venue,
		&event.StartsAt,
		&event.EndsAt,
		&event.Published,
		&event.CreatedAt,
		&event.UpdatedAt,
		&event.DeletedAt,
	)
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := fmt.Sprintf(`
		INSERT INTO events (event_id, organizer_id, name, description, venue, starts_at, ends_at, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`, eventColumns)

	err := scanEvent(r.pool.QueryRow(ctx, query,
		event.EventID, event.OrganizerID, event.Name, event.Description,
		event.Venue, event.StartsAt, event.EndsAt, event.Published,
	), event)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *EventRepositoryImpl) List(ctx context.Context, publishedOnly bool) ([]*model.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE deleted_at IS NULL
	`, eventColumns)
	if publishedOnly {
		query += ` AND published = true`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		var event model.Event
		if err := scanEvent(rows, &event); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *EventRepositoryImpl) ListByOrganizerID(ctx context.Context, organizerID int) ([]*model.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE organizer_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`, eventColumns)

	rows, err := r.pool.Query(ctx, query, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		var event model.Event
		if err := scanEvent(rows, &event); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE id = $1 AND deleted_at IS NULL
	`, eventColumns)

	var event model.Event
	err := scanEvent(r.pool.QueryRow(ctx, query, id), &event)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return &event, nil
}

func (r *EventRepositoryImpl) FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE event_id = $1 AND deleted_at IS NULL
	`, eventColumns)

	var event model.Event
	err := scanEvent(r.pool.QueryRow(ctx, query, eventID), &event)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return &event, nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *params.Name)
		argPos++
	}

	if params.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argPos))
		args = append(args, *params.Description)
		argPos++
	}

	if params.Venue != nil {
		sets = append(sets, fmt.Sprintf("venue = $%d", argPos))
		args = append(args, *params.Venue)
		argPos++
	}

	if params.StartsAt != nil {
		sets = append(sets, fmt.Sprintf("starts_at = $%d", argPos))
		args = append(args, *params.StartsAt)
		argPos++
	}

	if params.EndsAt != nil {
		sets = append(sets, fmt.Sprintf("ends_at = $%d", argPos))
		args = append(args, *params.EndsAt)
		argPos++
	}

	if params.Published != nil {
		sets = append(sets, fmt.Sprintf("published = $%d", argPos))
		args = append(args, *params.Published)
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
		UPDATE events
		SET %s
		WHERE id = $%d AND deleted_at IS NULL
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, eventColumns)

	var event model.Event
	err := scanEvent(r.pool.QueryRow(ctx, query, args...), &event)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return &event, nil
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `
		UPDATE events
		SET deleted_at = $1, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL
	`

	now := time.Now().UTC()
	result, err := r.pool.Exec(ctx, query, now, now, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}
