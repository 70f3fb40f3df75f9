package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"byblos-atelier/internal/model"
	apperrors "byblos-atelier/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository interface {
	FindByID(ctx context.Context, id int) (*model.Event, error)
	ListByOrganizer(ctx context.Context, organizerID int) ([]*model.Event, error)
	ListUpcoming(ctx context.Context, now time.Time, limit int) ([]*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, event *model.Event) (*model.Event, error)
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Event, error)
	Update(ctx context.Context, tx pgx.Tx, id int, params model.UpdateEventParams) (*model.Event, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id int, status model.EventStatus) (*model.Event, error)
	Delete(ctx context.Context, tx pgx.Tx, id int) error
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

const eventColumns = `id, organizer_id, name, description, location, image_url,
		start_date, end_date, status, ticket_quantity, ticket_price, created_at, updated_at`

func scanEvent(row rowScanner) (*model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID,
		&event.OrganizerID,
		&event.Name,
		&event.Description,
		&event.Location,
		&event.ImageURL,
		&event.StartDate,
		&event.EndDate,
		&event.Status,
		&event.TicketQuantity,
		&event.TicketPrice,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func collectEvents(rows pgx.Rows) ([]*model.Event, error) {
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events (
			organizer_id, name, description, location, image_url,
			start_date, end_date, status, ticket_quantity, ticket_price
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + eventColumns

	created, err := scanEvent(tx.QueryRow(ctx, query,
		event.OrganizerID, event.Name, event.Description, event.Location, event.ImageURL,
		event.StartDate, event.EndDate, event.Status, event.TicketQuantity, event.TicketPrice,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return created, nil
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(r.pool.QueryRow(ctx, query, id))
}

func (r *EventRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`
	return scanEvent(tx.QueryRow(ctx, query, id))
}

func (r *EventRepositoryImpl) ListByOrganizer(ctx context.Context, organizerID int) ([]*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE organizer_id = $1
		ORDER BY start_date DESC, id DESC
	`
	rows, err := r.pool.Query(ctx, query, organizerID)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

func (r *EventRepositoryImpl) ListUpcoming(ctx context.Context, now time.Time, limit int) ([]*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE status = $1 AND start_date > $2
		ORDER BY start_date ASC, id ASC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, model.EventStatusPublished, now, limit)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

func (r *EventRepositoryImpl) List(ctx context.Context) ([]*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

func (r *EventRepositoryImpl) Update(ctx context.Context, tx pgx.Tx, id int, params model.UpdateEventParams) (*model.Event, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if params.Name != nil {
		add("name", *params.Name)
	}
	if params.Description != nil {
		add("description", *params.Description)
	}
	if params.Location != nil {
		add("location", *params.Location)
	}
	if params.ImageURL != nil {
		add("image_url", *params.ImageURL)
	}
	if params.StartDate != nil {
		add("start_date", *params.StartDate)
	}
	if params.EndDate != nil {
		add("end_date", *params.EndDate)
	}
	if params.TicketQuantity != nil {
		add("ticket_quantity", *params.TicketQuantity)
	}
	if params.TicketPrice != nil {
		add("ticket_price", *params.TicketPrice)
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	add("updated_at", time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE events
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, eventColumns)

	return scanEvent(tx.QueryRow(ctx, query, args...))
}

func (r *EventRepositoryImpl) UpdateStatus(ctx context.Context, tx pgx.Tx, id int, status model.EventStatus) (*model.Event, error) {
	query := `
		UPDATE events
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + eventColumns

	event, err := scanEvent(tx.QueryRow(ctx, query, status, time.Now().UTC(), id))
	if err != nil && !errors.Is(err, apperrors.ErrEventNotFound) {
		return nil, fmt.Errorf("failed to update event status: %w", err)
	}
	return event, err
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, tx pgx.Tx, id int) error {
	result, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}
