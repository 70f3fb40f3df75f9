package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"byblos-atelier/internal/model"
	apperrors "byblos-atelier/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketTypeRepository interface {
	FindByID(ctx context.Context, id int) (*model.TicketType, error)
	ListByEventIDs(ctx context.Context, eventIDs []int) ([]*model.TicketType, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, ticketType *model.TicketType) (*model.TicketType, error)
	Replace(ctx context.Context, tx pgx.Tx, id int, ticketType *model.TicketType) (*model.TicketType, error)
	Delete(ctx context.Context, tx pgx.Tx, id int) error
}

type TicketTypeRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTicketTypeRepository(pool *pgxpool.Pool) TicketTypeRepository {
	return &TicketTypeRepositoryImpl{
		pool: pool,
	}
}

const ticketTypeColumns = `id, event_id, name, description, price, quantity,
		sales_start_date, sales_end_date, created_at, updated_at`

func scanTicketType(row rowScanner) (*model.TicketType, error) {
	var tt model.TicketType
	err := row.Scan(
		&tt.ID,
		&tt.EventID,
		&tt.Name,
		&tt.Description,
		&tt.Price,
		&tt.Quantity,
		&tt.SalesStartDate,
		&tt.SalesEndDate,
		&tt.CreatedAt,
		&tt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketTypeNotFound
		}
		return nil, err
	}
	return &tt, nil
}

func (r *TicketTypeRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, ticketType *model.TicketType) (*model.TicketType, error) {
	query := `
		INSERT INTO ticket_types (
			event_id, name, description, price, quantity, sales_start_date, sales_end_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + ticketTypeColumns

	created, err := scanTicketType(tx.QueryRow(ctx, query,
		ticketType.EventID, ticketType.Name, ticketType.Description, ticketType.Price,
		ticketType.Quantity, ticketType.SalesStartDate, ticketType.SalesEndDate,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket type: %w", err)
	}
	return created, nil
}

func (r *TicketTypeRepositoryImpl) FindByID(ctx context.Context, id int) (*model.TicketType, error) {
	query := `SELECT ` + ticketTypeColumns + ` FROM ticket_types WHERE id = $1`
	return scanTicketType(r.pool.QueryRow(ctx, query, id))
}

// ListByEventIDs loads the ticket types of many events in one round trip.
func (r *TicketTypeRepositoryImpl) ListByEventIDs(ctx context.Context, eventIDs []int) ([]*model.TicketType, error) {
	if len(eventIDs) == 0 {
		return []*model.TicketType{}, nil
	}

	query := `
		SELECT ` + ticketTypeColumns + `
		FROM ticket_types
		WHERE event_id = ANY($1)
		ORDER BY event_id, price ASC, id ASC
	`
	rows, err := r.pool.Query(ctx, query, eventIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]*model.TicketType, 0)
	for rows.Next() {
		tt, err := scanTicketType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, tt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return types, nil
}

// Replace overwrites every editable column. Nil description and sales bounds are
// written as NULL.
func (r *TicketTypeRepositoryImpl) Replace(ctx context.Context, tx pgx.Tx, id int, ticketType *model.TicketType) (*model.TicketType, error) {
	query := `
		UPDATE ticket_types
		SET name = $1, description = $2, price = $3, quantity = $4,
		    sales_start_date = $5, sales_end_date = $6, updated_at = $7
		WHERE id = $8
		RETURNING ` + ticketTypeColumns

	updated, err := scanTicketType(tx.QueryRow(ctx, query,
		ticketType.Name, ticketType.Description, ticketType.Price, ticketType.Quantity,
		ticketType.SalesStartDate, ticketType.SalesEndDate, time.Now().UTC(), id,
	))
	if err != nil {
		if errors.Is(err, apperrors.ErrTicketTypeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to replace ticket type: %w", err)
	}
	return updated, nil
}

func (r *TicketTypeRepositoryImpl) Delete(ctx context.Context, tx pgx.Tx, id int) error {
	result, err := tx.Exec(ctx, `DELETE FROM ticket_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrTicketTypeNotFound
	}
	return nil
}
