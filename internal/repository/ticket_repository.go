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

type TicketRepository interface {
	FindByID(ctx context.Context, id int) (*model.Ticket, error)
	FindByNumber(ctx context.Context, ticketNumber string) (*model.Ticket, error)
	ListByEvent(ctx context.Context, eventID int) ([]*model.Ticket, error)
	CheckIn(ctx context.Context, id int, at time.Time) (*model.Ticket, error)

	// StatsByTicketType aggregates tickets per (ticket_type_id, event_id) for all given events.
	StatsByTicketType(ctx context.Context, eventIDs []int) ([]model.TicketTypeStats, error)
	// SalesByEvent aggregates tickets per event regardless of ticket type.
	SalesByEvent(ctx context.Context, eventIDs []int) ([]model.EventSales, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, error)
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Ticket, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id int, status model.TicketStatus) (*model.Ticket, error)
}

type TicketRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &TicketRepositoryImpl{
		pool: pool,
	}
}

const ticketColumns = `id, event_id, organizer_id, ticket_type_id, customer_name, customer_email,
		price, status, ticket_number, transaction_id, checked_in_at, created_at, updated_at`

func scanTicket(row rowScanner) (*model.Ticket, error) {
	var ticket model.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.EventID,
		&ticket.OrganizerID,
		&ticket.TicketTypeID,
		&ticket.CustomerName,
		&ticket.CustomerEmail,
		&ticket.Price,
		&ticket.Status,
		&ticket.TicketNumber,
		&ticket.TransactionID,
		&ticket.CheckedInAt,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *TicketRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, error) {
	query := `
		INSERT INTO tickets (
			event_id, organizer_id, ticket_type_id, customer_name, customer_email,
			price, status, ticket_number, transaction_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + ticketColumns

	created, err := scanTicket(tx.QueryRow(ctx, query,
		ticket.EventID, ticket.OrganizerID, ticket.TicketTypeID, ticket.CustomerName,
		ticket.CustomerEmail, ticket.Price, ticket.Status, ticket.TicketNumber, ticket.TransactionID,
	))
	if err != nil {
		if isUniqueViolation(err, "tickets_ticket_number_key") {
			return nil, apperrors.ErrDuplicateTicketNumber
		}
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	return created, nil
}

func (r *TicketRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`
	return scanTicket(r.pool.QueryRow(ctx, query, id))
}

func (r *TicketRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1 FOR UPDATE`
	return scanTicket(tx.QueryRow(ctx, query, id))
}

func (r *TicketRepositoryImpl) FindByNumber(ctx context.Context, ticketNumber string) (*model.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE ticket_number = $1`
	return scanTicket(r.pool.QueryRow(ctx, query, ticketNumber))
}

func (r *TicketRepositoryImpl) ListByEvent(ctx context.Context, eventID int) ([]*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE event_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*model.Ticket, 0)
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *TicketRepositoryImpl) UpdateStatus(ctx context.Context, tx pgx.Tx, id int, status model.TicketStatus) (*model.Ticket, error) {
	query := `
		UPDATE tickets
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + ticketColumns

	ticket, err := scanTicket(tx.QueryRow(ctx, query, status, time.Now().UTC(), id))
	if err != nil && !errors.Is(err, apperrors.ErrTicketNotFound) {
		return nil, fmt.Errorf("failed to update ticket status: %w", err)
	}
	return ticket, err
}

// CheckIn stamps checked_in_at once. A ticket that is already checked in or no longer
// paid is left untouched and reported as ErrTicketAlreadyCheckedIn / ErrTicketNotValid.
func (r *TicketRepositoryImpl) CheckIn(ctx context.Context, id int, at time.Time) (*model.Ticket, error) {
	query := `
		UPDATE tickets
		SET checked_in_at = $1, updated_at = $1
		WHERE id = $2 AND status = $3 AND checked_in_at IS NULL
		RETURNING ` + ticketColumns

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, at, id, model.TicketStatusPaid))
	if err == nil {
		return ticket, nil
	}
	if !errors.Is(err, apperrors.ErrTicketNotFound) {
		return nil, fmt.Errorf("failed to check in ticket: %w", err)
	}

	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != model.TicketStatusPaid {
		return nil, apperrors.ErrTicketNotValid
	}
	return nil, apperrors.ErrTicketAlreadyCheckedIn
}

func (r *TicketRepositoryImpl) StatsByTicketType(ctx context.Context, eventIDs []int) ([]model.TicketTypeStats, error) {
	if len(eventIDs) == 0 {
		return []model.TicketTypeStats{}, nil
	}

	query := `
		SELECT ticket_type_id, event_id,
		       COUNT(*) FILTER (WHERE status = $2) AS sold,
		       COUNT(*) AS total_created,
		       COALESCE(SUM(price) FILTER (WHERE status = $2), 0) AS revenue
		FROM tickets
		WHERE event_id = ANY($1) AND ticket_type_id IS NOT NULL
		GROUP BY ticket_type_id, event_id
	`
	rows, err := r.pool.Query(ctx, query, eventIDs, model.TicketStatusPaid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]model.TicketTypeStats, 0)
	for rows.Next() {
		var s model.TicketTypeStats
		if err := rows.Scan(&s.TicketTypeID, &s.EventID, &s.Sold, &s.TotalCreated, &s.Revenue); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *TicketRepositoryImpl) SalesByEvent(ctx context.Context, eventIDs []int) ([]model.EventSales, error) {
	if len(eventIDs) == 0 {
		return []model.EventSales{}, nil
	}

	query := `
		SELECT event_id,
		       COUNT(*) FILTER (WHERE status = $2) AS sold,
		       COUNT(*) AS total_created,
		       COALESCE(SUM(price) FILTER (WHERE status = $2), 0) AS revenue
		FROM tickets
		WHERE event_id = ANY($1)
		GROUP BY event_id
	`
	rows, err := r.pool.Query(ctx, query, eventIDs, model.TicketStatusPaid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := make([]model.EventSales, 0)
	for rows.Next() {
		var s model.EventSales
		if err := rows.Scan(&s.EventID, &s.Sold, &s.TotalCreated, &s.Revenue); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sales, nil
}
