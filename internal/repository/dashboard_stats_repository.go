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

type DashboardStatsRepository interface {
	FindByOrganizerID(ctx context.Context, organizerID int) (*model.DashboardStats, error)
	PlatformStats(ctx context.Context) (*model.PlatformStats, error)

	// Transaction methods
	Recompute(ctx context.Context, tx pgx.Tx, organizerID int, now time.Time) (*model.DashboardStats, error)
}

type DashboardStatsRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewDashboardStatsRepository(pool *pgxpool.Pool) DashboardStatsRepository {
	return &DashboardStatsRepositoryImpl{
		pool: pool,
	}
}

const dashboardStatsColumns = `organizer_id, total_events, upcoming_events, past_events, current_events,
		total_tickets_sold, total_revenue, total_attendees, updated_at`

func scanDashboardStats(row rowScanner) (*model.DashboardStats, error) {
	var s model.DashboardStats
	err := row.Scan(
		&s.OrganizerID,
		&s.TotalEvents,
		&s.UpcomingEvents,
		&s.PastEvents,
		&s.CurrentEvents,
		&s.TotalTicketsSold,
		&s.TotalRevenue,
		&s.TotalAttendees,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStatsNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *DashboardStatsRepositoryImpl) FindByOrganizerID(ctx context.Context, organizerID int) (*model.DashboardStats, error) {
	query := `SELECT ` + dashboardStatsColumns + ` FROM dashboard_stats WHERE organizer_id = $1`
	return scanDashboardStats(r.pool.QueryRow(ctx, query, organizerID))
}

// Recompute repairs the organizer's event date ranges, then rebuilds the stats row from
// the current events and tickets. updated_at only moves when an aggregate changed.
func (r *DashboardStatsRepositoryImpl) Recompute(ctx context.Context, tx pgx.Tx, organizerID int, now time.Time) (*model.DashboardStats, error) {
	repair := `
		UPDATE events
		SET end_date = start_date + INTERVAL '2 hours'
		WHERE organizer_id = $1 AND (end_date IS NULL OR end_date <= start_date)
	`
	if _, err := tx.Exec(ctx, repair, organizerID); err != nil {
		return nil, fmt.Errorf("failed to repair event dates: %w", err)
	}

	query := `
		WITH ev AS (
			SELECT COUNT(*) AS total,
			       COUNT(*) FILTER (WHERE start_date > $2) AS upcoming,
			       COUNT(*) FILTER (WHERE end_date < $2) AS past,
			       COUNT(*) FILTER (WHERE start_date <= $2 AND end_date >= $2) AS ongoing
			FROM events
			WHERE organizer_id = $1 AND status <> $3
		), tk AS (
			SELECT COUNT(*) AS sold,
			       COALESCE(SUM(price), 0) AS revenue,
			       COUNT(DISTINCT LOWER(customer_email)) AS attendees
			FROM tickets
			WHERE organizer_id = $1 AND status = $4
		)
		INSERT INTO dashboard_stats (
			organizer_id, total_events, upcoming_events, past_events, current_events,
			total_tickets_sold, total_revenue, total_attendees, updated_at
		)
		SELECT $1, ev.total, ev.upcoming, ev.past, ev.ongoing, tk.sold, tk.revenue, tk.attendees, $2
		FROM ev, tk
		ON CONFLICT (organizer_id) DO UPDATE SET
			total_events       = EXCLUDED.total_events,
			upcoming_events    = EXCLUDED.upcoming_events,
			past_events        = EXCLUDED.past_events,
			current_events     = EXCLUDED.current_events,
			total_tickets_sold = EXCLUDED.total_tickets_sold,
			total_revenue      = EXCLUDED.total_revenue,
			total_attendees    = EXCLUDED.total_attendees,
			updated_at = CASE
				WHEN (dashboard_stats.total_events, dashboard_stats.upcoming_events, dashboard_stats.past_events,
				      dashboard_stats.current_events, dashboard_stats.total_tickets_sold,
				      dashboard_stats.total_revenue, dashboard_stats.total_attendees)
				     IS DISTINCT FROM
				     (EXCLUDED.total_events, EXCLUDED.upcoming_events, EXCLUDED.past_events,
				      EXCLUDED.current_events, EXCLUDED.total_tickets_sold,
				      EXCLUDED.total_revenue, EXCLUDED.total_attendees)
				THEN EXCLUDED.updated_at
				ELSE dashboard_stats.updated_at
			END
		RETURNING ` + dashboardStatsColumns

	stats, err := scanDashboardStats(tx.QueryRow(ctx, query,
		organizerID, now, model.EventStatusCancelled, model.TicketStatusPaid,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to recompute dashboard stats: %w", err)
	}
	return stats, nil
}

func (r *DashboardStatsRepositoryImpl) PlatformStats(ctx context.Context) (*model.PlatformStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM organizers),
			(SELECT COUNT(*) FROM sellers),
			(SELECT COUNT(*) FROM events),
			(SELECT COUNT(*) FROM events WHERE status = $1),
			(SELECT COUNT(*) FROM tickets WHERE status = $2),
			(SELECT COALESCE(SUM(price), 0) FROM tickets WHERE status = $2)
	`

	var s model.PlatformStats
	err := r.pool.QueryRow(ctx, query, model.EventStatusPublished, model.TicketStatusPaid).Scan(
		&s.TotalOrganizers,
		&s.TotalSellers,
		&s.TotalEvents,
		&s.PublishedEvents,
		&s.TotalTicketsSold,
		&s.TotalRevenue,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
