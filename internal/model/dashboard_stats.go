package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats is the per-organizer summary row, recomputed on every write that
// affects it.
type DashboardStats struct {
	OrganizerID      int             `json:"organizer_id"`
	TotalEvents      int             `json:"total_events"`
	UpcomingEvents   int             `json:"upcoming_events"`
	PastEvents       int             `json:"past_events"`
	CurrentEvents    int             `json:"current_events"`
	TotalTicketsSold int             `json:"total_tickets_sold"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalAttendees   int             `json:"total_attendees"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// PlatformStats is the admin dashboard summary.
type PlatformStats struct {
	TotalOrganizers  int             `json:"total_organizers"`
	TotalSellers     int             `json:"total_sellers"`
	TotalEvents      int             `json:"total_events"`
	PublishedEvents  int             `json:"published_events"`
	TotalTicketsSold int             `json:"total_tickets_sold"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
}
