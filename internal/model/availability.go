package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// View selects which audience an availability result is built for.
type View int

const (
	// ViewPublic applies the sales window filter and hides organizer-only counters.
	ViewPublic View = iota
	ViewOrganizer
)

type TicketTypeAvailability struct {
	ID             *int            `json:"id"`
	Name           string          `json:"name"`
	Description    *string         `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Quantity       int             `json:"quantity"`
	Sold           int             `json:"sold"`
	Available      int             `json:"available"`
	Revenue        decimal.Decimal `json:"revenue"`
	SalesStartDate *time.Time      `json:"sales_start_date,omitempty"`
	SalesEndDate   *time.Time      `json:"sales_end_date,omitempty"`
	TotalCreated   *int            `json:"total_created,omitempty"`
	IsDefault      bool            `json:"is_default"`
}

type EventAvailability struct {
	*Event
	TicketTypes      []TicketTypeAvailability `json:"ticket_types"`
	TotalTickets     int                      `json:"total_tickets"`
	TicketsSold      int                      `json:"tickets_sold"`
	AvailableTickets int                      `json:"available_tickets"`
	TotalRevenue     decimal.Decimal          `json:"total_revenue"`
	MinPrice         *decimal.Decimal         `json:"min_price"`
}
