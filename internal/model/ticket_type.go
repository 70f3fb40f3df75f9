package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultTicketTypeName = "General Admission"

type TicketType struct {
	ID             int             `json:"id" db:"id"`
	EventID        int             `json:"event_id" db:"event_id"`
	Name           string          `json:"name" db:"name"`
	Description    *string         `json:"description,omitempty" db:"description"`
	Price          decimal.Decimal `json:"price" db:"price"`
	Quantity       int             `json:"quantity" db:"quantity"`
	SalesStartDate *time.Time      `json:"sales_start_date,omitempty" db:"sales_start_date"`
	SalesEndDate   *time.Time      `json:"sales_end_date,omitempty" db:"sales_end_date"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// OnSale reports whether now falls inside the sales window. A nil bound is open.
func (t *TicketType) OnSale(now time.Time) bool {
	if t.SalesStartDate != nil && now.Before(*t.SalesStartDate) {
		return false
	}
	if t.SalesEndDate != nil && now.After(*t.SalesEndDate) {
		return false
	}
	return true
}

// TicketTypeStats are the ticket aggregates of one ticket type.
type TicketTypeStats struct {
	TicketTypeID int
	EventID      int
	Sold         int
	TotalCreated int
	Revenue      decimal.Decimal
}

// EventSales are the ticket aggregates of an event, regardless of ticket type.
type EventSales struct {
	EventID      int
	Sold         int
	TotalCreated int
	Revenue      decimal.Decimal
}
