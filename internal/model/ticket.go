package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TicketStatus string

const (
	TicketStatusPending   TicketStatus = "pending"
	TicketStatusPaid      TicketStatus = "paid"
	TicketStatusCancelled TicketStatus = "cancelled"
	TicketStatusRefunded  TicketStatus = "refunded"
)

func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusPending, TicketStatusPaid, TicketStatusCancelled, TicketStatusRefunded:
		return true
	}
	return false
}

func (s TicketStatus) CanTransitionTo(target TicketStatus) bool {
	transitions := map[TicketStatus][]TicketStatus{
		TicketStatusPending:   {TicketStatusPaid, TicketStatusCancelled},
		TicketStatusPaid:      {TicketStatusCancelled, TicketStatusRefunded},
		TicketStatusCancelled: {},
		TicketStatusRefunded:  {},
	}

	for _, status := range transitions[s] {
		if status == target {
			return true
		}
	}
	return false
}

// Ticket is one issued unit of an event, optionally bound to a ticket type.
type Ticket struct {
	ID            int             `json:"id" db:"id"`
	EventID       int             `json:"event_id" db:"event_id"`
	OrganizerID   int             `json:"organizer_id" db:"organizer_id"`
	TicketTypeID  *int            `json:"ticket_type_id,omitempty" db:"ticket_type_id"`
	CustomerName  string          `json:"customer_name" db:"customer_name"`
	CustomerEmail string          `json:"customer_email" db:"customer_email"`
	Price         decimal.Decimal `json:"price" db:"price"`
	Status        TicketStatus    `json:"status" db:"status"`
	TicketNumber  string          `json:"ticket_number" db:"ticket_number"`
	TransactionID *string         `json:"transaction_id,omitempty" db:"transaction_id"`
	CheckedInAt   *time.Time      `json:"checked_in_at,omitempty" db:"checked_in_at"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

func (t *Ticket) IsCheckedIn() bool {
	return t.CheckedInAt != nil
}

// TicketValidation is the public view of a ticket looked up by number.
type TicketValidation struct {
	Valid        bool         `json:"valid"`
	TicketNumber string       `json:"ticket_number"`
	Status       TicketStatus `json:"status"`
	CustomerName string       `json:"customer_name"`
	EventID      int          `json:"event_id"`
	EventName    string       `json:"event_name"`
	EventStart   time.Time    `json:"event_start"`
	TicketType   *string      `json:"ticket_type,omitempty"`
	CheckedInAt  *time.Time   `json:"checked_in_at,omitempty"`
}
