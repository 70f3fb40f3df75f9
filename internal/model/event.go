package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusDraft, EventStatusPublished, EventStatusCancelled, EventStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether an event in status s may move to target.
func (s EventStatus) CanTransitionTo(target EventStatus) bool {
	transitions := map[EventStatus][]EventStatus{
		EventStatusDraft:     {EventStatusPublished, EventStatusCancelled},
		EventStatusPublished: {EventStatusDraft, EventStatusCancelled, EventStatusCompleted},
		EventStatusCancelled: {EventStatusDraft},
		EventStatusCompleted: {}, // terminal
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}

// DefaultEventDuration is applied to events whose end date is missing or not after the start.
const DefaultEventDuration = 2 * time.Hour

type Event struct {
	ID          int         `json:"id" db:"id"`
	OrganizerID int         `json:"organizer_id" db:"organizer_id"`
	Name        string      `json:"name" db:"name"`
	Description *string     `json:"description,omitempty" db:"description"`
	Location    *string     `json:"location,omitempty" db:"location"`
	ImageURL    *string     `json:"image_url,omitempty" db:"image_url"`
	StartDate   time.Time   `json:"start_date" db:"start_date"`
	EndDate     *time.Time  `json:"end_date,omitempty" db:"end_date"`
	Status      EventStatus `json:"status" db:"status"`

	// Legacy single-tier fields, used when the event has no ticket types.
	TicketQuantity int             `json:"ticket_quantity" db:"ticket_quantity"`
	TicketPrice    decimal.Decimal `json:"ticket_price" db:"ticket_price"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (e *Event) IsPublished() bool {
	return e.Status == EventStatusPublished
}

type UpdateEventParams struct {
	Name           *string
	Description    *string
	Location       *string
	ImageURL       *string
	StartDate      *time.Time
	EndDate        *time.Time
	TicketQuantity *int
	TicketPrice    *decimal.Decimal
}

func (p UpdateEventParams) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Location == nil && p.ImageURL == nil &&
		p.StartDate == nil && p.EndDate == nil && p.TicketQuantity == nil && p.TicketPrice == nil
}
