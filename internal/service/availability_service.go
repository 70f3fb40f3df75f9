package service

import (
	"context"
	"sort"
	"time"

	"byblos-atelier/internal/model"
	"byblos-atelier/internal/repository"
	apperrors "byblos-atelier/pkg/app_errors"

	"github.com/shopspring/decimal"
)

const (
	DefaultUpcomingLimit = 10
	MaxUpcomingLimit     = 100
)

type AvailabilityService interface {
	// ResolveEvent returns ErrEventNotFound when the event does not exist or, for the
	// public view, is not published.
	ResolveEvent(ctx context.Context, eventID int, view model.View) (*model.EventAvailability, error)
	ResolveEvents(ctx context.Context, events []*model.Event, view model.View) ([]*model.EventAvailability, error)
	ListTicketTypes(ctx context.Context, eventID int, view model.View) ([]model.TicketTypeAvailability, error)
	Upcoming(ctx context.Context, limit int) ([]*model.EventAvailability, error)
}

type AvailabilityServiceImpl struct {
	eventRepo      repository.EventRepository
	ticketTypeRepo repository.TicketTypeRepository
	ticketRepo     repository.TicketRepository
	now            func() time.Time
}

func NewAvailabilityService(
	eventRepo repository.EventRepository,
	ticketTypeRepo repository.TicketTypeRepository,
	ticketRepo repository.TicketRepository,
) AvailabilityService {
	return &AvailabilityServiceImpl{
		eventRepo:      eventRepo,
		ticketTypeRepo: ticketTypeRepo,
		ticketRepo:     ticketRepo,
		now:            time.Now,
	}
}

func (s *AvailabilityServiceImpl) ResolveEvent(ctx context.Context, eventID int, view model.View) (*model.EventAvailability, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if view == model.ViewPublic && !event.IsPublished() {
		return nil, apperrors.ErrEventNotFound
	}

	resolved, err := s.ResolveEvents(ctx, []*model.Event{event}, view)
	if err != nil {
		return nil, err
	}
	return resolved[0], nil
}

func (s *AvailabilityServiceImpl) ListTicketTypes(ctx context.Context, eventID int, view model.View) ([]model.TicketTypeAvailability, error) {
	resolved, err := s.ResolveEvent(ctx, eventID, view)
	if err != nil {
		return nil, err
	}
	return resolved.TicketTypes, nil
}

func (s *AvailabilityServiceImpl) Upcoming(ctx context.Context, limit int) ([]*model.EventAvailability, error) {
	events, err := s.eventRepo.ListUpcoming(ctx, s.now(), ClampUpcomingLimit(limit))
	if err != nil {
		return nil, err
	}
	return s.ResolveEvents(ctx, events, model.ViewPublic)
}

// ResolveEvents loads ticket types and ticket aggregates for all events in three
// queries, then resolves each event in memory. Output order follows events.
func (s *AvailabilityServiceImpl) ResolveEvents(ctx context.Context, events []*model.Event, view model.View) ([]*model.EventAvailability, error) {
	if len(events) == 0 {
		return []*model.EventAvailability{}, nil
	}

	ids := make([]int, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}

	types, err := s.ticketTypeRepo.ListByEventIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	typeStats, err := s.ticketRepo.StatsByTicketType(ctx, ids)
	if err != nil {
		return nil, err
	}
	eventSales, err := s.ticketRepo.SalesByEvent(ctx, ids)
	if err != nil {
		return nil, err
	}

	typesByEvent := make(map[int][]*model.TicketType, len(events))
	for _, tt := range types {
		typesByEvent[tt.EventID] = append(typesByEvent[tt.EventID], tt)
	}
	statsByEvent := make(map[int]map[int]model.TicketTypeStats, len(events))
	for _, st := range typeStats {
		if statsByEvent[st.EventID] == nil {
			statsByEvent[st.EventID] = make(map[int]model.TicketTypeStats)
		}
		statsByEvent[st.EventID][st.TicketTypeID] = st
	}
	salesByEvent := make(map[int]model.EventSales, len(eventSales))
	for _, es := range eventSales {
		salesByEvent[es.EventID] = es
	}

	now := s.now()
	result := make([]*model.EventAvailability, 0, len(events))
	for _, event := range events {
		resolved := ResolveTicketTypes(event, typesByEvent[event.ID], statsByEvent[event.ID], salesByEvent[event.ID], view, now)
		result = append(result, Summarize(event, resolved))
	}
	return result, nil
}

// ResolveTicketTypes builds the ticket tiers of one event. stats is keyed by ticket type
// id and must only contain tickets of this event. With no persisted types a single
// "General Admission" tier is synthesized from the event's legacy fields and sales.
func ResolveTicketTypes(
	event *model.Event,
	types []*model.TicketType,
	stats map[int]model.TicketTypeStats,
	sales model.EventSales,
	view model.View,
	now time.Time,
) []model.TicketTypeAvailability {
	if len(types) == 0 {
		def := model.TicketTypeAvailability{
			Name:      model.DefaultTicketTypeName,
			Price:     event.TicketPrice,
			Quantity:  event.TicketQuantity,
			Sold:      sales.Sold,
			Available: available(event.TicketQuantity, sales.Sold),
			Revenue:   sales.Revenue,
			IsDefault: true,
		}
		if view == model.ViewOrganizer {
			total := sales.TotalCreated
			def.TotalCreated = &total
		}
		return []model.TicketTypeAvailability{def}
	}

	out := make([]model.TicketTypeAvailability, 0, len(types))
	for _, tt := range types {
		if view == model.ViewPublic && !tt.OnSale(now) {
			continue
		}

		st := stats[tt.ID]
		id := tt.ID
		record := model.TicketTypeAvailability{
			ID:             &id,
			Name:           tt.Name,
			Description:    tt.Description,
			Price:          tt.Price,
			Quantity:       tt.Quantity,
			Sold:           st.Sold,
			Available:      available(tt.Quantity, st.Sold),
			Revenue:        st.Revenue,
			SalesStartDate: tt.SalesStartDate,
			SalesEndDate:   tt.SalesEndDate,
		}
		if view == model.ViewOrganizer {
			total := st.TotalCreated
			record.TotalCreated = &total
		}
		out = append(out, record)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Price.Cmp(out[j].Price); c != 0 {
			return c < 0
		}
		return *out[i].ID < *out[j].ID
	})
	return out
}

// Summarize attaches resolved tiers to the event and totals them.
func Summarize(event *model.Event, types []model.TicketTypeAvailability) *model.EventAvailability {
	result := &model.EventAvailability{
		Event:        event,
		TicketTypes:  types,
		TotalRevenue: decimal.Zero,
	}
	for i, tt := range types {
		result.TotalTickets += tt.Quantity
		result.TicketsSold += tt.Sold
		result.AvailableTickets += tt.Available
		result.TotalRevenue = result.TotalRevenue.Add(tt.Revenue)
		if result.MinPrice == nil || tt.Price.LessThan(*result.MinPrice) {
			price := types[i].Price
			result.MinPrice = &price
		}
	}
	return result
}

func ClampUpcomingLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxUpcomingLimit {
		return MaxUpcomingLimit
	}
	return limit
}

func available(quantity, sold int) int {
	if sold >= quantity {
		return 0
	}
	return quantity - sold
}
