package service

import (
	"context"
	"fmt"

	"byblos-atelier/internal/database"
	"byblos-atelier/internal/model"
	"byblos-atelier/internal/repository"
	apperrors "byblos-atelier/pkg/app_errors"
	"byblos-atelier/pkg/logger"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// EventService is the organizer and admin side of events. Every write refreshes the
// owning organizer's dashboard stats in the same transaction.
type EventService interface {
	Create(ctx context.Context, organizerID int, req *model.CreateEventRequest) (*model.EventAvailability, error)
	ListByOrganizer(ctx context.Context, organizerID int) ([]*model.EventAvailability, error)
	Get(ctx context.Context, organizerID, eventID int) (*model.EventAvailability, error)
	Update(ctx context.Context, organizerID, eventID int, params model.UpdateEventParams) (*model.EventAvailability, error)
	UpdateStatus(ctx context.Context, organizerID, eventID int, status model.EventStatus) (*model.Event, error)
	Delete(ctx context.Context, organizerID, eventID int) error

	ListAll(ctx context.Context) ([]*model.Event, error)
	// AdminUpdateStatus applies the same transition rules without an ownership check.
	AdminUpdateStatus(ctx context.Context, eventID int, status model.EventStatus) (*model.Event, error)
}

type EventServiceImpl struct {
	txManager    database.TxManager
	repo         repository.EventRepository
	availability AvailabilityService
	dashboard    DashboardService
}

func NewEventService(
	txManager database.TxManager,
	repo repository.EventRepository,
	availability AvailabilityService,
	dashboard DashboardService,
) EventService {
	return &EventServiceImpl{
		txManager:    txManager,
		repo:         repo,
		availability: availability,
		dashboard:    dashboard,
	}
}

func (s *EventServiceImpl) Create(ctx context.Context, organizerID int, req *model.CreateEventRequest) (*model.EventAvailability, error) {
	event := req.Event(organizerID)
	if event.EndDate == nil || !event.EndDate.After(event.StartDate) {
		end := event.StartDate.Add(model.DefaultEventDuration)
		event.EndDate = &end
	}

	var created *model.Event
	err := s.txManager.WithinTx(ctx, func(tx pgx.Tx) error {
		var err error
		created, err = s.repo.Create(ctx, tx, event)
		if err != nil {
			return err
		}
		_, err = s.dashboard.RefreshInTx(ctx, tx, organizerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.WithComponent("event").Info("Event created",
		zap.Int("event_id", created.ID),
		zap.Int("organizer_id", organizerID),
	)
	return s.resolveOne(ctx, created)
}

func (s *EventServiceImpl) ListByOrganizer(ctx context.Context, organizerID int) ([]*model.EventAvailability, error) {
	events, err := s.repo.ListByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, err
	}
	return s.availability.ResolveEvents(ctx, events, model.ViewOrganizer)
}

func (s *EventServiceImpl) Get(ctx context.Context, organizerID, eventID int) (*model.EventAvailability, error) {
	event, err := s.owned(ctx, organizerID, eventID)
	if err != nil {
		return nil, err
	}
	return s.resolveOne(ctx, event)
}

func (s *EventServiceImpl) Update(ctx context.Context, organizerID, eventID int, params model.UpdateEventParams) (*model.EventAvailability, error) {
	if params.IsEmpty() {
		return nil, apperrors.ErrInvalidInput
	}
	if _, err := s.owned(ctx, organizerID, eventID); err != nil {
		return nil, err
	}

	var updated *model.Event
	err := s.txManager.WithinTx(ctx, func(tx pgx.Tx) error {
		var err error
		updated, err = s.repo.Update(ctx, tx, eventID, params)
		if err != nil {
			return err
		}
		_, err = s.dashboard.RefreshInTx(ctx, tx, organizerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.resolveOne(ctx, updated)
}

func (s *EventServiceImpl) UpdateStatus(ctx context.Context, organizerID, eventID int, status model.EventStatus) (*model.Event, error) {
	return s.transition(ctx, eventID, status, func(event *model.Event) error {
		if event.OrganizerID != organizerID {
			return apperrors.ErrEventNotFound
		}
		return nil
	})
}

func (s *EventServiceImpl) AdminUpdateStatus(ctx context.Context, eventID int, status model.EventStatus) (*model.Event, error) {
	return s.transition(ctx, eventID, status, func(*model.Event) error { return nil })
}

func (s *EventServiceImpl) transition(ctx context.Context, eventID int, status model.EventStatus, authorize func(*model.Event) error) (*model.Event, error) {
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidInput
	}

	var updated *model.Event
	err := s.txManager.WithinTx(ctx, func(tx pgx.Tx) error {
		event, err := s.repo.FindByIDWithLock(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if err := authorize(event); err != nil {
			return err
		}
		if event.Status == status {
			updated = event
			return nil
		}
		if !event.Status.CanTransitionTo(status) {
			return fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidEventStatus, event.Status, status)
		}

		updated, err = s.repo.UpdateStatus(ctx, tx, eventID, status)
		if err != nil {
			return err
		}
		_, err = s.dashboard.RefreshInTx(ctx, tx, event.OrganizerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *EventServiceImpl) Delete(ctx context.Context, organizerID, eventID int) error {
	if _, err := s.owned(ctx, organizerID, eventID); err != nil {
		return err
	}

	return s.txManager.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := s.repo.Delete(ctx, tx, eventID); err != nil {
			return err
		}
		_, err := s.dashboard.RefreshInTx(ctx, tx, organizerID)
		return err
	})
}

func (s *EventServiceImpl) ListAll(ctx context.Context) ([]*model.Event, error) {
	return s.repo.List(ctx)
}

// owned hides other organizers' events behind ErrEventNotFound.
func (s *EventServiceImpl) owned(ctx context.Context, organizerID, eventID int) (*model.Event, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != organizerID {
		return nil, apperrors.ErrEventNotFound
	}
	return event, nil
}

func (s *EventServiceImpl) resolveOne(ctx context.Context, event *model.Event) (*model.EventAvailability, error) {
	resolved, err := s.availability.ResolveEvents(ctx, []*model.Event{event}, model.ViewOrganizer)
	if err != nil {
		return nil, err
	}
	return resolved[0], nil
}
