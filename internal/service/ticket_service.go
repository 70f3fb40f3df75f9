package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"byblos-atelier/internal/database"
	"byblos-atelier/internal/metrics"
	"byblos-atelier/internal/model"
	"byblos-atelier/internal/repository"
	apperrors "byblos-atelier/pkg/app_errors"
	"byblos-atelier/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TicketService interface {
	// RecordSale inserts a ticket and refreshes the organizer's stats in one transaction.
	// Quantity caps are not enforced.
	RecordSale(ctx context.Context, organizerID, eventID int, req *model.RecordSaleRequest) (*model.Ticket, error)
	ListByEvent(ctx context.Context, organizerID, eventID int) ([]*model.Ticket, error)
	UpdateStatus(ctx context.Context, organizerID, eventID, ticketID int, status model.TicketStatus) (*model.Ticket, error)
	Validate(ctx context.Context, ticketNumber string) (*model.TicketValidation, error)
	CheckIn(ctx context.Context, ticketNumber string) (*model.TicketValidation, error)
}

type TicketServiceImpl struct {
	txManager      database.TxManager
	repo           repository.TicketRepository
	eventRepo      repository.EventRepository
	ticketTypeRepo repository.TicketTypeRepository
	dashboard      DashboardService
	now            func() time.Time
}

func NewTicketService(
	txManager database.TxManager,
	repo repository.TicketRepository,
	eventRepo repository.EventRepository,
	ticketTypeRepo repository.TicketTypeRepository,
	dashboard DashboardService,
) TicketService {
	return &TicketServiceImpl{
		txManager:      txManager,
		repo:           repo,
		eventRepo:      eventRepo,
		ticketTypeRepo: ticketTypeRepo,
		dashboard:      dashboard,
		now:            time.Now,
	}
}

func (s *TicketServiceImpl) RecordSale(ctx context.Context, organizerID, eventID int, req *model.RecordSaleRequest) (*model.Ticket, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != organizerID {
		return nil, apperrors.ErrEventNotFound
	}

	price := event.TicketPrice
	if req.TicketTypeID != nil {
		tt, err := s.ticketTypeRepo.FindByID(ctx, *req.TicketTypeID)
		if err != nil {
			return nil, err
		}
		if tt.EventID != eventID {
			return nil, apperrors.ErrTicketTypeNotFound
		}
		price = tt.Price
	}
	if req.Price != nil {
		price = *req.Price
	}

	status := req.Status
	if status == "" {
		status = model.TicketStatusPaid
	}

	ticket := &model.Ticket{
		EventID:       eventID,
		OrganizerID:   organizerID,
		TicketTypeID:  req.TicketTypeID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		Price:         price,
		Status:        status,
		TransactionID: req.TransactionID,
		TicketNumber:  NewTicketNumber(req.TransactionID, s.now()),
	}

	// a caller-supplied number is the caller's to fix; a generated one is redrawn
	// in a fresh transaction since the unique violation aborts the current one
	generated := req.TransactionID == nil || strings.TrimSpace(*req.TransactionID) == ""
	var created *model.Ticket
	for attempt := 1; ; attempt++ {
		err = s.txManager.WithinTx(ctx, func(tx pgx.Tx) error {
			var err error
			created, err = s.repo.Create(ctx, tx, ticket)
			if err != nil {
				return err
			}
			_, err = s.dashboard.RefreshInTx(ctx, tx, organizerID)
			return err
		})
		if generated && attempt < ticketNumberAttempts && errors.Is(err, apperrors.ErrDuplicateTicketNumber) {
			logger.WithComponent("ticket").Warn("Generated ticket number collided, retrying",
				zap.String("ticket_number", ticket.TicketNumber),
				zap.Int("attempt", attempt),
			)
			ticket.TicketNumber = NewTicketNumber(nil, s.now())
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}

	metrics.TrackTicketSale()
	logger.WithComponent("ticket").Info("Ticket recorded",
		zap.Int("ticket_id", created.ID),
		zap.Int("event_id", eventID),
		zap.String("ticket_number", created.TicketNumber),
		zap.String("status", string(created.Status)),
	)
	return created, nil
}

const ticketNumberAttempts = 3

// NewTicketNumber uses the caller's transaction id when present, otherwise
// TKT-YYYYMMDD-XXXXXXXXXXXXXXXX with sixteen random hex digits.
func NewTicketNumber(transactionID *string, now time.Time) string {
	if transactionID != nil && strings.TrimSpace(*transactionID) != "" {
		return strings.TrimSpace(*transactionID)
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:16])
	return fmt.Sprintf("TKT-%s-%s", now.UTC().Format("20060102"), suffix)
}

func (s *TicketServiceImpl) ListByEvent(ctx context.Context, organizerID, eventID int) ([]*model.Ticket, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != organizerID {
		return nil, apperrors.ErrEventNotFound
	}
	return s.repo.ListByEvent(ctx, eventID)
}

func (s *TicketServiceImpl) UpdateStatus(ctx context.Context, organizerID, eventID, ticketID int, status model.TicketStatus) (*model.Ticket, error) {
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidInput
	}

	var updated *model.Ticket
	err := s.txManager.WithinTx(ctx, func(tx pgx.Tx) error {
		ticket, err := s.repo.FindByIDWithLock(ctx, tx, ticketID)
		if err != nil {
			return err
		}
		if ticket.EventID != eventID || ticket.OrganizerID != organizerID {
			return apperrors.ErrTicketNotFound
		}
		if ticket.Status == status {
			updated = ticket
			return nil
		}
		if !ticket.Status.CanTransitionTo(status) {
			return fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTicketStatus, ticket.Status, status)
		}

		updated, err = s.repo.UpdateStatus(ctx, tx, ticketID, status)
		if err != nil {
			return err
		}
		_, err = s.dashboard.RefreshInTx(ctx, tx, organizerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *TicketServiceImpl) Validate(ctx context.Context, ticketNumber string) (*model.TicketValidation, error) {
	ticket, err := s.repo.FindByNumber(ctx, ticketNumber)
	if err != nil {
		return nil, err
	}
	return s.describe(ctx, ticket)
}

func (s *TicketServiceImpl) CheckIn(ctx context.Context, ticketNumber string) (*model.TicketValidation, error) {
	ticket, err := s.repo.FindByNumber(ctx, ticketNumber)
	if err != nil {
		return nil, err
	}

	validation, err := s.describe(ctx, ticket)
	if err != nil {
		return nil, err
	}
	if !validation.Valid {
		if ticket.IsCheckedIn() {
			return nil, apperrors.ErrTicketAlreadyCheckedIn
		}
		return nil, apperrors.ErrTicketNotValid
	}

	checkedIn, err := s.repo.CheckIn(ctx, ticket.ID, s.now().UTC())
	if err != nil {
		return nil, err
	}

	validation.CheckedInAt = checkedIn.CheckedInAt
	return validation, nil
}

// describe reports a ticket as valid when it is paid, not yet checked in and its event
// is neither cancelled nor completed.
func (s *TicketServiceImpl) describe(ctx context.Context, ticket *model.Ticket) (*model.TicketValidation, error) {
	event, err := s.eventRepo.FindByID(ctx, ticket.EventID)
	if err != nil {
		return nil, err
	}

	v := &model.TicketValidation{
		TicketNumber: ticket.TicketNumber,
		Status:       ticket.Status,
		CustomerName: ticket.CustomerName,
		EventID:      event.ID,
		EventName:    event.Name,
		EventStart:   event.StartDate,
		CheckedInAt:  ticket.CheckedInAt,
	}

	if ticket.TicketTypeID != nil {
		tt, err := s.ticketTypeRepo.FindByID(ctx, *ticket.TicketTypeID)
		if err != nil && !errors.Is(err, apperrors.ErrTicketTypeNotFound) {
			return nil, err
		}
		if tt != nil {
			v.TicketType = &tt.Name
		}
	}

	v.Valid = ticket.Status == model.TicketStatusPaid &&
		!ticket.IsCheckedIn() &&
		event.Status != model.EventStatusCancelled &&
		event.Status != model.EventStatusCompleted
	return v, nil
}
