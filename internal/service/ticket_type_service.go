package service

import (
	"context"

	"byblos-atelier/internal/database"
	"byblos-atelier/internal/model"
	"byblos-atelier/internal/repository"
	apperrors "byblos-atelier/pkg/app_errors"

	"github.com/jackc/pgx/v5"
)

type TicketTypeService interface {
	Create(ctx context.Context, organizerID, eventID int, req *model.TicketTypeRequest) (*model.TicketType, error)
	Update(ctx context.Context, organizerID, eventID, typeID int, req *model.TicketTypeRequest) (*model.TicketType, error)
	Delete(ctx context.Context, organizerID, eventID, typeID int) error
}

type TicketTypeServiceImpl struct {
	txManager database.TxManager
	repo      repository.TicketTypeRepository
	eventRepo repository.EventRepository
	dashboard DashboardService
}

func NewTicketTypeService(
	txManager database.TxManager,
	repo repository.TicketTypeRepository,
	eventRepo repository.EventRepository,
	dashboard DashboardService,
) TicketTypeService {
	return &TicketTypeServiceImpl{
		txManager: txManager,
		repo:      repo,
		eventRepo: eventRepo,
		dashboard: dashboard,
	}
}

func (s *TicketTypeServiceImpl) Create(ctx context.Context, organizerID, eventID int, req *model.TicketTypeRequest) (*model.TicketType, error) {
	if err := s.checkEvent(ctx, organizerID, eventID); err != nil {
		return nil, err
	}

	var created *model.TicketType
	err := s.txManager.WithinTx(ctx, func(tx pgx.Tx) error {
		var err error
		created, err = s.repo.Create(ctx, tx, req.TicketType(eventID))
		if err != nil {
			return err
		}
		_, err = s.dashboard.RefreshInTx(ctx, tx, organizerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *TicketTypeServiceImpl) Update(ctx context.Context, organizerID, eventID, typeID int, req *model.TicketTypeRequest) (*model.TicketType, error) {
	if err := s.checkType(ctx, organizerID, eventID, typeID); err != nil {
		return nil, err
	}

	// PUT replaces the whole row; an omitted sales bound becomes unbounded
	replacement := req.TicketType(eventID)

	var updated *model.TicketType
	err := s.txManager.WithinTx(ctx, func(tx pgx.Tx) error {
		var err error
		updated, err = s.repo.Replace(ctx, tx, typeID, replacement)
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

func (s *TicketTypeServiceImpl) Delete(ctx context.Context, organizerID, eventID, typeID int) error {
	if err := s.checkType(ctx, organizerID, eventID, typeID); err != nil {
		return err
	}

	return s.txManager.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := s.repo.Delete(ctx, tx, typeID); err != nil {
			return err
		}
		_, err := s.dashboard.RefreshInTx(ctx, tx, organizerID)
		return err
	})
}

func (s *TicketTypeServiceImpl) checkEvent(ctx context.Context, organizerID, eventID int) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.OrganizerID != organizerID {
		return apperrors.ErrEventNotFound
	}
	return nil
}

func (s *TicketTypeServiceImpl) checkType(ctx context.Context, organizerID, eventID, typeID int) error {
	if err := s.checkEvent(ctx, organizerID, eventID); err != nil {
		return err
	}
	tt, err := s.repo.FindByID(ctx, typeID)
	if err != nil {
		return err
	}
	if tt.EventID != eventID {
		return apperrors.ErrTicketTypeNotFound
	}
	return nil
}
