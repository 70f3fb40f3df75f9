package service

import (
	"context"
	"errors"
	"time"

	"byblos-atelier/internal/database"
	"byblos-atelier/internal/metrics"
	"byblos-atelier/internal/model"
	"byblos-atelier/internal/repository"
	apperrors "byblos-atelier/pkg/app_errors"

	"github.com/jackc/pgx/v5"
)

type DashboardService interface {
	// Get returns the stored stats row, computing it first when the organizer has none.
	Get(ctx context.Context, organizerID int) (*model.DashboardStats, error)
	Refresh(ctx context.Context, organizerID int) (*model.DashboardStats, error)
	// RefreshInTx recomputes inside a caller's transaction, so the write and its stats
	// commit together.
	RefreshInTx(ctx context.Context, tx pgx.Tx, organizerID int) (*model.DashboardStats, error)
	PlatformStats(ctx context.Context) (*model.PlatformStats, error)
}

type DashboardServiceImpl struct {
	txManager database.TxManager
	repo      repository.DashboardStatsRepository
	now       func() time.Time
}

func NewDashboardService(txManager database.TxManager, repo repository.DashboardStatsRepository) DashboardService {
	return &DashboardServiceImpl{
		txManager: txManager,
		repo:      repo,
		now:       time.Now,
	}
}

func (s *DashboardServiceImpl) Get(ctx context.Context, organizerID int) (*model.DashboardStats, error) {
	stats, err := s.repo.FindByOrganizerID(ctx, organizerID)
	if errors.Is(err, apperrors.ErrStatsNotFound) {
		return s.Refresh(ctx, organizerID)
	}
	return stats, err
}

func (s *DashboardServiceImpl) Refresh(ctx context.Context, organizerID int) (*model.DashboardStats, error) {
	var stats *model.DashboardStats
	err := s.txManager.WithinTx(ctx, func(tx pgx.Tx) error {
		var err error
		stats, err = s.RefreshInTx(ctx, tx, organizerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *DashboardServiceImpl) RefreshInTx(ctx context.Context, tx pgx.Tx, organizerID int) (*model.DashboardStats, error) {
	start := time.Now()
	defer func() { metrics.ObserveStatsRecompute(time.Since(start)) }()

	return s.repo.Recompute(ctx, tx, organizerID, s.now().UTC())
}

func (s *DashboardServiceImpl) PlatformStats(ctx context.Context) (*model.PlatformStats, error) {
	return s.repo.PlatformStats(ctx)
}
