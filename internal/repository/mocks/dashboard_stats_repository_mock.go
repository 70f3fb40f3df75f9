package mocks

import (
	"context"
	"time"

	"byblos-atelier/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type DashboardStatsRepositoryMock struct {
	mock.Mock
}

func NewDashboardStatsRepositoryMock() *DashboardStatsRepositoryMock {
	return &DashboardStatsRepositoryMock{}
}

func (m *DashboardStatsRepositoryMock) FindByOrganizerID(ctx context.Context, organizerID int) (*model.DashboardStats, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DashboardStats), args.Error(1)
}

func (m *DashboardStatsRepositoryMock) PlatformStats(ctx context.Context) (*model.PlatformStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlatformStats), args.Error(1)
}

func (m *DashboardStatsRepositoryMock) Recompute(ctx context.Context, tx pgx.Tx, organizerID int, now time.Time) (*model.DashboardStats, error) {
	args := m.Called(ctx, tx, organizerID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DashboardStats), args.Error(1)
}
