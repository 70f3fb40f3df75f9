package mocks

import (
	"context"

	"byblos-atelier/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type DashboardServiceMock struct {
	mock.Mock
}

func NewDashboardServiceMock() *DashboardServiceMock {
	return &DashboardServiceMock{}
}

func (m *DashboardServiceMock) Get(ctx context.Context, organizerID int) (*model.DashboardStats, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DashboardStats), args.Error(1)
}

func (m *DashboardServiceMock) Refresh(ctx context.Context, organizerID int) (*model.DashboardStats, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DashboardStats), args.Error(1)
}

func (m *DashboardServiceMock) RefreshInTx(ctx context.Context, tx pgx.Tx, organizerID int) (*model.DashboardStats, error) {
	args := m.Called(ctx, tx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DashboardStats), args.Error(1)
}

func (m *DashboardServiceMock) PlatformStats(ctx context.Context) (*model.PlatformStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlatformStats), args.Error(1)
}
