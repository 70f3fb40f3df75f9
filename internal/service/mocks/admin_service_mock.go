package mocks

import (
	"context"

	"byblos-atelier/internal/model"
	"byblos-atelier/internal/service"

	"github.com/stretchr/testify/mock"
)

type AdminServiceMock struct {
	mock.Mock
}

func NewAdminServiceMock() *AdminServiceMock {
	return &AdminServiceMock{}
}

func (m *AdminServiceMock) Login(ctx context.Context, req *model.LoginRequest) (*service.LoginResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *AdminServiceMock) Dashboard(ctx context.Context) (*model.PlatformStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlatformStats), args.Error(1)
}

func (m *AdminServiceMock) ListAccounts(ctx context.Context, role model.Role) ([]*model.Account, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Account), args.Error(1)
}

func (m *AdminServiceMock) DeleteAccount(ctx context.Context, role model.Role, id int) error {
	args := m.Called(ctx, role, id)
	return args.Error(0)
}
