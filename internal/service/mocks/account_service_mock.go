package mocks

import (
	"context"

	"byblos-atelier/internal/auth"
	"byblos-atelier/internal/model"
	"byblos-atelier/internal/service"

	"github.com/stretchr/testify/mock"
)

type AccountServiceMock struct {
	mock.Mock
	role model.Role
}

func NewAccountServiceMock(role model.Role) *AccountServiceMock {
	return &AccountServiceMock{role: role}
}

func (m *AccountServiceMock) Role() model.Role {
	return m.role
}

func (m *AccountServiceMock) Register(ctx context.Context, req *model.RegisterRequest) (*model.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *AccountServiceMock) Login(ctx context.Context, req *model.LoginRequest) (*service.LoginResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *AccountServiceMock) Logout(ctx context.Context, claims *auth.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

func (m *AccountServiceMock) Me(ctx context.Context, id int) (*model.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *AccountServiceMock) UpdateProfile(ctx context.Context, id int, params model.UpdateAccountParams) (*model.Account, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *AccountServiceMock) UpdatePassword(ctx context.Context, id int, req *model.UpdatePasswordRequest) error {
	args := m.Called(ctx, id, req)
	return args.Error(0)
}

func (m *AccountServiceMock) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *AccountServiceMock) ResetPassword(ctx context.Context, token, password string) error {
	args := m.Called(ctx, token, password)
	return args.Error(0)
}
