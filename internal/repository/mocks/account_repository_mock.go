package mocks

import (
	"context"
	"time"

	"byblos-atelier/internal/model"

	"github.com/stretchr/testify/mock"
)

type AccountRepositoryMock struct {
	mock.Mock
	role model.Role
}

func NewAccountRepositoryMock(role model.Role) *AccountRepositoryMock {
	return &AccountRepositoryMock{role: role}
}

func (m *AccountRepositoryMock) Role() model.Role {
	return m.role
}

func (m *AccountRepositoryMock) Create(ctx context.Context, account *model.Account) (*model.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *AccountRepositoryMock) FindByID(ctx context.Context, id int) (*model.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *AccountRepositoryMock) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *AccountRepositoryMock) List(ctx context.Context) ([]*model.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Account), args.Error(1)
}

func (m *AccountRepositoryMock) UpdateProfile(ctx context.Context, id int, params model.UpdateAccountParams) (*model.Account, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *AccountRepositoryMock) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *AccountRepositoryMock) SetResetToken(ctx context.Context, id int, tokenHash string, expires time.Time) error {
	args := m.Called(ctx, id, tokenHash, expires)
	return args.Error(0)
}

func (m *AccountRepositoryMock) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*model.Account, error) {
	args := m.Called(ctx, tokenHash, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *AccountRepositoryMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
