package mocks

import (
	"context"

	"byblos-atelier/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type TicketTypeRepositoryMock struct {
	mock.Mock
}

func NewTicketTypeRepositoryMock() *TicketTypeRepositoryMock {
	return &TicketTypeRepositoryMock{}
}

func (m *TicketTypeRepositoryMock) FindByID(ctx context.Context, id int) (*model.TicketType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketType), args.Error(1)
}

func (m *TicketTypeRepositoryMock) ListByEventIDs(ctx context.Context, eventIDs []int) ([]*model.TicketType, error) {
	args := m.Called(ctx, eventIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TicketType), args.Error(1)
}

func (m *TicketTypeRepositoryMock) Create(ctx context.Context, tx pgx.Tx, ticketType *model.TicketType) (*model.TicketType, error) {
	args := m.Called(ctx, tx, ticketType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketType), args.Error(1)
}

func (m *TicketTypeRepositoryMock) Replace(ctx context.Context, tx pgx.Tx, id int, ticketType *model.TicketType) (*model.TicketType, error) {
	args := m.Called(ctx, tx, id, ticketType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketType), args.Error(1)
}

func (m *TicketTypeRepositoryMock) Delete(ctx context.Context, tx pgx.Tx, id int) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}
