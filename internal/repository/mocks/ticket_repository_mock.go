package mocks

import (
	"context"
	"time"

	"byblos-atelier/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type TicketRepositoryMock struct {
	mock.Mock
}

func NewTicketRepositoryMock() *TicketRepositoryMock {
	return &TicketRepositoryMock{}
}

func (m *TicketRepositoryMock) FindByID(ctx context.Context, id int) (*model.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *TicketRepositoryMock) FindByNumber(ctx context.Context, ticketNumber string) (*model.Ticket, error) {
	args := m.Called(ctx, ticketNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *TicketRepositoryMock) ListByEvent(ctx context.Context, eventID int) ([]*model.Ticket, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Ticket), args.Error(1)
}

func (m *TicketRepositoryMock) CheckIn(ctx context.Context, id int, at time.Time) (*model.Ticket, error) {
	args := m.Called(ctx, id, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *TicketRepositoryMock) StatsByTicketType(ctx context.Context, eventIDs []int) ([]model.TicketTypeStats, error) {
	args := m.Called(ctx, eventIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TicketTypeStats), args.Error(1)
}

func (m *TicketRepositoryMock) SalesByEvent(ctx context.Context, eventIDs []int) ([]model.EventSales, error) {
	args := m.Called(ctx, eventIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EventSales), args.Error(1)
}

func (m *TicketRepositoryMock) Create(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, error) {
	args := m.Called(ctx, tx, ticket)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *TicketRepositoryMock) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Ticket, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *TicketRepositoryMock) UpdateStatus(ctx context.Context, tx pgx.Tx, id int, status model.TicketStatus) (*model.Ticket, error) {
	args := m.Called(ctx, tx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}
