package mocks

import (
	"context"

	"byblos-atelier/internal/model"

	"github.com/stretchr/testify/mock"
)

type TicketServiceMock struct {
	mock.Mock
}

func NewTicketServiceMock() *TicketServiceMock {
	return &TicketServiceMock{}
}

func (m *TicketServiceMock) RecordSale(ctx context.Context, organizerID, eventID int, req *model.RecordSaleRequest) (*model.Ticket, error) {
	args := m.Called(ctx, organizerID, eventID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *TicketServiceMock) ListByEvent(ctx context.Context, organizerID, eventID int) ([]*model.Ticket, error) {
	args := m.Called(ctx, organizerID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Ticket), args.Error(1)
}

func (m *TicketServiceMock) UpdateStatus(ctx context.Context, organizerID, eventID, ticketID int, status model.TicketStatus) (*model.Ticket, error) {
	args := m.Called(ctx, organizerID, eventID, ticketID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *TicketServiceMock) Validate(ctx context.Context, ticketNumber string) (*model.TicketValidation, error) {
	args := m.Called(ctx, ticketNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketValidation), args.Error(1)
}

func (m *TicketServiceMock) CheckIn(ctx context.Context, ticketNumber string) (*model.TicketValidation, error) {
	args := m.Called(ctx, ticketNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketValidation), args.Error(1)
}
