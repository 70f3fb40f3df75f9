package mocks

import (
	"context"

	"byblos-atelier/internal/model"

	"github.com/stretchr/testify/mock"
)

type TicketTypeServiceMock struct {
	mock.Mock
}

func NewTicketTypeServiceMock() *TicketTypeServiceMock {
	return &TicketTypeServiceMock{}
}

func (m *TicketTypeServiceMock) Create(ctx context.Context, organizerID, eventID int, req *model.TicketTypeRequest) (*model.TicketType, error) {
	args := m.Called(ctx, organizerID, eventID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketType), args.Error(1)
}

func (m *TicketTypeServiceMock) Update(ctx context.Context, organizerID, eventID, typeID int, req *model.TicketTypeRequest) (*model.TicketType, error) {
	args := m.Called(ctx, organizerID, eventID, typeID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketType), args.Error(1)
}

func (m *TicketTypeServiceMock) Delete(ctx context.Context, organizerID, eventID, typeID int) error {
	args := m.Called(ctx, organizerID, eventID, typeID)
	return args.Error(0)
}
