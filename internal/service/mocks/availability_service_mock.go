package mocks

import (
	"context"

	"byblos-atelier/internal/model"

	"github.com/stretchr/testify/mock"
)

type AvailabilityServiceMock struct {
	mock.Mock
}

func NewAvailabilityServiceMock() *AvailabilityServiceMock {
	return &AvailabilityServiceMock{}
}

func (m *AvailabilityServiceMock) ResolveEvent(ctx context.Context, eventID int, view model.View) (*model.EventAvailability, error) {
	args := m.Called(ctx, eventID, view)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventAvailability), args.Error(1)
}

func (m *AvailabilityServiceMock) ResolveEvents(ctx context.Context, events []*model.Event, view model.View) ([]*model.EventAvailability, error) {
	args := m.Called(ctx, events, view)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.EventAvailability), args.Error(1)
}

func (m *AvailabilityServiceMock) ListTicketTypes(ctx context.Context, eventID int, view model.View) ([]model.TicketTypeAvailability, error) {
	args := m.Called(ctx, eventID, view)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TicketTypeAvailability), args.Error(1)
}

func (m *AvailabilityServiceMock) Upcoming(ctx context.Context, limit int) ([]*model.EventAvailability, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.EventAvailability), args.Error(1)
}
