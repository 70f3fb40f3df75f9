package mocks

import (
	"context"

	"byblos-atelier/internal/model"

	"github.com/stretchr/testify/mock"
)

type EventServiceMock struct {
	mock.Mock
}

func NewEventServiceMock() *EventServiceMock {
	return &EventServiceMock{}
}

func (m *EventServiceMock) Create(ctx context.Context, organizerID int, req *model.CreateEventRequest) (*model.EventAvailability, error) {
	args := m.Called(ctx, organizerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventAvailability), args.Error(1)
}

func (m *EventServiceMock) ListByOrganizer(ctx context.Context, organizerID int) ([]*model.EventAvailability, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.EventAvailability), args.Error(1)
}

func (m *EventServiceMock) Get(ctx context.Context, organizerID, eventID int) (*model.EventAvailability, error) {
	args := m.Called(ctx, organizerID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventAvailability), args.Error(1)
}

func (m *EventServiceMock) Update(ctx context.Context, organizerID, eventID int, params model.UpdateEventParams) (*model.EventAvailability, error) {
	args := m.Called(ctx, organizerID, eventID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventAvailability), args.Error(1)
}

func (m *EventServiceMock) UpdateStatus(ctx context.Context, organizerID, eventID int, status model.EventStatus) (*model.Event, error) {
	args := m.Called(ctx, organizerID, eventID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventServiceMock) Delete(ctx context.Context, organizerID, eventID int) error {
	args := m.Called(ctx, organizerID, eventID)
	return args.Error(0)
}

func (m *EventServiceMock) ListAll(ctx context.Context) ([]*model.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *EventServiceMock) AdminUpdateStatus(ctx context.Context, eventID int, status model.EventStatus) (*model.Event, error) {
	args := m.Called(ctx, eventID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}
