package mocks

import (
	"context"
	"time"

	"byblos-atelier/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type EventRepositoryMock struct {
	mock.Mock
}

func NewEventRepositoryMock() *EventRepositoryMock {
	return &EventRepositoryMock{}
}

func (m *EventRepositoryMock) FindByID(ctx context.Context, id int) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) ListByOrganizer(ctx context.Context, organizerID int) ([]*model.Event, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) ListUpcoming(ctx context.Context, now time.Time, limit int) ([]*model.Event, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) List(ctx context.Context) ([]*model.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) Create(ctx context.Context, tx pgx.Tx, event *model.Event) (*model.Event, error) {
	args := m.Called(ctx, tx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Event, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) Update(ctx context.Context, tx pgx.Tx, id int, params model.UpdateEventParams) (*model.Event, error) {
	args := m.Called(ctx, tx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) UpdateStatus(ctx context.Context, tx pgx.Tx, id int, status model.EventStatus) (*model.Event, error) {
	args := m.Called(ctx, tx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventRepositoryMock) Delete(ctx context.Context, tx pgx.Tx, id int) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}
