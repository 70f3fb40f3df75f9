package mocks

import (
	"context"

	"byblos-atelier/internal/auth"
	"byblos-atelier/internal/model"

	"github.com/stretchr/testify/mock"
)

type IdentityServiceMock struct {
	mock.Mock
}

func NewIdentityServiceMock() *IdentityServiceMock {
	return &IdentityServiceMock{}
}

func (m *IdentityServiceMock) Resolve(ctx context.Context, token string) (model.Identity, *auth.Claims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(model.Identity), args.Get(1).(*auth.Claims), args.Error(2)
}
