package service

import (
	"context"
	"testing"
	"time"

	"byblos-atelier/internal/auth"
	"byblos-atelier/internal/model"
	repoMocks "byblos-atelier/internal/repository/mocks"
	apperrors "byblos-atelier/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newIdentityFixture() (IdentityService, *auth.TokenManager, *repoMocks.AccountRepositoryMock, *repoMocks.AccountRepositoryMock) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	sellers := repoMocks.NewAccountRepositoryMock(model.RoleSeller)
	organizers := repoMocks.NewAccountRepositoryMock(model.RoleOrganizer)
	return NewIdentityService(tokens, sellers, organizers, "admin@byblos.test"), tokens, sellers, organizers
}

func issue(t *testing.T, tokens *auth.TokenManager, subject string, role model.Role) string {
	t.Helper()
	token, _, err := tokens.Issue(subject, role)
	require.NoError(t, err)
	return token
}

func TestIdentityService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - admin subject needs no lookup", func(t *testing.T) {
		svc, tokens, sellers, organizers := newIdentityFixture()

		id, claims, err := svc.Resolve(ctx, issue(t, tokens, model.AdminSubject, model.RoleAdmin))

		require.NoError(t, err)
		assert.Equal(t, model.AdminIdentity{Email: "admin@byblos.test"}, id)
		assert.Equal(t, model.AdminSubject, claims.Subject)
		sellers.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		organizers.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("Success - organizer hint skips sellers", func(t *testing.T) {
		svc, tokens, sellers, organizers := newIdentityFixture()
		organizers.On("FindByID", ctx, 4).Return(&model.Account{ID: 4, Role: model.RoleOrganizer}, nil).Once()

		id, _, err := svc.Resolve(ctx, issue(t, tokens, "4", model.RoleOrganizer))

		require.NoError(t, err)
		assert.Equal(t, model.RoleOrganizer, id.Role())
		sellers.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("Success - no hint tries seller then organizer", func(t *testing.T) {
		svc, tokens, sellers, organizers := newIdentityFixture()
		sellers.On("FindByID", ctx, 4).Return(nil, apperrors.ErrSellerNotFound).Once()
		organizers.On("FindByID", ctx, 4).Return(&model.Account{ID: 4, Role: model.RoleOrganizer}, nil).Once()

		id, _, err := svc.Resolve(ctx, issue(t, tokens, "4", ""))

		require.NoError(t, err)
		account, ok := model.AccountOf(id)
		require.True(t, ok)
		assert.Equal(t, 4, account.ID)
		assert.Equal(t, model.RoleOrganizer, id.Role())
	})

	t.Run("Success - no hint prefers the seller", func(t *testing.T) {
		svc, tokens, sellers, organizers := newIdentityFixture()
		sellers.On("FindByID", ctx, 4).Return(&model.Account{ID: 4, Role: model.RoleSeller}, nil).Once()

		id, _, err := svc.Resolve(ctx, issue(t, tokens, "4", ""))

		require.NoError(t, err)
		assert.Equal(t, model.RoleSeller, id.Role())
		organizers.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("Failed - missing account", func(t *testing.T) {
		svc, tokens, _, organizers := newIdentityFixture()
		organizers.On("FindByID", ctx, 4).Return(nil, apperrors.ErrOrganizerNotFound).Once()

		_, _, err := svc.Resolve(ctx, issue(t, tokens, "4", model.RoleOrganizer))

		assert.ErrorIs(t, err, apperrors.ErrIdentityNotFound)
	})

	t.Run("Failed - non numeric subject", func(t *testing.T) {
		svc, tokens, _, _ := newIdentityFixture()

		_, _, err := svc.Resolve(ctx, issue(t, tokens, "abc", model.RoleSeller))

		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("Failed - token signed with another secret", func(t *testing.T) {
		svc, _, _, _ := newIdentityFixture()
		other := auth.NewTokenManager("other-secret", time.Hour)

		_, _, err := svc.Resolve(ctx, issue(t, other, "4", model.RoleSeller))

		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}
