package service

import (
	"context"
	"errors"
	"strconv"

	"byblos-atelier/internal/auth"
	"byblos-atelier/internal/model"
	"byblos-atelier/internal/repository"
	apperrors "byblos-atelier/pkg/app_errors"
)

type IdentityService interface {
	// Resolve verifies token and loads the principal it names.
	Resolve(ctx context.Context, token string) (model.Identity, *auth.Claims, error)
}

type IdentityServiceImpl struct {
	tokens     *auth.TokenManager
	sellers    repository.AccountRepository
	organizers repository.AccountRepository
	adminEmail string
}

func NewIdentityService(
	tokens *auth.TokenManager,
	sellers repository.AccountRepository,
	organizers repository.AccountRepository,
	adminEmail string,
) IdentityService {
	return &IdentityServiceImpl{
		tokens:     tokens,
		sellers:    sellers,
		organizers: organizers,
		adminEmail: adminEmail,
	}
}

func (s *IdentityServiceImpl) Resolve(ctx context.Context, token string) (model.Identity, *auth.Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, nil, err
	}

	if claims.Subject == model.AdminSubject {
		return model.AdminIdentity{Email: s.adminEmail}, claims, nil
	}

	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return nil, nil, apperrors.ErrInvalidToken
	}

	identity, err := s.lookup(ctx, claims.Role, id)
	if err != nil {
		return nil, nil, err
	}
	return identity, claims, nil
}

// lookup honours the role hint; tokens without one are tried as seller first.
func (s *IdentityServiceImpl) lookup(ctx context.Context, role model.Role, id int) (model.Identity, error) {
	switch role {
	case model.RoleSeller:
		return s.seller(ctx, id)
	case model.RoleOrganizer:
		return s.organizer(ctx, id)
	case "":
	default:
		return nil, apperrors.ErrInvalidToken
	}

	identity, err := s.seller(ctx, id)
	if !errors.Is(err, apperrors.ErrIdentityNotFound) {
		return identity, err
	}
	return s.organizer(ctx, id)
}

func (s *IdentityServiceImpl) seller(ctx context.Context, id int) (model.Identity, error) {
	account, err := s.sellers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrSellerNotFound) {
			return nil, apperrors.ErrIdentityNotFound
		}
		return nil, err
	}
	return model.SellerIdentity{Account: account}, nil
}

func (s *IdentityServiceImpl) organizer(ctx context.Context, id int) (model.Identity, error) {
	account, err := s.organizers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrOrganizerNotFound) {
			return nil, apperrors.ErrIdentityNotFound
		}
		return nil, err
	}
	return model.OrganizerIdentity{Account: account}, nil
}
