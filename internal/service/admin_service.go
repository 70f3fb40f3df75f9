package service

import (
	"context"
	"crypto/subtle"
	"strings"

	"byblos-atelier/internal/auth"
	"byblos-atelier/internal/model"
	"byblos-atelier/internal/repository"
	apperrors "byblos-atelier/pkg/app_errors"
	"byblos-atelier/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AdminService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*LoginResult, error)
	Dashboard(ctx context.Context) (*model.PlatformStats, error)
	ListAccounts(ctx context.Context, role model.Role) ([]*model.Account, error)
	DeleteAccount(ctx context.Context, role model.Role, id int) error
}

type AdminServiceImpl struct {
	email        string
	passwordHash string
	tokens       *auth.TokenManager
	dashboard    DashboardService
	sellers      repository.AccountRepository
	organizers   repository.AccountRepository
}

func NewAdminService(
	email, passwordHash string,
	tokens *auth.TokenManager,
	dashboard DashboardService,
	sellers repository.AccountRepository,
	organizers repository.AccountRepository,
) AdminService {
	return &AdminServiceImpl{
		email:        strings.ToLower(email),
		passwordHash: passwordHash,
		tokens:       tokens,
		dashboard:    dashboard,
		sellers:      sellers,
		organizers:   organizers,
	}
}

// Login checks the configured admin credentials. With no admin configured every attempt fails.
func (s *AdminServiceImpl) Login(ctx context.Context, req *model.LoginRequest) (*LoginResult, error) {
	if s.email == "" || s.passwordHash == "" {
		return nil, apperrors.ErrInvalidCredentials
	}
	emailMatch := subtle.ConstantTimeCompare([]byte(strings.ToLower(req.Email)), []byte(s.email)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password))
	if !emailMatch || passwordErr != nil {
		logger.WithComponent("admin").Warn("Admin login rejected")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, claims, err := s.tokens.Issue(model.AdminSubject, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (s *AdminServiceImpl) Dashboard(ctx context.Context) (*model.PlatformStats, error) {
	return s.dashboard.PlatformStats(ctx)
}

func (s *AdminServiceImpl) ListAccounts(ctx context.Context, role model.Role) ([]*model.Account, error) {
	repo, err := s.repo(role)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx)
}

func (s *AdminServiceImpl) DeleteAccount(ctx context.Context, role model.Role, id int) error {
	repo, err := s.repo(role)
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.WithComponent("admin").Info("Account deleted",
		zap.String("role", string(role)),
		zap.Int("account_id", id),
	)
	return nil
}

func (s *AdminServiceImpl) repo(role model.Role) (repository.AccountRepository, error) {
	switch role {
	case model.RoleSeller:
		return s.sellers, nil
	case model.RoleOrganizer:
		return s.organizers, nil
	}
	return nil, apperrors.ErrInvalidInput
}
