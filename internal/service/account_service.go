package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"byblos-atelier/internal/auth"
	"byblos-atelier/internal/cache"
	"byblos-atelier/internal/model"
	"byblos-atelier/internal/queue"
	"byblos-atelier/internal/repository"
	apperrors "byblos-atelier/pkg/app_errors"
	"byblos-atelier/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type LoginResult struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	Account   *model.Account `json:"user,omitempty"`
}

// AccountService is the credential lifecycle of one account kind (organizer or seller).
type AccountService interface {
	Role() model.Role
	Register(ctx context.Context, req *model.RegisterRequest) (*model.Account, error)
	Login(ctx context.Context, req *model.LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	Me(ctx context.Context, id int) (*model.Account, error)
	UpdateProfile(ctx context.Context, id int, params model.UpdateAccountParams) (*model.Account, error)
	UpdatePassword(ctx context.Context, id int, req *model.UpdatePasswordRequest) error
	// ForgotPassword never reveals whether the email is registered.
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

type AccountServiceOptions struct {
	PublicURL string
	ResetTTL  time.Duration
}

type AccountServiceImpl struct {
	repo    repository.AccountRepository
	tokens  *auth.TokenManager
	revoked cache.TokenRevocationStore
	mail    queue.MailQueue
	opts    AccountServiceOptions
	now     func() time.Time
}

func NewAccountService(
	repo repository.AccountRepository,
	tokens *auth.TokenManager,
	revoked cache.TokenRevocationStore,
	mail queue.MailQueue,
	opts AccountServiceOptions,
) AccountService {
	if opts.ResetTTL <= 0 {
		opts.ResetTTL = time.Hour
	}
	return &AccountServiceImpl{
		repo:    repo,
		tokens:  tokens,
		revoked: revoked,
		mail:    mail,
		opts:    opts,
		now:     time.Now,
	}
}

func (s *AccountServiceImpl) Role() model.Role {
	return s.repo.Role()
}

func (s *AccountServiceImpl) log() *zap.Logger {
	return logger.WithComponent("account").With(zap.String("role", string(s.Role())))
}

func (s *AccountServiceImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.repo.Create(ctx, &model.Account{
		Role:         s.Role(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		BusinessName: req.BusinessName,
	})
	if err != nil {
		return nil, err
	}

	s.enqueue(ctx, model.MailTemplateWelcome, account.Email, map[string]string{
		"name":      account.Name,
		"role":      string(s.Role()),
		"login_url": fmt.Sprintf("%s/%ss/login", s.opts.PublicURL, s.Role()),
	})
	s.log().Info("Account registered", zap.Int("account_id", account.ID))
	return account, nil
}

func (s *AccountServiceImpl) Login(ctx context.Context, req *model.LoginRequest) (*LoginResult, error) {
	account, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrOrganizerNotFound) || errors.Is(err, apperrors.ErrSellerNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, claims, err := s.tokens.Issue(strconv.Itoa(account.ID), s.Role())
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: claims.ExpiresAt.Time, Account: account}, nil
}

func (s *AccountServiceImpl) Logout(ctx context.Context, claims *auth.Claims) error {
	return Revoke(ctx, s.revoked, claims)
}

// Revoke blacklists the token behind claims until it expires.
func Revoke(ctx context.Context, store cache.TokenRevocationStore, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	return store.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

func (s *AccountServiceImpl) Me(ctx context.Context, id int) (*model.Account, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AccountServiceImpl) UpdateProfile(ctx context.Context, id int, params model.UpdateAccountParams) (*model.Account, error) {
	if params.IsEmpty() {
		return nil, apperrors.ErrInvalidInput
	}
	return s.repo.UpdateProfile(ctx, id, params)
}

func (s *AccountServiceImpl) UpdatePassword(ctx context.Context, id int, req *model.UpdatePasswordRequest) error {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return apperrors.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, id, string(hash))
}

func (s *AccountServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrOrganizerNotFound) || errors.Is(err, apperrors.ErrSellerNotFound) {
			s.log().Info("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, tokenHash, err := newResetToken()
	if err != nil {
		return err
	}
	if err := s.repo.SetResetToken(ctx, account.ID, tokenHash, s.now().Add(s.opts.ResetTTL)); err != nil {
		return err
	}

	s.enqueue(ctx, model.MailTemplatePasswordReset, account.Email, map[string]string{
		"name":       account.Name,
		"reset_url":  fmt.Sprintf("%s/%ss/reset-password/%s", s.opts.PublicURL, s.Role(), token),
		"expires_in": s.opts.ResetTTL.String(),
	})
	return nil
}

func (s *AccountServiceImpl) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" {
		return apperrors.ErrResetTokenInvalid
	}
	account, err := s.repo.FindByResetToken(ctx, HashResetToken(token), s.now())
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, account.ID, string(hash)); err != nil {
		return err
	}

	s.log().Info("Password reset", zap.Int("account_id", account.ID))
	return nil
}

// enqueue is best effort: a mail outage must not fail the request that triggered it.
func (s *AccountServiceImpl) enqueue(ctx context.Context, template model.MailTemplate, to string, data map[string]string) {
	job := model.NewMailJob(template, to, data)
	if err := s.mail.Publish(ctx, job); err != nil {
		s.log().Error("Failed to enqueue mail",
			zap.String("template", string(template)),
			zap.Error(err),
		)
	}
}

// newResetToken returns the token to mail and the hash to store.
func newResetToken() (string, string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate reset token: %w", err)
	}
	token := hex.EncodeToString(buf)
	return token, HashResetToken(token), nil
}

func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
