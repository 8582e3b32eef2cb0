package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/caiorodriguesslv/planwise-backend/internal/common"
	"github.com/caiorodriguesslv/planwise-backend/internal/model"
	"github.com/caiorodriguesslv/planwise-backend/internal/service"
)

// Service registers accounts and exchanges credentials for tokens.
type Service struct {
	store  service.Storage
	issuer *TokenIssuer
}

// NewService creates an auth service.
func NewService(store service.Storage, issuer *TokenIssuer) *Service {
	return &Service{store: store, issuer: issuer}
}

// Register creates a regular account and returns it with a fresh token.
func (s *Service) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	return s.register(ctx, name, email, password, model.RoleUser)
}

// Login checks credentials and returns the account with a fresh token.
// A wrong password and an unknown email fail identically.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, "", common.Validationf("email is required")
	}
	if password == "" {
		return nil, "", common.Validationf("password is required")
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !CheckPassword(user.PasswordHash, password) {
		return nil, "", fmt.Errorf("%w: invalid credentials", common.ErrUnauthorized)
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return nil, "", err
	}

	slog.Info("user logged in", "id", user.ID)
	return user, token, nil
}

// GetUser returns the account behind a verified token.
func (s *Service) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.NotFoundf("user %d", userID)
	}
	return user, nil
}

// ListUsers returns every active account. Callers gate this behind the
// admin role.
func (s *Service) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.store.GetUsers(ctx)
}

// EnsureAdmin creates the admin account if no account holds that email yet.
// Used at startup so a fresh install always has a way in.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) error {
	existing, err := s.store.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	_, _, err = s.register(ctx, name, email, password, model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to bootstrap admin: %w", err)
	}

	slog.Info("bootstrapped admin account", "email", strings.ToLower(email))
	return nil
}

func (s *Service) register(ctx context.Context, name, email, password string, role model.UserRole) (*model.User, string, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", common.Validationf("invalid email address")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := user.Validate(); err != nil {
		return nil, "", common.Validationf("%v", err)
	}

	created, err := s.store.CreateUser(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issuer.Issue(created)
	if err != nil {
		return nil, "", err
	}

	slog.Info("user registered", "id", created.ID, "role", created.Role)
	return created, token, nil
}
