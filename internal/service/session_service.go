package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/087pedyedkai/merch-shop/internal/domain"
	"github.com/087pedyedkai/merch-shop/internal/kvstore"
	"github.com/087pedyedkai/merch-shop/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// SessionService tracks the signed-in identity. Credentials are compared
// in plaintext against the stored account; this is a demo storefront and
// hardening the check is explicitly out of scope. The persisted session
// document never contains the password.
type SessionService interface {
	SignIn(ctx context.Context, email, password string) (*domain.Identity, error)
	SignUp(ctx context.Context, name, email, password, role string) (*domain.User, error)
	SignOut(ctx context.Context) error
	Current(ctx context.Context) (*domain.Identity, bool)
}

type sessionService struct {
	users repository.UserRepository
	kv    kvstore.Store
}

// NewSessionService creates a new instance of SessionService
func NewSessionService(users repository.UserRepository, kv kvstore.Store) SessionService {
	return &sessionService{users: users, kv: kv}
}

// SignIn verifies the credentials and persists the password-stripped
// identity as the current session.
func (s *sessionService) SignIn(ctx context.Context, email, password string) (*domain.Identity, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.Password != password {
		return nil, ErrInvalidCredentials
	}

	identity := user.Identity()
	if err := kvstore.Save(ctx, s.kv, kvstore.KeyCurrentUser, identity); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	return &identity, nil
}

// SignUp registers a new account. An empty role defaults to customer.
// Registering does not sign the account in.
func (s *sessionService) SignUp(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	return s.users.Create(ctx, domain.User{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	})
}

// SignOut discards the current session. Signing out with no session is
// not an error.
func (s *sessionService) SignOut(ctx context.Context) error {
	if err := s.kv.Delete(ctx, kvstore.KeyCurrentUser); err != nil {
		return fmt.Errorf("failed to discard session: %w", err)
	}
	return nil
}

// Current returns the signed-in identity, if any.
func (s *sessionService) Current(ctx context.Context) (*domain.Identity, bool) {
	var identity domain.Identity
	if !kvstore.Load(ctx, s.kv, kvstore.KeyCurrentUser, &identity) || identity.ID == "" {
		return nil, false
	}
	return &identity, true
}
