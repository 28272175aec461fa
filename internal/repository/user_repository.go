package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/087pedyedkai/merch-shop/internal/domain"
	"github.com/087pedyedkai/merch-shop/internal/kvstore"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidUser       = errors.New("invalid user")
)

// UserRepository defines the interface for user account data access
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Seed(ctx context.Context) error
}

type userRepository struct {
	kv kvstore.Store
	mu sync.Mutex
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(kv kvstore.Store) UserRepository {
	return &userRepository{kv: kv}
}

func (r *userRepository) load(ctx context.Context) ([]domain.User, bool) {
	users := []domain.User{}
	ok := kvstore.Load(ctx, r.kv, kvstore.KeyUsers, &users)
	return users, ok
}

func (r *userRepository) save(ctx context.Context, users []domain.User) error {
	if err := kvstore.Save(ctx, r.kv, kvstore.KeyUsers, users); err != nil {
		return fmt.Errorf("failed to persist users: %w", err)
	}
	return nil
}

// Create validates and registers a new account, rejecting duplicate emails.
func (r *userRepository) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	if user.Role == "" {
		user.Role = domain.RoleCustomer
	}
	if err := domain.Validate(user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUser, domain.FormatValidationErrors(err))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	users, _ := r.load(ctx)
	for _, existing := range users {
		if existing.Email == user.Email {
			return nil, ErrUserAlreadyExists
		}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now().UTC()

	users = append(users, user)
	if err := r.save(ctx, users); err != nil {
		return nil, err
	}

	return &user, nil
}

// FindByEmail retrieves a user account by email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, _ := r.load(ctx)
	for _, user := range users {
		if user.Email == email {
			return &user, nil
		}
	}

	return nil, ErrUserNotFound
}

// FindByID retrieves a user account by ID
func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, _ := r.load(ctx)
	for _, user := range users {
		if user.ID == id {
			return &user, nil
		}
	}

	return nil, ErrUserNotFound
}

// Seed writes the demo admin and customer accounts if no user collection
// exists yet. An existing collection is left alone.
func (r *userRepository) Seed(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.load(ctx); ok {
		return nil
	}

	return r.save(ctx, defaultUsers())
}
