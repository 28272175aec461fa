package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/087pedyedkai/merch-shop/internal/domain"
	"github.com/087pedyedkai/merch-shop/internal/kvstore"
	"github.com/087pedyedkai/merch-shop/internal/repository"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionFixture(t *testing.T) (SessionService, kvstore.Store) {
	t.Helper()

	kv, err := kvstore.NewFileStore(afero.NewMemMapFs(), "profile")
	require.NoError(t, err)

	users := repository.NewUserRepository(kv)
	require.NoError(t, users.Seed(context.Background()))

	return NewSessionService(users, kv), kv
}

func TestSession_SignInAndOut(t *testing.T) {
	session, _ := newSessionFixture(t)
	ctx := context.Background()

	_, ok := session.Current(ctx)
	assert.False(t, ok)

	identity, err := session.SignIn(ctx, "customer@merch.com", "customer123")
	require.NoError(t, err)
	assert.Equal(t, "customer1", identity.ID)
	assert.False(t, identity.IsAdmin())

	current, ok := session.Current(ctx)
	require.True(t, ok)
	assert.Equal(t, identity.ID, current.ID)

	require.NoError(t, session.SignOut(ctx))
	_, ok = session.Current(ctx)
	assert.False(t, ok)

	// Signing out twice is fine.
	assert.NoError(t, session.SignOut(ctx))
}

func TestSession_SignInRejectsBadCredentials(t *testing.T) {
	session, _ := newSessionFixture(t)
	ctx := context.Background()

	_, err := session.SignIn(ctx, "customer@merch.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = session.SignIn(ctx, "nobody@merch.com", "customer123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, ok := session.Current(ctx)
	assert.False(t, ok)
}

func TestSession_PersistedSessionOmitsPassword(t *testing.T) {
	session, kv := newSessionFixture(t)
	ctx := context.Background()

	_, err := session.SignIn(ctx, "admin@merch.com", "admin123")
	require.NoError(t, err)

	doc, err := kv.Read(ctx, kvstore.KeyCurrentUser)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(doc, &raw))
	assert.NotContains(t, raw, "password")
	assert.Equal(t, "admin", raw["role"])
}

func TestSession_SignUp(t *testing.T) {
	session, _ := newSessionFixture(t)
	ctx := context.Background()

	user, err := session.SignUp(ctx, "New Student", "new@example.com", "secret1", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, user.Role)

	// Registration does not sign the account in.
	_, ok := session.Current(ctx)
	assert.False(t, ok)

	// But the new credentials work.
	identity, err := session.SignIn(ctx, "new@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.ID)
}

func TestSession_SignUpRejectsDuplicateEmail(t *testing.T) {
	session, _ := newSessionFixture(t)
	ctx := context.Background()

	_, err := session.SignUp(ctx, "Another Admin", "admin@merch.com", "secret1", domain.RoleAdmin)
	assert.ErrorIs(t, err, repository.ErrUserAlreadyExists)
}
