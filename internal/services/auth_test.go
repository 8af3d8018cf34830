package services

import (
	"context"
	"testing"
	"time"

	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/models"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuth(t *testing.T, mode string) (*AuthService, *store.Store) {
	t.Helper()
	st := store.New()
	auth := NewAuthService(st, NewMemorySessionStore(), "test-secret", time.Hour, mode, zap.NewNop().Sugar())
	require.NoError(t, store.Seed(st, auth.EncodePassword))
	return auth, st
}

func TestLoginAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t, PasswordPlaintext)

	user, token, err := auth.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	require.NotEmpty(t, token)

	got, err := auth.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	require.NoError(t, auth.Logout(ctx, token))
	_, err = auth.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t, PasswordPlaintext)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "nope"},
		{"unknown user", "ghost", "admin123"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := auth.Login(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestAuthenticateRejectsForeignTokens(t *testing.T) {
	ctx := context.Background()
	auth, st := newTestAuth(t, PasswordPlaintext)
	other := NewAuthService(st, NewMemorySessionStore(), "other-secret", time.Hour, PasswordPlaintext, zap.NewNop().Sugar())

	_, token, err := other.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	for _, tok := range []string{"", "garbage", token} {
		_, err := auth.Authenticate(ctx, tok)
		assert.ErrorIs(t, err, ErrUnauthorized)
	}
}

func TestAuthenticateDeletedUser(t *testing.T) {
	ctx := context.Background()
	auth, st := newTestAuth(t, PasswordPlaintext)

	user, token, err := auth.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.True(t, st.Users.Delete(user.ID))

	_, err = auth.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	auth, st := newTestAuth(t, PasswordBcrypt)

	created, token, err := auth.Register(ctx, models.User{
		Username: "amina",
		Password: "pw123",
		FullName: "Amina Bello",
		Email:    "amina@example.org",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, created.Role)
	assert.NotEqual(t, "pw123", created.Password)

	got, err := auth.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, _, err = auth.Login(ctx, "amina", "pw123")
	assert.NoError(t, err)

	_, _, err = auth.Register(ctx, models.User{Username: "amina", Password: "x"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.Equal(t, 2, st.Users.Len())
}

func TestSeedAdminHashedLogin(t *testing.T) {
	auth, _ := newTestAuth(t, PasswordBcrypt)
	_, _, err := auth.Login(context.Background(), "admin", "admin123")
	assert.NoError(t, err)
}

func TestUpdateUser(t *testing.T) {
	auth, st := newTestAuth(t, PasswordBcrypt)
	other, err := auth.CreateUser(models.User{Username: "musa", Password: "pw", FullName: "Musa", Email: "m@example.org"})
	require.NoError(t, err)

	patch, err := store.PatchOf(map[string]any{"password": "newpass", "fullName": "Musa Ibrahim"})
	require.NoError(t, err)
	updated, ok, err := auth.UpdateUser(other.ID, patch)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Musa Ibrahim", updated.FullName)
	assert.True(t, CheckPassword(updated.Password, "newpass"))

	patch, err = store.PatchOf(map[string]any{"username": "admin"})
	require.NoError(t, err)
	_, _, err = auth.UpdateUser(other.ID, patch)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// keeping your own username is fine
	patch, err = store.PatchOf(map[string]any{"username": "musa"})
	require.NoError(t, err)
	_, ok, err = auth.UpdateUser(other.ID, patch)
	assert.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = auth.UpdateUser(999, patch)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, st.Users.Len())
}
