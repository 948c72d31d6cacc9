package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amsaid/crowdfund/internal/common"
	"github.com/amsaid/crowdfund/internal/logging"
	"github.com/amsaid/crowdfund/internal/storage"
	"github.com/amsaid/crowdfund/internal/validation"
)

func newTestService(t *testing.T) (*Service, *storage.Store) {
	svc, store, _ := newTestServiceDir(t)
	return svc, store
}

func newTestServiceDir(t *testing.T) (*Service, *storage.Store, string) {
	t.Helper()
	dir := t.TempDir()
	store := storage.New(filepath.Join(dir, "users.txt"), filepath.Join(dir, "projects.txt"), logging.NewDiscard())
	valid := validation.New().WithNow(func() time.Time {
		return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	})
	svc := NewService(store, NewHasher(SchemeSHA256), valid, logging.NewDiscard())
	return svc, store, dir
}

func validParams() RegisterParams {
	return RegisterParams{
		FirstName:       "Alice",
		LastName:        "Hassan",
		Email:           "Alice@Example.com",
		Password:        []byte("secret123"),
		ConfirmPassword: []byte("secret123"),
		Mobile:          "01012345678",
	}
}

func TestRegister_StoresInactiveUser(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	user, err := svc.Register(ctx, validParams())
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email, "email is lowercased")
	assert.False(t, user.IsActive, "new accounts start inactive")
	assert.NotEmpty(t, user.CreatedAt)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	stored, ok := store.User("alice@example.com")
	require.True(t, ok)
	assert.Equal(t, user, stored)
}

func TestRegister_FieldValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*RegisterParams)
		want   error
	}{
		{"bad first name", func(p *RegisterParams) { p.FirstName = "Al1ce" }, ErrBadFirstName},
		{"empty last name", func(p *RegisterParams) { p.LastName = "  " }, ErrBadLastName},
		{"bad email", func(p *RegisterParams) { p.Email = "a@b" }, ErrBadEmail},
		{"short password", func(p *RegisterParams) { p.Password = []byte("abc"); p.ConfirmPassword = []byte("abc") }, ErrShortPassword},
		{"mismatched confirm", func(p *RegisterParams) { p.ConfirmPassword = []byte("different") }, ErrPasswordMismatch},
		{"bad phone", func(p *RegisterParams) { p.Mobile = "+1 555 0100" }, ErrBadPhone},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			p := validParams()
			tc.mutate(&p)
			_, err := svc.Register(ctx, p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v, want %v", err, tc.want)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Register(ctx, validParams())
	require.NoError(t, err)

	p := validParams()
	p.Email = "ALICE@example.com" // same identity, different case
	_, err = svc.Register(ctx, p)
	assert.True(t, errors.Is(err, common.ErrEmailExists))
}

func TestLogin_RequiresActivation(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	_, err := svc.Register(ctx, validParams())
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", []byte("secret123"))
	assert.True(t, errors.Is(err, common.ErrNotActivated))
	assert.Nil(t, store.CurrentUser())

	require.NoError(t, svc.Activate(ctx, "alice@example.com"))

	user, err := svc.Login(ctx, "Alice@Example.com", []byte("secret123"))
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	require.NotNil(t, store.CurrentUser())
	assert.Equal(t, "alice@example.com", store.CurrentUser().Email)
}

func TestLogin_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Login(ctx, "ghost@example.com", []byte("whatever"))
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Register(ctx, validParams())
	require.NoError(t, err)
	require.NoError(t, svc.Activate(ctx, "alice@example.com"))

	_, err = svc.Login(ctx, "alice@example.com", []byte("not-the-password"))
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
}

func TestActivate_UnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.Activate(context.Background(), "ghost@example.com")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestLogout_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	_, err := svc.Register(ctx, validParams())
	require.NoError(t, err)
	require.NoError(t, svc.Activate(ctx, "alice@example.com"))
	_, err = svc.Login(ctx, "alice@example.com", []byte("secret123"))
	require.NoError(t, err)

	svc.Logout(ctx)
	assert.Nil(t, store.CurrentUser())
	svc.Logout(ctx)
	assert.Nil(t, store.CurrentUser())
}

func TestRegisterThenLogin_PersistsAcrossReload(t *testing.T) {
	ctx := context.Background()
	svc, _, dir := newTestServiceDir(t)

	_, err := svc.Register(ctx, validParams())
	require.NoError(t, err)
	require.NoError(t, svc.Activate(ctx, "alice@example.com"))

	// Fresh store over the same files, as after a process restart.
	fresh := storage.New(filepath.Join(dir, "users.txt"), filepath.Join(dir, "projects.txt"), logging.NewDiscard())
	fresh.Load(ctx)
	svc2 := NewService(fresh, NewHasher(SchemeSHA256), validation.New(), logging.NewDiscard())

	_, err = svc2.Login(ctx, "alice@example.com", []byte("secret123"))
	require.NoError(t, err)
}
