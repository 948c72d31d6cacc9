// Package auth implements registration, activation, login, and logout over
// the user registry.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amsaid/crowdfund/internal/common"
	"github.com/amsaid/crowdfund/internal/logging"
	"github.com/amsaid/crowdfund/internal/models"
	"github.com/amsaid/crowdfund/internal/storage"
	"github.com/amsaid/crowdfund/internal/validation"
)

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 6

// Validation failures surfaced to the operator. Matched with errors.Is where
// tests need to distinguish them.
var (
	ErrBadFirstName     = errors.New("first name must contain only letters and spaces")
	ErrBadLastName      = errors.New("last name must contain only letters and spaces")
	ErrBadEmail         = errors.New("invalid email format")
	ErrShortPassword    = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrPasswordMismatch = errors.New("passwords don't match")
	ErrBadPhone         = errors.New("invalid Egyptian phone number format")
)

// RegisterParams carries the raw registration input. Email is normalized to
// lowercase before any lookup or insert.
type RegisterParams struct {
	FirstName       string
	LastName        string
	Email           string
	Password        []byte
	ConfirmPassword []byte
	Mobile          string
}

// Service owns the authentication flows. All state lives in the injected
// Store; the Service itself is stateless.
type Service struct {
	store  *storage.Store
	hasher *Hasher
	valid  *validation.Validator
	log    logging.Logger
}

func NewService(store *storage.Store, hasher *Hasher, valid *validation.Validator, log logging.Logger) *Service {
	return &Service{store: store, hasher: hasher, valid: valid, log: log}
}

// Register validates all fields, stores a new inactive user, and persists the
// registry. The new account cannot log in until Activate is called.
func (s *Service) Register(ctx context.Context, p RegisterParams) (*models.User, error) {
	if !s.valid.Name(p.FirstName) {
		return nil, ErrBadFirstName
	}
	if !s.valid.Name(p.LastName) {
		return nil, ErrBadLastName
	}

	email := strings.ToLower(strings.TrimSpace(p.Email))
	if !s.valid.Email(email) {
		return nil, ErrBadEmail
	}
	if _, exists := s.store.User(email); exists {
		return nil, common.ErrEmailExists
	}

	if len(p.Password) < MinPasswordLength {
		return nil, ErrShortPassword
	}
	if string(p.Password) != string(p.ConfirmPassword) {
		return nil, ErrPasswordMismatch
	}
	if !s.valid.Phone(p.Mobile) {
		return nil, ErrBadPhone
	}

	hash, err := s.hasher.Hash(p.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		FirstName:    strings.TrimSpace(p.FirstName),
		LastName:     strings.TrimSpace(p.LastName),
		PasswordHash: hash,
		Mobile:       strings.TrimSpace(p.Mobile),
		IsActive:     false,
		CreatedAt:    time.Now().Format(time.RFC3339),
	}
	s.store.AddUser(user)
	if err := s.store.Save(ctx); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user registered", "email", email)
	return user, nil
}

// Activate flips the is_active flag for email and persists the registry.
func (s *Service) Activate(ctx context.Context, email string) error {
	user, ok := s.store.User(email)
	if !ok {
		return common.ErrNotFound
	}
	user.IsActive = true
	if err := s.store.Save(ctx); err != nil {
		return err
	}
	s.log.Info(ctx, "account activated", "email", user.Email)
	return nil
}

// Login verifies credentials and opens the session. Failures: ErrNotFound for
// an unknown email, ErrNotActivated for an inactive account, ErrUnauthorized
// for a wrong password.
func (s *Service) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, ok := s.store.User(email)
	if !ok {
		return nil, common.ErrNotFound
	}
	if !user.IsActive {
		return nil, common.ErrNotActivated
	}
	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, common.ErrUnauthorized
	}

	sess := s.store.SetCurrentUser(email)
	s.log.Info(ctx, "login", "email", email, "session_id", sess.ID)
	return user, nil
}

// Logout closes the session. Idempotent.
func (s *Service) Logout(ctx context.Context) {
	s.store.ClearCurrentUser()
	s.log.Info(ctx, "logout")
}
