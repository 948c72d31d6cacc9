// Package common defines shared sentinel errors used across the crowdfund
// services. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrNotFound      = errors.New("not found")
	ErrInvalidRecord = errors.New("invalid record")

	// Auth errors.
	ErrEmailExists  = errors.New("email already exists")
	ErrNotActivated = errors.New("account not activated")
	ErrUnauthorized = errors.New("invalid password")

	// Session errors.
	ErrNotLoggedIn = errors.New("please login first")

	// Project errors.
	ErrInvalidSelection = errors.New("invalid selection")
)
