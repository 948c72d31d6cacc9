package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amsaid/crowdfund/internal/auth"
	"github.com/amsaid/crowdfund/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register collects and validates the registration fields one at a time,
// aborting on the first invalid value, then stores the new inactive account
// and offers immediate activation.
func (a *App) Register(ctx context.Context) error {
	fmt.Fprintln(a.out, "\n=== REGISTRATION ===")

	firstName, err := getSimpleText(a.reader, "First Name", a.out)
	if err != nil {
		return err
	}
	if !a.valid.Name(firstName) {
		fmt.Fprintln(a.out, "First name must contain only letters and spaces!")
		return nil
	}

	lastName, err := getSimpleText(a.reader, "Last Name", a.out)
	if err != nil {
		return err
	}
	if !a.valid.Name(lastName) {
		fmt.Fprintln(a.out, "Last name must contain only letters and spaces!")
		return nil
	}

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !a.valid.Email(email) {
		fmt.Fprintln(a.out, "Invalid email format!")
		return nil
	}
	if _, exists := a.store.User(email); exists {
		fmt.Fprintln(a.out, "Email already exists!")
		return nil
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	if len(password) < auth.MinPasswordLength {
		fmt.Fprintf(a.out, "Password must be at least %d characters!\n", auth.MinPasswordLength)
		return nil
	}

	confirm, err := getPassword("Confirm Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)
	if string(password) != string(confirm) {
		fmt.Fprintln(a.out, "Passwords don't match!")
		return nil
	}

	mobile, err := getSimpleText(a.reader, "Mobile Phone", a.out)
	if err != nil {
		return err
	}
	if !a.valid.Phone(mobile) {
		fmt.Fprintln(a.out, "Invalid Egyptian phone number format!")
		return nil
	}

	if _, err := a.auth.Register(ctx, auth.RegisterParams{
		FirstName:       firstName,
		LastName:        lastName,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
		Mobile:          mobile,
	}); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return nil
	}

	fmt.Fprintln(a.out, "Registration successful!")
	fmt.Fprintln(a.out, "Account created but not activated. Please activate your account to login.")

	answer, err := getSimpleText(a.reader, "Activate account now? (y/n)", a.out)
	if err != nil {
		return err
	}
	if strings.ToLower(answer) == "y" {
		if err := a.auth.Activate(ctx, email); err != nil {
			fmt.Fprintf(a.out, "Error: %s\n", err)
			return nil
		}
		fmt.Fprintln(a.out, "Account activated!")
	}
	return nil
}

// Login prompts for credentials and opens a session on success. Failures are
// printed, never returned, so the menu loop continues.
func (a *App) Login(ctx context.Context) error {
	fmt.Fprintln(a.out, "\n=== LOGIN ===")

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Login(ctx, email, password)
	switch {
	case err == nil:
		fmt.Fprintf(a.out, "Welcome, %s!\n", user.FullName())
	case errors.Is(err, common.ErrNotFound):
		fmt.Fprintln(a.out, "Email not found!")
	case errors.Is(err, common.ErrNotActivated):
		fmt.Fprintln(a.out, "Account not activated!")
	case errors.Is(err, common.ErrUnauthorized):
		fmt.Fprintln(a.out, "Invalid password!")
	default:
		fmt.Fprintf(a.out, "Error: %s\n", err)
	}
	return nil
}

// Logout closes the session. Idempotent.
func (a *App) Logout(ctx context.Context) {
	a.auth.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out successfully!")
}
