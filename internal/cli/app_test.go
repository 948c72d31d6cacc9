package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amsaid/crowdfund/internal/auth"
	"github.com/amsaid/crowdfund/internal/logging"
	"github.com/amsaid/crowdfund/internal/models"
	"github.com/amsaid/crowdfund/internal/projects"
	"github.com/amsaid/crowdfund/internal/storage"
	"github.com/amsaid/crowdfund/internal/validation"
)

// stubPasswords replaces the password seam with a queue of canned answers.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	old := getPassword
	t.Cleanup(func() { getPassword = old })
	i := 0
	getPassword = func(prompt string, w io.Writer) ([]byte, error) {
		if i >= len(answers) {
			t.Fatalf("unexpected password prompt %q", prompt)
		}
		pw := answers[i]
		i++
		return []byte(pw), nil
	}
}

func newScriptedApp(t *testing.T, script string) (*App, *bytes.Buffer, *storage.Store) {
	t.Helper()
	dir := t.TempDir()
	store := storage.New(filepath.Join(dir, "users.txt"), filepath.Join(dir, "projects.txt"), logging.NewDiscard())
	valid := validation.New().WithNow(func() time.Time {
		return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	})
	authSvc := auth.NewService(store, auth.NewHasher(auth.SchemeSHA256), valid, logging.NewDiscard())
	projSvc := projects.NewService(store, valid, logging.NewDiscard())

	var out bytes.Buffer
	app := newAppWithIO(store, authSvc, projSvc, valid, logging.NewDiscard(), strings.NewReader(script), &out)
	return app, &out, store
}

func TestRun_ExitFromGuestMenu(t *testing.T) {
	app, out, _ := newScriptedApp(t, "0\n")
	app.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "Welcome to the Crowdfunding Platform!")
	assert.Contains(t, s, "=== MAIN MENU ===")
	assert.Contains(t, s, "Goodbye!")
}

func TestRun_EOFExitsCleanly(t *testing.T) {
	app, out, _ := newScriptedApp(t, "")
	app.Run(context.Background())
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestRun_InvalidOption(t *testing.T) {
	app, out, _ := newScriptedApp(t, "9\n0\n")
	app.Run(context.Background())
	assert.Contains(t, out.String(), "Invalid option!")
}

func TestRegisterFlow_WithActivationAndLogin(t *testing.T) {
	stubPasswords(t, "secret123", "secret123", "secret123")

	// register -> fields -> activate y -> login -> logout -> exit
	script := strings.Join([]string{
		"1",           // Register
		"Alice",       // First Name
		"Hassan",      // Last Name
		"alice@x.com", // Email
		"01012345678", // Mobile
		"y",           // Activate now
		"2",           // Login
		"alice@x.com", // Email
		"7",           // Logout
		"0",           // Exit
	}, "\n") + "\n"

	app, out, store := newScriptedApp(t, script)
	app.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "Registration successful!")
	assert.Contains(t, s, "Account activated!")
	assert.Contains(t, s, "Welcome, Alice Hassan!")
	assert.Contains(t, s, "=== USER MENU (Alice) ===")
	assert.Contains(t, s, "Logged out successfully!")

	u, ok := store.User("alice@x.com")
	require.True(t, ok)
	assert.True(t, u.IsActive)
}

func TestRegisterFlow_WithoutActivationLoginFails(t *testing.T) {
	stubPasswords(t, "secret123", "secret123", "secret123")

	script := strings.Join([]string{
		"1",           // Register
		"Alice",       // First Name
		"Hassan",      // Last Name
		"alice@x.com", // Email
		"01012345678", // Mobile
		"n",           // Do not activate
		"2",           // Login
		"alice@x.com", // Email
		"0",           // Exit
	}, "\n") + "\n"

	app, out, store := newScriptedApp(t, script)
	app.Run(context.Background())

	assert.Contains(t, out.String(), "Account not activated!")
	assert.Nil(t, store.CurrentUser())
}

func TestRegisterFlow_AbortsOnFirstInvalidField(t *testing.T) {
	script := "1\nAl1ce\n0\n"
	app, out, store := newScriptedApp(t, script)
	app.Run(context.Background())

	assert.Contains(t, out.String(), "First name must contain only letters and spaces!")
	assert.Zero(t, store.UserCount())
}

func TestLogin_UnknownEmailMessage(t *testing.T) {
	stubPasswords(t, "whatever9")
	app, out, _ := newScriptedApp(t, "2\nghost@x.com\n0\n")
	app.Run(context.Background())
	assert.Contains(t, out.String(), "Email not found!")
}

func loggedInApp(t *testing.T, store *storage.Store) {
	t.Helper()
	store.AddUser(&models.User{
		Email:     "alice@x.com",
		FirstName: "Alice",
		LastName:  "Hassan",
		IsActive:  true,
		CreatedAt: "2025-06-01T10:00:00Z",
	})
	store.SetCurrentUser("alice@x.com")
}

func TestCreateAndViewProjects(t *testing.T) {
	script := strings.Join([]string{
		"1",               // Create Project
		"Clean Water",     // Title
		"Wells",           // Details
		"50000",           // Target
		"2025-07-01",      // Start
		"2025-09-01",      // End
		"2",               // View All
		"3",               // View Mine
		"0",               // Exit
	}, "\n") + "\n"

	app, out, store := newScriptedApp(t, script)
	loggedInApp(t, store)
	app.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "Project created successfully!")
	assert.Contains(t, s, "=== ALL PROJECTS ===")
	assert.Contains(t, s, "1. Clean Water")
	assert.Contains(t, s, "Owner: alice@x.com")
	assert.Contains(t, s, "Target: 50000.00 EGP")
	assert.Contains(t, s, "Progress: 0.00 EGP (0.0%)")
	assert.Contains(t, s, "Duration: 2025-07-01 to 2025-09-01")
	assert.Contains(t, s, "=== MY PROJECTS ===")
}

func TestViewAll_EmptyState(t *testing.T) {
	app, out, _ := newScriptedApp(t, "3\n0\n")
	app.Run(context.Background())
	assert.Contains(t, out.String(), "No projects available.")
}

func TestEditProject_BlankKeepsAndBadTargetWarns(t *testing.T) {
	script := strings.Join([]string{
		"1", "Clean Water", "Wells", "50000", "2025-07-01", "2025-09-01",
		"4",        // Edit My Project
		"1",        // select first
		"",         // keep title
		"",         // keep details
		"abc",      // malformed target
		"0",        // Exit
	}, "\n") + "\n"

	app, out, store := newScriptedApp(t, script)
	loggedInApp(t, store)
	app.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "Invalid target format, keeping current value.")
	assert.Contains(t, s, "Project updated successfully!")

	p := store.Projects()[0]
	assert.Equal(t, "Clean Water", p.Title)
	assert.Equal(t, 50000.0, p.TotalTarget)
}

func TestDeleteProject_RequiresConfirmation(t *testing.T) {
	script := strings.Join([]string{
		"1", "Clean Water", "Wells", "50000", "2025-07-01", "2025-09-01",
		"5", "1", "no", // delete, select, refuse
		"5", "1", "y",  // delete, select, confirm
		"0",
	}, "\n") + "\n"

	app, out, store := newScriptedApp(t, script)
	loggedInApp(t, store)
	app.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "Deletion cancelled.")
	assert.Contains(t, s, "Project deleted successfully!")
	assert.Zero(t, store.ProjectCount())
}

func TestSearchByDate_FromMenu(t *testing.T) {
	script := strings.Join([]string{
		"1", "Clean Water", "Wells", "50000", "2025-07-01", "2025-09-01",
		"6", "2025-08-01", // search hit
		"6", "2025-12-01", // search miss
		"0",
	}, "\n") + "\n"

	app, out, store := newScriptedApp(t, script)
	loggedInApp(t, store)
	app.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "Projects running on 2025-08-01:")
	assert.Contains(t, s, "No projects found running on 2025-12-01")
}

func TestEditProject_NoProjectsMessage(t *testing.T) {
	app, out, store := newScriptedApp(t, "4\n0\n")
	loggedInApp(t, store)
	app.Run(context.Background())
	assert.Contains(t, out.String(), "You have no projects to edit!")
}
