// Package storage keeps the in-memory user and project registries in sync
// with their flat files and tracks the single logged-in session.
//
// A Store is an explicit handle passed into each service; there is no
// package-level state. The process is single-threaded, so the Store does no
// locking, and concurrent multi-process access to the same files is
// last-writer-wins.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amsaid/crowdfund/internal/common"
	"github.com/amsaid/crowdfund/internal/filex"
	"github.com/amsaid/crowdfund/internal/logging"
	"github.com/amsaid/crowdfund/internal/models"
)

// Session identifies the currently logged-in user. At most one session exists
// per process; it is never persisted.
type Session struct {
	ID        uuid.UUID
	Email     string
	StartedAt time.Time
}

// Store mirrors the users and projects files in memory.
//
// Users are keyed by lowercased email; insertion order is preserved so a load
// followed by a save round-trips file content. Projects are an ordered list.
type Store struct {
	usersPath    string
	projectsPath string

	users     map[string]*models.User
	userOrder []string
	projects  []*models.Project

	session *Session
	log     logging.Logger
}

func New(usersPath, projectsPath string, log logging.Logger) *Store {
	return &Store{
		usersPath:    usersPath,
		projectsPath: projectsPath,
		users:        make(map[string]*models.User),
		log:          log,
	}
}

// Load reads both flat files if present. Lines with the wrong field count are
// dropped silently; any other failure (read error, unparsable amount) resets
// the corresponding registry to empty. Failures are reported only through the
// logger — a broken file never prevents the application from starting.
func (s *Store) Load(ctx context.Context) {
	s.loadUsers(ctx)
	s.loadProjects(ctx)
}

func (s *Store) loadUsers(ctx context.Context) {
	s.users = make(map[string]*models.User)
	s.userOrder = nil

	data, err := os.ReadFile(s.usersPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn(ctx, "reading users file", "path", s.usersPath, "error", err)
		}
		return
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		u, err := models.ParseUser(line)
		if err != nil {
			if errors.Is(err, common.ErrInvalidRecord) {
				continue
			}
			s.users = make(map[string]*models.User)
			s.userOrder = nil
			s.log.Warn(ctx, "users file unreadable, registry reset", "path", s.usersPath, "error", err)
			return
		}
		s.AddUser(u)
	}
}

func (s *Store) loadProjects(ctx context.Context) {
	s.projects = nil

	data, err := os.ReadFile(s.projectsPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn(ctx, "reading projects file", "path", s.projectsPath, "error", err)
		}
		return
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		p, err := models.ParseProject(line)
		if err != nil {
			if errors.Is(err, common.ErrInvalidRecord) {
				continue
			}
			s.projects = nil
			s.log.Warn(ctx, "projects file unreadable, registry reset", "path", s.projectsPath, "error", err)
			return
		}
		s.projects = append(s.projects, p)
	}
}

// Save serializes both registries back to their files, each written via a
// temp file and rename so a crash mid-write never truncates existing data.
// After a successful Save the on-disk record count equals the in-memory one.
func (s *Store) Save(ctx context.Context) error {
	var buf bytes.Buffer
	for _, email := range s.userOrder {
		buf.WriteString(s.users[email].Record())
		buf.WriteByte('\n')
	}
	if err := filex.WriteFileAtomic(s.usersPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("saving users: %w", err)
	}

	buf.Reset()
	for _, p := range s.projects {
		buf.WriteString(p.Record())
		buf.WriteByte('\n')
	}
	if err := filex.WriteFileAtomic(s.projectsPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("saving projects: %w", err)
	}

	s.log.Debug(ctx, "registries saved", "users", len(s.userOrder), "projects", len(s.projects))
	return nil
}

// User looks up a user by email (case-insensitive).
func (s *Store) User(email string) (*models.User, bool) {
	u, ok := s.users[strings.ToLower(email)]
	return u, ok
}

// AddUser inserts or replaces a user, keyed by lowercased email.
func (s *Store) AddUser(u *models.User) {
	key := strings.ToLower(u.Email)
	if _, exists := s.users[key]; !exists {
		s.userOrder = append(s.userOrder, key)
	}
	s.users[key] = u
}

// Users returns all users in insertion order.
func (s *Store) Users() []*models.User {
	out := make([]*models.User, 0, len(s.userOrder))
	for _, email := range s.userOrder {
		out = append(out, s.users[email])
	}
	return out
}

func (s *Store) UserCount() int { return len(s.userOrder) }

// Projects returns the ordered project list. The slice is shared; callers
// must not reorder it.
func (s *Store) Projects() []*models.Project { return s.projects }

func (s *Store) ProjectCount() int { return len(s.projects) }

func (s *Store) AddProject(p *models.Project) {
	s.projects = append(s.projects, p)
}

// RemoveProject deletes the given project by identity and reports whether it
// was present.
func (s *Store) RemoveProject(p *models.Project) bool {
	for i, q := range s.projects {
		if q == p {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			return true
		}
	}
	return false
}

// SetCurrentUser opens a session for email and returns it. Any previous
// session is replaced.
func (s *Store) SetCurrentUser(email string) *Session {
	s.session = &Session{
		ID:        uuid.New(),
		Email:     strings.ToLower(email),
		StartedAt: time.Now(),
	}
	return s.session
}

// ClearCurrentUser ends the session. Idempotent.
func (s *Store) ClearCurrentUser() {
	s.session = nil
}

// CurrentUser returns the logged-in user, or nil if no session is open or
// the session points at an email no longer in the registry.
func (s *Store) CurrentUser() *models.User {
	if s.session == nil {
		return nil
	}
	u, ok := s.users[s.session.Email]
	if !ok {
		return nil
	}
	return u
}

// CurrentSession returns the open session, or nil.
func (s *Store) CurrentSession() *Session { return s.session }
