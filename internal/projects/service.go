// Package projects implements campaign management: create, list, edit,
// delete, and date search. Edit, delete, and "my projects" are scoped to the
// logged-in owner; listing and searching span all projects.
package projects

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amsaid/crowdfund/internal/common"
	"github.com/amsaid/crowdfund/internal/logging"
	"github.com/amsaid/crowdfund/internal/models"
	"github.com/amsaid/crowdfund/internal/storage"
	"github.com/amsaid/crowdfund/internal/validation"
)

var (
	ErrEmptyTitle    = errors.New("title cannot be empty")
	ErrEmptyDetails  = errors.New("details cannot be empty")
	ErrBadTarget     = errors.New("target must be positive")
	ErrBadDate       = errors.New("invalid date format")
	ErrReservedPipe  = errors.New("field cannot contain the | character")
	ErrNoOwnProjects = errors.New("you have no projects")
)

// CreateParams carries the raw project creation input.
type CreateParams struct {
	Title       string
	Details     string
	TotalTarget float64
	StartDate   string
	EndDate     string
}

// EditParams describes a partial update. Empty strings keep the existing
// value; a nil Target keeps the existing target. Dates and owner are
// immutable after creation.
type EditParams struct {
	Title   string
	Details string
	Target  *float64
}

// Service owns the project flows. All state lives in the injected Store.
type Service struct {
	store *storage.Store
	valid *validation.Validator
	log   logging.Logger
}

func NewService(store *storage.Store, valid *validation.Validator, log logging.Logger) *Service {
	return &Service{store: store, valid: valid, log: log}
}

// Create validates all fields, appends a project owned by the current user,
// and persists. Requires a logged-in session.
func (s *Service) Create(ctx context.Context, p CreateParams) (*models.Project, error) {
	owner := s.store.CurrentUser()
	if owner == nil {
		return nil, common.ErrNotLoggedIn
	}

	if p.Title == "" {
		return nil, ErrEmptyTitle
	}
	if p.Details == "" {
		return nil, ErrEmptyDetails
	}
	if !s.valid.DelimiterFree(p.Title) || !s.valid.DelimiterFree(p.Details) {
		return nil, ErrReservedPipe
	}
	if p.TotalTarget <= 0 {
		return nil, ErrBadTarget
	}
	if !s.valid.Date(p.StartDate) || !s.valid.Date(p.EndDate) {
		return nil, ErrBadDate
	}
	if ok, msg := s.valid.DateRange(p.StartDate, p.EndDate); !ok {
		return nil, errors.New(msg)
	}

	project := &models.Project{
		Title:       p.Title,
		Details:     p.Details,
		TotalTarget: p.TotalTarget,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		OwnerEmail:  owner.Email,
		CreatedAt:   time.Now().Format(time.RFC3339),
	}
	s.store.AddProject(project)
	if err := s.store.Save(ctx); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "project created", "title", project.Title, "owner", project.OwnerEmail)
	return project, nil
}

// All returns every project, in stored order.
func (s *Service) All() []*models.Project {
	return s.store.Projects()
}

// Mine returns the current user's projects. Requires a logged-in session.
func (s *Service) Mine(ctx context.Context) ([]*models.Project, error) {
	owner := s.store.CurrentUser()
	if owner == nil {
		return nil, common.ErrNotLoggedIn
	}
	return s.ownedBy(owner.Email), nil
}

func (s *Service) ownedBy(email string) []*models.Project {
	var out []*models.Project
	for _, p := range s.store.Projects() {
		if p.OwnerEmail == email {
			out = append(out, p)
		}
	}
	return out
}

// Edit applies changes to the index-th (zero-based) project owned by the
// current user, then persists. Only title, details, and target can change.
// A non-positive target in changes is ignored; the caller warns the user.
func (s *Service) Edit(ctx context.Context, index int, changes EditParams) (*models.Project, error) {
	project, err := s.selectOwned(index)
	if err != nil {
		return nil, err
	}

	if changes.Title != "" {
		if !s.valid.DelimiterFree(changes.Title) {
			return nil, ErrReservedPipe
		}
		project.Title = changes.Title
	}
	if changes.Details != "" {
		if !s.valid.DelimiterFree(changes.Details) {
			return nil, ErrReservedPipe
		}
		project.Details = changes.Details
	}
	if changes.Target != nil && *changes.Target > 0 {
		project.TotalTarget = *changes.Target
	}

	if err := s.store.Save(ctx); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "project updated", "title", project.Title, "owner", project.OwnerEmail)
	return project, nil
}

// Delete removes the index-th (zero-based) project owned by the current user
// and persists. The caller is responsible for confirmation.
func (s *Service) Delete(ctx context.Context, index int) (*models.Project, error) {
	project, err := s.selectOwned(index)
	if err != nil {
		return nil, err
	}

	s.store.RemoveProject(project)
	if err := s.store.Save(ctx); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "project deleted", "title", project.Title, "owner", project.OwnerEmail)
	return project, nil
}

func (s *Service) selectOwned(index int) (*models.Project, error) {
	owner := s.store.CurrentUser()
	if owner == nil {
		return nil, common.ErrNotLoggedIn
	}
	mine := s.ownedBy(owner.Email)
	if len(mine) == 0 {
		return nil, ErrNoOwnProjects
	}
	if index < 0 || index >= len(mine) {
		return nil, common.ErrInvalidSelection
	}
	return mine[index], nil
}

// SearchByDate returns every project, regardless of owner, whose
// [StartDate, EndDate] interval contains the given day, inclusive on both
// ends. Stored records with unparsable dates are skipped.
func (s *Service) SearchByDate(ctx context.Context, date string) ([]*models.Project, error) {
	if !s.valid.Date(date) {
		return nil, ErrBadDate
	}
	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadDate, date)
	}

	var out []*models.Project
	for _, p := range s.store.Projects() {
		if p.RunsOn(day) {
			out = append(out, p)
		}
	}
	s.log.Debug(ctx, "date search", "date", date, "matches", len(out))
	return out, nil
}
