package cli

import (
	"bufio"
	"io"
	"os"

	"github.com/amsaid/crowdfund/internal/auth"
	"github.com/amsaid/crowdfund/internal/logging"
	"github.com/amsaid/crowdfund/internal/projects"
	"github.com/amsaid/crowdfund/internal/storage"
	"github.com/amsaid/crowdfund/internal/validation"
)

// App holds the wired services and the console streams.
type App struct {
	store    *storage.Store
	auth     *auth.Service
	projects *projects.Service
	valid    *validation.Validator
	log      logging.Logger

	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds an App reading from stdin and writing to stdout.
func NewApp(store *storage.Store, authSvc *auth.Service, projSvc *projects.Service, valid *validation.Validator, log logging.Logger) *App {
	return &App{
		store:    store,
		auth:     authSvc,
		projects: projSvc,
		valid:    valid,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
}

// newAppWithIO is used by tests to script a session.
func newAppWithIO(store *storage.Store, authSvc *auth.Service, projSvc *projects.Service, valid *validation.Validator, log logging.Logger, in io.Reader, out io.Writer) *App {
	a := NewApp(store, authSvc, projSvc, valid, log)
	a.reader = bufio.NewReader(in)
	a.out = out
	return a
}

func (a *App) isLoggedIn() bool {
	return a.store.CurrentUser() != nil
}
