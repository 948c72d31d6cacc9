package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/amsaid/crowdfund/internal/auth"
	"github.com/amsaid/crowdfund/internal/cli"
	"github.com/amsaid/crowdfund/internal/config"
	"github.com/amsaid/crowdfund/internal/filex"
	"github.com/amsaid/crowdfund/internal/logging"
	"github.com/amsaid/crowdfund/internal/projects"
	"github.com/amsaid/crowdfund/internal/storage"
	"github.com/amsaid/crowdfund/internal/validation"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	// Diagnostics go to stderr so the menu on stdout stays readable.
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	for _, path := range []string{cfg.UsersFile, cfg.ProjectsFile} {
		if _, err := filex.EnsureDir(filepath.Dir(path)); err != nil {
			log.Fatalf("%v", err)
		}
	}

	store := storage.New(cfg.UsersFile, cfg.ProjectsFile, logger)
	store.Load(ctx)

	valid := validation.New()
	hasher := auth.NewHasher(auth.PasswordScheme(cfg.PasswordScheme))
	authSvc := auth.NewService(store, hasher, valid, logger)
	projSvc := projects.NewService(store, valid, logger)

	app := cli.NewApp(store, authSvc, projSvc, valid, logger)
	app.Run(ctx)
}
