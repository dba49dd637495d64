// Package wire provides dependency injection for the science application.
// It opens the project in the working directory once per process and
// builds the services on top of it.
package wire

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	cliadapter "github.com/example/science/internal/adapters/cli"
	"github.com/example/science/internal/adapters/filesystem"
	"github.com/example/science/internal/adapters/sqlite"
	"github.com/example/science/internal/app"
	"github.com/example/science/internal/apperr"
	"github.com/example/science/internal/config"
	"github.com/example/science/internal/db"
	"github.com/example/science/internal/ports/primary"
	"github.com/example/science/internal/ports/secondary"
)

// Project is an opened science project.
type Project struct {
	Workspace         secondary.ProjectWorkspace
	Config            *config.Config
	Log               secondary.LogWriter
	Logger            *slog.Logger
	DB                *sql.DB
	ExperimentService primary.ExperimentService

	migrationsApplied int
}

var (
	project    *Project
	projectErr error
	logFile    *filesystem.LogFile
	rootDir    string
	once       sync.Once
	mu         sync.Mutex
)

// SetRoot makes the next open use dir instead of the working directory and
// forgets any project already opened.
func SetRoot(dir string) {
	mu.Lock()
	defer mu.Unlock()
	_ = closeLocked()
	rootDir = dir
}

// CurrentProject returns the singleton project, opening it on first use.
func CurrentProject(ctx context.Context) (*Project, error) {
	mu.Lock()
	defer mu.Unlock()
	once.Do(func() {
		project, projectErr = openProject(ctx, rootDir)
	})
	return project, projectErr
}

// ExperimentService returns the singleton ExperimentService.
func ExperimentService(ctx context.Context) (primary.ExperimentService, error) {
	p, err := CurrentProject(ctx)
	if err != nil {
		return nil, err
	}
	return p.ExperimentService, nil
}

// ExperimentAdapter returns a new ExperimentAdapter writing to stdout.
func ExperimentAdapter(ctx context.Context) (*cliadapter.ExperimentAdapter, error) {
	return ExperimentAdapterWithOutput(ctx, os.Stdout)
}

// ExperimentAdapterWithOutput returns a new ExperimentAdapter writing to out.
// Each call creates a new adapter (adapters are stateless translators).
func ExperimentAdapterWithOutput(ctx context.Context, out io.Writer) (*cliadapter.ExperimentAdapter, error) {
	p, err := CurrentProject(ctx)
	if err != nil {
		return nil, err
	}
	return cliadapter.NewExperimentAdapter(p.ExperimentService, out, cliadapter.NewPalette(p.Config.Output.Color)), nil
}

// Reporter returns an error reporter that writes to the project log when one
// could be opened, even if opening the rest of the project failed.
func Reporter() *apperr.Reporter {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return apperr.NewReporter(nil)
	}
	return apperr.NewReporter(logFile)
}

// Close releases the database and the log.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

func closeLocked() error {
	var errs []error
	if project != nil && project.DB != nil {
		errs = append(errs, project.DB.Close())
	}
	if logFile != nil {
		errs = append(errs, logFile.Close())
	}
	project, projectErr, logFile = nil, nil, nil
	once = sync.Once{}
	return errors.Join(errs...)
}

// openProject resolves the project directory, loads the config, opens the
// log and brings the database schema up to date.
func openProject(ctx context.Context, root string) (*Project, error) {
	workspace, err := filesystem.NewProjectAdapter(root)
	if err != nil {
		return nil, apperr.Wrap(err)
	}

	exists, err := workspace.Exists(ctx)
	if err != nil {
		return nil, apperr.Specific(apperr.KindStorage, err.Error(), err)
	}
	if !exists {
		return nil, apperr.Invariant("%s is not a science project. Run `science init` first.", workspace.Root())
	}

	cfg, err := config.LoadConfig(workspace.ConfigPath())
	if err != nil {
		return nil, apperr.Specific(apperr.KindStorage, err.Error(), err)
	}
	level, _ := cfg.LogLevel()

	logFile, err = filesystem.OpenLogFile(workspace.LogPath(), displayPath(filesystem.LogName), level)
	if err != nil {
		return nil, apperr.Storage("failed to open the project log", err)
	}
	logger := logFile.Logger()

	database, applied, err := db.OpenAndMigrate(ctx, workspace.DatabasePath())
	if err != nil {
		return nil, err
	}
	if applied > 0 {
		logger.InfoContext(ctx, "applied migrations", "count", applied, "version", db.LatestVersion())
	}

	git := app.NewGitService(workspace.Root(), app.GitOptions{
		Binary:     cfg.Git.Binary,
		AllowEmpty: cfg.Git.AllowEmpty,
	})
	recorder := app.NewDatapointRecorder(git, app.RecoveryLocation{
		Dir:      filesystem.ProjectDirName,
		Database: filesystem.DatabaseName,
	}, logger)

	return &Project{
		Workspace:         workspace,
		Config:            cfg,
		Log:               logFile,
		Logger:            logger,
		DB:                database,
		ExperimentService: app.NewExperimentService(sqlite.NewStore(database), recorder, logger),
		migrationsApplied: applied,
	}, nil
}

func displayPath(name string) string {
	return filepath.ToSlash(filepath.Join(filesystem.ProjectDirName, name))
}
