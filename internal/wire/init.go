package wire

import (
	"context"

	"github.com/example/science/internal/adapters/filesystem"
	"github.com/example/science/internal/apperr"
	"github.com/example/science/internal/config"
	"github.com/example/science/internal/ports/secondary"
)

// InitResult describes what `science init` did.
type InitResult struct {
	Dir               string
	DirCreated        bool
	ConfigWritten     bool
	MigrationsApplied int
}

// Initialize creates the project directory and default config if missing,
// then opens the project, which migrates the database. Running it again on
// an initialized project changes nothing.
func Initialize(ctx context.Context) (*InitResult, error) {
	mu.Lock()
	root := rootDir
	mu.Unlock()

	var workspace secondary.ProjectWorkspace
	workspace, err := filesystem.NewProjectAdapter(root)
	if err != nil {
		return nil, apperr.Wrap(err)
	}

	existed, err := workspace.Ensure(ctx)
	if err != nil {
		return nil, apperr.Specific(apperr.KindStorage, err.Error(), err)
	}
	wrote, err := config.EnsureConfig(workspace.ConfigPath())
	if err != nil {
		return nil, apperr.Specific(apperr.KindStorage, err.Error(), err)
	}

	// Reopen so a cached "not a project" error is dropped and the migration
	// count reflects this call.
	mu.Lock()
	_ = closeLocked()
	mu.Unlock()

	p, err := CurrentProject(ctx)
	if err != nil {
		return nil, err
	}
	if wrote {
		p.Logger.InfoContext(ctx, "wrote default config", "path", workspace.ConfigPath())
	}

	return &InitResult{
		Dir:               workspace.Dir(),
		DirCreated:        !existed,
		ConfigWritten:     wrote,
		MigrationsApplied: p.migrationsApplied,
	}, nil
}
