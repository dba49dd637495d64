// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/science/internal/ports/secondary"
)

// Project directory layout.
const (
	ProjectDirName = ".science"
	DatabaseName   = "Science.db"
	LogName        = "science.log"
	ConfigName     = "config.yaml"
)

// ProjectAdapter implements secondary.ProjectWorkspace rooted at one directory.
type ProjectAdapter struct {
	root string
}

// NewProjectAdapter creates a project adapter rooted at root.
// If root is empty, the current working directory is used.
func NewProjectAdapter(root string) (*ProjectAdapter, error) {
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = cwd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	return &ProjectAdapter{root: abs}, nil
}

// Ensure creates the project directory if it does not exist yet.
func (a *ProjectAdapter) Ensure(ctx context.Context) (bool, error) {
	existed, err := a.Exists(ctx)
	if err != nil {
		return false, err
	}
	if existed {
		return true, nil
	}

	// drwxr-xr-x
	if err := os.MkdirAll(a.Dir(), 0755); err != nil {
		return false, fmt.Errorf("failed to create %s: %w", ProjectDirName, err)
	}
	return false, nil
}

// Exists reports whether the project directory exists.
func (a *ProjectAdapter) Exists(ctx context.Context) (bool, error) {
	info, err := os.Stat(a.Dir())
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", ProjectDirName, err)
	}
	if !info.IsDir() {
		return false, fmt.Errorf("%s exists but is not a directory", a.Dir())
	}
	return true, nil
}

// Root returns the directory the project lives in.
func (a *ProjectAdapter) Root() string { return a.root }

// Dir returns the project directory.
func (a *ProjectAdapter) Dir() string { return filepath.Join(a.root, ProjectDirName) }

// DatabasePath returns the SQLite database path.
func (a *ProjectAdapter) DatabasePath() string { return filepath.Join(a.Dir(), DatabaseName) }

// LogPath returns the log file path.
func (a *ProjectAdapter) LogPath() string { return filepath.Join(a.Dir(), LogName) }

// ConfigPath returns the config file path.
func (a *ProjectAdapter) ConfigPath() string { return filepath.Join(a.Dir(), ConfigName) }

var _ secondary.ProjectWorkspace = (*ProjectAdapter)(nil)
