package secondary

import "context"

// ProjectWorkspace defines the secondary port for the project-local
// directory that holds the database, the log and the config.
type ProjectWorkspace interface {
	// Ensure creates the project directory if needed. It reports whether
	// the directory already existed.
	Ensure(ctx context.Context) (existed bool, err error)

	// Exists reports whether the project directory exists.
	Exists(ctx context.Context) (bool, error)

	// Root is the directory the project lives in (the git working tree).
	Root() string

	// Dir is the project directory itself, e.g. "<root>/.science".
	Dir() string

	// DatabasePath returns the path of the SQLite database file.
	DatabasePath() string

	// LogPath returns the path of the append-only log file.
	LogPath() string

	// ConfigPath returns the path of the project config file.
	ConfigPath() string
}
