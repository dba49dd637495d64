package secondary

import "context"

// VersionControl defines the secondary port for the external version-control
// system. Both operations are synchronous and irreversible from our side.
type VersionControl interface {
	// Commit creates a commit with the given message.
	Commit(ctx context.Context, message string) error

	// HeadRevision returns the identifier of the current revision.
	HeadRevision(ctx context.Context) (string, error)
}
