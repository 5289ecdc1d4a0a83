package sessions

import "context"

// Repo defines the interface for session storage operations.
// Get returns errors.ErrNoSuchSession for an unknown id.
type Repo interface {
	// Upsert creates or replaces a session
	Upsert(ctx context.Context, session *Session) error

	// Get retrieves a session by ID
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Delete removes a session by ID. Deleting an unknown session is not an error.
	Delete(ctx context.Context, sessionID string) error
}
