package roster

import "context"

// User is a roster entry.
type User struct {
	ID          string
	DisplayName string
}

// Store is the read-only user directory. The roster is fixed: it is loaded
// once at startup and never changes while the server runs.
type Store interface {
	// ListUsers returns all roster users in insertion order.
	ListUsers(ctx context.Context) ([]User, error)

	// Close releases the underlying storage.
	Close() error
}
