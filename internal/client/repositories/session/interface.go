package session

import "context"

// Store holds at most one credential for its scope.
type Store interface {
	// Load returns the stored token, or "" when there is none.
	Load(ctx context.Context) (string, error)
	// Save replaces the stored token.
	Save(ctx context.Context, token string) error
	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
