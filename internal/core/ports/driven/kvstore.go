package driven

import "context"

// KeyValueStore is a durable text store keyed by string.
// It backs the session so that the current plan survives restarts.
type KeyValueStore interface {
	// Get returns the value stored under key.
	// Returns domain.ErrNotFound if the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// SetMany stores all entries or none of them.
	SetMany(ctx context.Context, entries map[string]string) error

	// Delete removes the given keys. Absent keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}
