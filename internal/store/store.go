package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("store: key not found")

// KV is one key/value pair, used by SetMany so write order stays explicit.
type KV struct {
	Key   string
	Value []byte
}

// Store is the persistent key-value backing for cached lookups and settings.
// Implementations guarantee per-operation atomicity only; concurrent writers
// to the same key race and last write wins.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// GetMany returns values aligned with keys. Missing or unreadable keys
	// yield a nil element rather than failing the whole batch.
	GetMany(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, pairs []KV) error
	// Delete removes the given keys. Unknown keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	Keys(ctx context.Context) ([]string, error)
	Entries(ctx context.Context) ([]KV, error)
	Clear(ctx context.Context) error
}
