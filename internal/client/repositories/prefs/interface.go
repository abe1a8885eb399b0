// Package prefs implements the persistent string-keyed preference map the
// rest of the data layer is built on: a durable, process-surviving mapping
// from string keys to string values with no transactions and no multi-key
// atomicity.
package prefs

import "context"

// Repository is the store contract. Get returns common.ErrNotFound for an
// absent key; Delete is idempotent; All returns a snapshot of every entry.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	All(ctx context.Context) (map[string]string, error)
	Close() error
}
