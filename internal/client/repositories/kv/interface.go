// Package kv implements the durable key/value store the session layer keeps
// its token, credentials and profiles in. Values are opaque byte strings.
//
// Backends: SQLite (default), PostgreSQL and Redis. All of them implement
// Store, whose WithinTx applies a group of writes atomically.
package kv

import (
	"context"
)

// Repository is the plain key/value contract.
// Get returns (nil, nil) when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// Store is a Repository that can run several operations as one unit.
// Writes made through the Repository handed to fn become visible to other
// readers only if fn returns nil.
type Store interface {
	Repository
	WithinTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
	Close() error
}
