// Package db defines the key-value storage contract shared by the
// file-backed and Redis-backed translation cache stores.
package db

import (
	"context"
	"errors"
)

// ErrKeyNotFound signals a missing key.
var ErrKeyNotFound = errors.New("db: key not found")

// Store is a minimal string-valued KV store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
	Close()
}
