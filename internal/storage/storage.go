// Package storage holds the client-local key/value stores the storefront
// persists its state in. Every backend mirrors the browser's localStorage
// contract: string keys, string values, scoped to one origin.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

type KV interface {
	// Get returns ErrNotFound when key has never been set or was removed.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove is a no-op for absent keys.
	Remove(ctx context.Context, key string) error
	Close() error
}
