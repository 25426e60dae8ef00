// Package storage provides the key-value persistence substrate the
// favorites store writes through. Values are opaque JSON blobs
// addressed by a namespaced key.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrKeyNotFound is returned by Get when the key has never been set.
	ErrKeyNotFound = errors.New("storage: key not found")

	// ErrUnavailable wraps backend failures that the caller cannot
	// recover from locally.
	ErrUnavailable = errors.New("storage: backend unavailable")
)

// KV is a minimal namespaced key-value store. Each operation is a
// single atomic read or write against the backend.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
