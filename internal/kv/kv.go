// Package kv provides the namespaced key/value stores that back receipts and
// the gallery cache.
package kv

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by Get when the key is absent or expired.
	ErrNotFound = errors.New("key not found")

	// ErrQuotaExceeded is returned by Set when the backend refuses the write
	// because it is out of space.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Store is a byte-oriented key/value store with optional per-key expiry.
// An exp of zero means the key does not expire.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, exp time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every key starting with prefix and returns how many were removed.
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}
