// Package cache implements the versioned, TTL-bound gallery cache on top of a
// kv.Store. Caching is an optimization only: no method returns an error to the
// caller, and every failure degrades to a miss or a skipped write.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/goccy/go-json"

	"days/internal/kv"
	"days/internal/metrics"
	"days/internal/models"
)

// Cache defaults.
const (
	DefaultVersion   = "v1.4"
	DefaultTTL       = 24 * time.Hour
	DefaultNamespace = "days_gallery_"
)

// Entry is the stored envelope around a cached payload.
type Entry[T any] struct {
	Version   string `json:"version"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
	Data      T      `json:"data"`
}

// Config configures a Resolver.
type Config struct {
	Namespace string
	Version   string
	TTL       time.Duration
}

// Resolver reads and writes Entry[T] values under a single namespace.
type Resolver[T any] struct {
	store     kv.Store
	namespace string
	version   string
	ttl       time.Duration
	now       func() time.Time
}

// New creates a resolver. Zero config fields take the package defaults.
func New[T any](store kv.Store, cfg Config) *Resolver[T] {
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &Resolver[T]{
		store:     store,
		namespace: cfg.Namespace,
		version:   cfg.Version,
		ttl:       cfg.TTL,
		now:       time.Now,
	}
}

// WithClock overrides the clock. Intended for tests.
func (r *Resolver[T]) WithClock(now func() time.Time) *Resolver[T] {
	r.now = now
	return r
}

// Namespace returns the key prefix owned by this resolver.
func (r *Resolver[T]) Namespace() string {
	return r.namespace
}

func (r *Resolver[T]) storageKey(key string) string {
	return r.namespace + key
}

// Get returns the cached value for key. Malformed, outdated and expired
// entries are deleted and reported as absent.
func (r *Resolver[T]) Get(ctx context.Context, key string) (T, bool) {
	var zero T
	skey := r.storageKey(key)

	raw, err := r.store.Get(ctx, skey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			slog.Warn("cache read failed", "key", skey, "error", err)
		}
		return zero, false
	}

	var entry Entry[T]
	if err := json.Unmarshal(raw, &entry); err != nil {
		r.purge(ctx, skey, "malformed")
		return zero, false
	}
	if entry.Version != r.version {
		r.purge(ctx, skey, "version")
		return zero, false
	}
	age := r.now().Sub(time.UnixMilli(entry.Timestamp))
	if age >= r.ttl {
		r.purge(ctx, skey, "expired")
		return zero, false
	}
	return entry.Data, true
}

// Set stores value under key. When the store is out of space every key in
// this resolver's namespace is purged and the write is retried once. A second
// failure is logged and the write is skipped.
func (r *Resolver[T]) Set(ctx context.Context, key string, value T) models.Result[struct{}] {
	skey := r.storageKey(key)
	raw, err := json.Marshal(Entry[T]{
		Version:   r.version,
		Timestamp: r.now().UnixMilli(),
		Data:      value,
	})
	if err != nil {
		slog.Error("cache encode failed", "key", skey, "error", err)
		return models.Result[struct{}]{Outcome: models.OutcomeSkipped, Err: err}
	}

	err = r.store.Set(ctx, skey, raw, 0)
	if err == nil {
		return models.Result[struct{}]{Outcome: models.OutcomeStored}
	}
	if !errors.Is(err, kv.ErrQuotaExceeded) {
		slog.Warn("cache write failed", "key", skey, "error", err)
		return models.Result[struct{}]{Outcome: models.OutcomeSkipped, Err: err}
	}

	removed, purgeErr := r.store.DeletePrefix(ctx, r.namespace)
	if purgeErr != nil {
		slog.Warn("cache namespace purge failed", "namespace", r.namespace, "error", purgeErr)
	}
	metrics.ObserveCachePurge(r.namespace, removed)
	slog.Info("cache quota exceeded, namespace purged", "namespace", r.namespace, "removed", removed)

	if err := r.store.Set(ctx, skey, raw, 0); err != nil {
		slog.Warn("cache write skipped after purge", "key", skey, "error", err)
		return models.Result[struct{}]{Outcome: models.OutcomeSkipped, Err: err}
	}
	return models.Result[struct{}]{Outcome: models.OutcomeRecovered}
}

// Invalidate removes a single entry.
func (r *Resolver[T]) Invalidate(ctx context.Context, key string) {
	r.purge(ctx, r.storageKey(key), "invalidate")
}

func (r *Resolver[T]) purge(ctx context.Context, skey, reason string) {
	if err := r.store.Delete(ctx, skey); err != nil {
		slog.Warn("cache purge failed", "key", skey, "reason", reason, "error", err)
	}
}
