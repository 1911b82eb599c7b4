package kv

import (
	"context"
	"errors"
	"os"
	"testing"
)

func setupTestRedis(t *testing.T) *Redis {
	t.Helper()
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping integration test: TEST_REDIS_URL not set")
	}
	r := NewRedis(url)
	t.Cleanup(func() {
		r.DeletePrefix(context.Background(), "kvtest:")
		r.Close()
	})
	return r
}

func TestRedis_RoundTrip(t *testing.T) {
	r := setupTestRedis(t)
	ctx := context.Background()

	if _, err := r.Get(ctx, "kvtest:missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}
	if err := r.Set(ctx, "kvtest:a", []byte("1"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := r.Get(ctx, "kvtest:a")
	if err != nil || string(got) != "1" {
		t.Fatalf("Get() = %q, %v", got, err)
	}
}

func TestRedis_DeletePrefix(t *testing.T) {
	r := setupTestRedis(t)
	ctx := context.Background()

	for _, k := range []string{"kvtest:ns:a", "kvtest:ns:b", "kvtest:other"} {
		if err := r.Set(ctx, k, []byte("v"), 0); err != nil {
			t.Fatalf("Set(%s) error = %v", k, err)
		}
	}
	n, err := r.DeletePrefix(ctx, "kvtest:ns:")
	if err != nil {
		t.Fatalf("DeletePrefix() error = %v", err)
	}
	if n != 2 {
		t.Errorf("DeletePrefix() removed %d, want 2", n)
	}
	if _, err := r.Get(ctx, "kvtest:other"); err != nil {
		t.Errorf("unrelated key removed: %v", err)
	}
}

func TestIsOutOfMemory(t *testing.T) {
	if !isOutOfMemory(errors.New("OOM command not allowed when used memory > 'maxmemory'.")) {
		t.Error("expected OOM error to be detected")
	}
	if isOutOfMemory(errors.New("connection refused")) {
		t.Error("unexpected OOM detection")
	}
}
