package kv

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemory_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)

	if _, err := m.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}

	if err := m.Set(ctx, "a", []byte("1"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := m.Get(ctx, "a")
	if err != nil || string(got) != "1" {
		t.Fatalf("Get(a) = %q, %v; want 1", got, err)
	}

	if err := m.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := m.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
	}
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	m := NewMemory(0).WithClock(func() time.Time { return now })

	if err := m.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := m.Get(ctx, "k"); err != nil {
		t.Fatalf("Get before expiry error = %v", err)
	}

	now = now.Add(time.Minute)
	if _, err := m.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after expiry error = %v, want ErrNotFound", err)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want expired key purged", m.Len())
	}
}

func TestMemory_Quota(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(10)

	if err := m.Set(ctx, "ab", []byte("123456"), 0); err != nil {
		t.Fatalf("Set() within budget error = %v", err)
	}
	if err := m.Set(ctx, "cd", []byte("1234"), 0); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("Set() over budget error = %v, want ErrQuotaExceeded", err)
	}

	// Overwriting an existing key only counts the delta.
	if err := m.Set(ctx, "ab", []byte("12345678"), 0); err != nil {
		t.Errorf("overwrite within budget error = %v", err)
	}
}

func TestMemory_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)

	for _, k := range []string{"days_gallery:a", "days_gallery:b", "receipt:x"} {
		if err := m.Set(ctx, k, []byte("v"), 0); err != nil {
			t.Fatalf("Set(%s) error = %v", k, err)
		}
	}

	n, err := m.DeletePrefix(ctx, "days_gallery:")
	if err != nil {
		t.Fatalf("DeletePrefix() error = %v", err)
	}
	if n != 2 {
		t.Errorf("DeletePrefix() removed %d, want 2", n)
	}
	if _, err := m.Get(ctx, "receipt:x"); err != nil {
		t.Errorf("unrelated key was removed: %v", err)
	}
}

func TestMemory_QuotaReclaimsExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	m := NewMemory(10).WithClock(func() time.Time { return now })

	if err := m.Set(ctx, "ab", []byte("123456"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := m.Set(ctx, "cd", []byte("1234"), 0); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("Set() before expiry error = %v, want ErrQuotaExceeded", err)
	}

	now = now.Add(time.Hour)
	if err := m.Set(ctx, "cd", []byte("1234"), 0); err != nil {
		t.Errorf("Set() after expiry error = %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want the expired key reclaimed", m.Len())
	}
}
