package kv

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	val       []byte
	expiresAt time.Time
}

// Memory is an in-process Store with an optional byte budget. When the budget
// is exceeded Set fails with ErrQuotaExceeded.
type Memory struct {
	mu       sync.Mutex
	entries  map[string]memoryEntry
	used     int
	maxBytes int
	now      func() time.Time
}

var _ Store = (*Memory)(nil)

// NewMemory creates a memory store. maxBytes <= 0 disables the budget.
func NewMemory(maxBytes int) *Memory {
	return &Memory{
		entries:  make(map[string]memoryEntry),
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

// WithClock overrides the clock used for expiry. Intended for tests.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

// Get returns the value for key, purging it if expired.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		m.removeLocked(key)
		return nil, ErrNotFound
	}
	out := make([]byte, len(e.val))
	copy(out, e.val)
	return out, nil
}

// Set stores val under key. Expired entries are reclaimed before a write is
// refused for lack of space.
func (m *Memory) Set(_ context.Context, key string, val []byte, exp time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	size := len(key) + len(val)
	if m.maxBytes > 0 && m.usedWithout(key)+size > m.maxBytes {
		m.purgeExpiredLocked()
		if m.usedWithout(key)+size > m.maxBytes {
			return ErrQuotaExceeded
		}
	}
	used := m.usedWithout(key)

	e := memoryEntry{val: append([]byte(nil), val...)}
	if exp > 0 {
		e.expiresAt = m.now().Add(exp)
	}
	m.entries[key] = e
	m.used = used + size
	return nil
}

// Delete removes key. Missing keys are not an error.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	m.removeLocked(key)
	m.mu.Unlock()
	return nil
}

// DeletePrefix removes all keys with the given prefix.
func (m *Memory) DeletePrefix(_ context.Context, prefix string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			m.removeLocked(key)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored keys, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) usedWithout(key string) int {
	if old, ok := m.entries[key]; ok {
		return m.used - len(key) - len(old.val)
	}
	return m.used
}

func (m *Memory) purgeExpiredLocked() {
	now := m.now()
	for key, e := range m.entries {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			m.removeLocked(key)
		}
	}
}

func (m *Memory) removeLocked(key string) {
	if e, ok := m.entries[key]; ok {
		m.used -= len(key) + len(e.val)
		delete(m.entries, key)
	}
}
