// Package workspace keeps the per-tab state of the place engine: the pin
// list and the gallery view.
package workspace

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"days/internal/gallery"
	"days/internal/pins"
)

// Workspace is the state owned by one tab.
type Workspace struct {
	TabID   string
	Pins    *pins.Registry
	Gallery *gallery.View
}

type entry struct {
	ws       *Workspace
	lastSeen time.Time
}

// Forgetter drops a tab's receipts once its workspace is gone.
type Forgetter interface {
	ForgetTab(ctx context.Context, tabID string) (int, error)
}

// Config configures a Manager.
type Config struct {
	PinCapacity int
	IdleTTL     time.Duration
}

// Manager hands out workspaces by tab ID and expires idle ones.
type Manager struct {
	chain  gallery.Resolver
	forget Forgetter
	cfg    Config
	now    func() time.Time

	mu     sync.Mutex
	spaces map[string]*entry
}

// NewManager creates a manager. forget may be nil.
func NewManager(chain gallery.Resolver, forget Forgetter, cfg Config) *Manager {
	if cfg.PinCapacity <= 0 {
		cfg.PinCapacity = pins.DefaultCapacity
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 30 * time.Minute
	}
	return &Manager{
		chain:  chain,
		forget: forget,
		cfg:    cfg,
		now:    time.Now,
		spaces: make(map[string]*entry),
	}
}

// WithClock overrides the clock. Intended for tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Get returns the workspace of a tab, creating it on first use.
func (m *Manager) Get(tabID string) *Workspace {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.spaces[tabID]
	if !ok {
		e = &entry{ws: &Workspace{
			TabID:   tabID,
			Pins:    pins.NewRegistry(m.cfg.PinCapacity),
			Gallery: gallery.NewView(m.chain),
		}}
		m.spaces[tabID] = e
	}
	e.lastSeen = m.now()
	return e.ws
}

// Touch marks a tab as active without creating a workspace for it.
func (m *Manager) Touch(tabID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.spaces[tabID]; ok {
		e.lastSeen = m.now()
	}
}

// Close drops a tab's workspace and its receipts.
func (m *Manager) Close(ctx context.Context, tabID string) {
	m.mu.Lock()
	delete(m.spaces, tabID)
	m.mu.Unlock()
	m.forgetTab(ctx, tabID)
}

// Sweep drops workspaces idle for longer than the configured TTL and returns
// how many were removed.
func (m *Manager) Sweep(ctx context.Context) int {
	cutoff := m.now().Add(-m.cfg.IdleTTL)

	m.mu.Lock()
	var idle []string
	for id, e := range m.spaces {
		if e.lastSeen.Before(cutoff) {
			idle = append(idle, id)
			delete(m.spaces, id)
		}
	}
	m.mu.Unlock()

	for _, id := range idle {
		m.forgetTab(ctx, id)
	}
	return len(idle)
}

// Len returns the number of live workspaces.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.spaces)
}

func (m *Manager) forgetTab(ctx context.Context, tabID string) {
	if m.forget == nil {
		return
	}
	if _, err := m.forget.ForgetTab(ctx, tabID); err != nil {
		slog.Warn("failed to drop tab receipts", "tab", tabID, "error", err)
	}
}
