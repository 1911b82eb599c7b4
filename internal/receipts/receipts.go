// Package receipts records which interactions already counted today, so the
// recorder can refuse to forward duplicates.
package receipts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"days/internal/kv"
	"days/internal/models"
)

const (
	keyPrefix  = "receipt:"
	dateLayout = "2006-01-02"
)

// ErrNoOwner is returned when the visitor has no identifier for the lifetime
// the interaction kind requires.
var ErrNoOwner = errors.New("receipt owner missing")

// Config configures a Store.
type Config struct {
	// Location decides where "today" starts and ends.
	Location *time.Location
}

// Store keeps receipts under two owners: the tab for views and the device or
// account for chats and saves. Every receipt expires at the next local
// midnight, when it stops meaning anything.
type Store struct {
	tab        kv.Store
	persistent kv.Store
	cfg        Config
	now        func() time.Time
}

// New creates a receipt store over the two backends.
func New(tab, persistent kv.Store, cfg Config) *Store {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Store{tab: tab, persistent: persistent, cfg: cfg, now: time.Now}
}

// WithClock overrides the clock. Intended for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Key derives the storage key scope:kind:placeKey for an owner.
func Key(owner string, kind models.InteractionKind, place models.PlaceKey) string {
	return keyPrefix + owner + ":" + string(kind) + ":" + string(place)
}

// Today returns the current date stamp.
func (s *Store) Today() string {
	return s.now().In(s.cfg.Location).Format(dateLayout)
}

// untilMidnight returns how long today's receipts stay valid.
func (s *Store) untilMidnight() time.Duration {
	now := s.now().In(s.cfg.Location)
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, s.cfg.Location).Sub(now)
}

func (s *Store) backend(kind models.InteractionKind) kv.Store {
	if kind.TabScoped() {
		return s.tab
	}
	return s.persistent
}

// Has reports whether a receipt for (kind, place) exists for today. Receipts
// from earlier days count as absent.
func (s *Store) Has(ctx context.Context, v models.Visitor, kind models.InteractionKind, place models.PlaceKey) (bool, error) {
	owner := v.Owner(kind)
	if owner == "" {
		return false, ErrNoOwner
	}
	store := s.backend(kind)

	val, err := store.Get(ctx, Key(owner, kind, place))
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read receipt: %w", err)
	}
	return string(val) == s.Today(), nil
}

// Write stores today's receipt for (kind, place), replacing any older one.
func (s *Store) Write(ctx context.Context, v models.Visitor, kind models.InteractionKind, place models.PlaceKey) (models.Receipt, error) {
	owner := v.Owner(kind)
	if owner == "" {
		return models.Receipt{}, ErrNoOwner
	}
	r := models.Receipt{PlaceKey: place, Kind: kind, Date: s.Today()}
	if err := s.backend(kind).Set(ctx, Key(owner, kind, place), []byte(r.Date), s.untilMidnight()); err != nil {
		return models.Receipt{}, fmt.Errorf("failed to write receipt: %w", err)
	}
	return r, nil
}

// ForgetTab drops every tab-scoped receipt of a closed tab.
func (s *Store) ForgetTab(ctx context.Context, tabID string) (int, error) {
	if tabID == "" {
		return 0, ErrNoOwner
	}
	n, err := s.tab.DeletePrefix(ctx, keyPrefix+tabID+":")
	if err != nil {
		return n, fmt.Errorf("failed to forget tab receipts: %w", err)
	}
	return n, nil
}
