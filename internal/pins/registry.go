// Package pins keeps the bounded, deduplicated list of map pins for one
// visitor tab.
package pins

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"days/internal/models"
	"days/internal/search"
)

// DefaultCapacity is the number of pins a tab keeps.
const DefaultCapacity = 5

// ErrPinNotFound is returned for unknown pin ids.
var ErrPinNotFound = errors.New("pin not found")

// Registry is an ordered pin list, newest first. It is safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	pins     []models.Pin
	capacity int
	now      func() time.Time
}

// NewRegistry creates an empty registry. capacity <= 0 uses DefaultCapacity.
func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Registry{capacity: capacity, now: time.Now}
}

// AddOrUpdate inserts p at the front. Entries with the same id, place key or
// display name are replaced; placeholder names and empty keys never match.
// When over capacity the oldest non-bookmarked pin is evicted, or the oldest
// pin when every other pin is bookmarked.
func (r *Registry) AddOrUpdate(p models.Pin) models.Pin {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addLocked(p)
}

// Replace updates an existing pin in place. Other entries that now describe
// the same place are merged into it. It reports false and changes nothing if
// the pin was removed in the meantime.
func (r *Registry) Replace(p models.Pin) (models.Pin, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexLocked(p.ID)
	if i < 0 {
		return models.Pin{}, false
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.pins[i].CreatedAt
	}
	p = r.prepare(p)

	kept := make([]models.Pin, 0, len(r.pins))
	at := 0
	for j, existing := range r.pins {
		if j == i {
			at = len(kept)
			kept = append(kept, p)
			continue
		}
		if !sameEntry(existing, p) {
			kept = append(kept, existing)
		}
	}
	for _, existing := range r.pins {
		if sameEntry(existing, p) {
			absorb(&kept[at], existing)
		}
	}

	r.pins = kept
	return kept[at], true
}

func (r *Registry) prepare(p models.Pin) models.Pin {
	p.DisplayName = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(p.DisplayName), search.PinMarker))
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.now()
	}
	return p
}

// absorb carries the bookmark and the active state of a replaced entry.
func absorb(dst *models.Pin, existing models.Pin) {
	if existing.Bookmarked {
		dst.Bookmarked = true
	}
	if existing.Kind == models.PinActive && dst.Kind == models.PinResolved {
		dst.Kind = models.PinActive
	}
}

func (r *Registry) addLocked(p models.Pin) models.Pin {
	p = r.prepare(p)

	kept := make([]models.Pin, 0, len(r.pins)+1)
	kept = append(kept, p)
	for _, existing := range r.pins {
		if sameEntry(existing, p) {
			absorb(&kept[0], existing)
			continue
		}
		kept = append(kept, existing)
	}

	for len(kept) > r.capacity {
		victim := len(kept) - 1
		for i := len(kept) - 1; i > 0; i-- {
			if !kept[i].Bookmarked {
				victim = i
				break
			}
		}
		kept = append(kept[:victim], kept[victim+1:]...)
	}

	r.pins = kept
	return kept[0]
}

func sameEntry(a, b models.Pin) bool {
	if a.ID == b.ID {
		return true
	}
	if a.PlaceKey != "" && a.PlaceKey == b.PlaceKey && !models.IsPlaceholder(string(a.PlaceKey)) {
		return true
	}
	return !models.IsPlaceholder(a.DisplayName) && a.DisplayName == b.DisplayName
}

// Remove deletes a pin. It reports whether the pin existed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexLocked(id)
	if i < 0 {
		return false
	}
	r.pins = append(r.pins[:i], r.pins[i+1:]...)
	return true
}

// Clear removes every pin.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pins = nil
}

// List returns a copy of the pins, newest first.
func (r *Registry) List() []models.Pin {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Pin(nil), r.pins...)
}

// Get returns one pin.
func (r *Registry) Get(id string) (models.Pin, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexLocked(id); i >= 0 {
		return r.pins[i], true
	}
	return models.Pin{}, false
}

// Select makes one pin active and turns every other resolved pin into a
// ghost. Temporary pins are left alone.
func (r *Registry) Select(id string) (models.Pin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexLocked(id)
	if i < 0 {
		return models.Pin{}, ErrPinNotFound
	}
	for j := range r.pins {
		switch {
		case j == i:
			r.pins[j].Kind = models.PinActive
		case r.pins[j].IsResolved():
			r.pins[j].Kind = models.PinGhost
		}
	}
	return r.pins[i], nil
}

// SetBookmarked flags or unflags a pin. Bookmarked pins survive eviction
// while any unbookmarked pin remains.
func (r *Registry) SetBookmarked(id string, bookmarked bool) (models.Pin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexLocked(id)
	if i < 0 {
		return models.Pin{}, ErrPinNotFound
	}
	r.pins[i].Bookmarked = bookmarked
	return r.pins[i], nil
}

// Len returns the number of pins.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pins)
}

func (r *Registry) indexLocked(id string) int {
	for i := range r.pins {
		if r.pins[i].ID == id {
			return i
		}
	}
	return -1
}
