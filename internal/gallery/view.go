package gallery

import (
	"context"
	"sync"

	"days/internal/models"
)

// Resolver produces galleries. *Chain satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, q models.GalleryQuery) models.Result[models.GalleryResult]
}

// viewKey identifies a query on screen. Two places may share a display name.
type viewKey struct {
	place models.PlaceKey
	term  string
}

// View is the gallery state of one visitor tab. Only the latest distinct
// query may update what the tab sees: each new query bumps a generation and a
// result is applied only if its generation is still current.
type View struct {
	chain Resolver

	mu      sync.Mutex
	gen     uint64
	last    viewKey
	applied bool
	current models.GalleryResult
}

// NewView creates an empty view over a resolver.
func NewView(chain Resolver) *View {
	return &View{chain: chain}
}

// Load shows the gallery for q. Repeating the query already on screen
// returns it without a new fetch (OutcomeDuplicate); repeating one still in
// flight joins it. A result overtaken by a newer query is returned with
// OutcomeStale and not applied.
func (v *View) Load(ctx context.Context, q models.GalleryQuery) models.Result[models.GalleryResult] {
	key := viewKey{place: q.PlaceKey, term: q.SearchTerm()}

	v.mu.Lock()
	if key == v.last && v.applied {
		cur := v.current
		v.mu.Unlock()
		return models.Result[models.GalleryResult]{Value: cur, Outcome: models.OutcomeDuplicate}
	}
	if key != v.last || v.gen == 0 {
		v.gen++
		v.last = key
		v.applied = false
	}
	gen := v.gen
	v.mu.Unlock()

	res := v.chain.Resolve(ctx, q)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		return models.Result[models.GalleryResult]{Value: res.Value, Outcome: models.OutcomeStale, Err: res.Err}
	}
	v.current = res.Value
	v.applied = true
	return res
}

// Current returns the gallery on screen, if any.
func (v *View) Current() (models.GalleryResult, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current, v.applied
}

// Generation returns the generation of the latest query.
func (v *View) Generation() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.gen
}
