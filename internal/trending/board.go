// Package trending ranks places by aggregated score.
package trending

import (
	"context"
	"sync"
	"time"

	"days/internal/config"
	"days/internal/metrics"
	"days/internal/models"
	"days/internal/search"
)

const (
	// Size is the number of places on the board.
	Size = 10
	// MinLive is the fewest scored places needed to show live data.
	MinLive = 3
)

// Source supplies the highest scored places.
type Source interface {
	TopPlaces(ctx context.Context, limit int) ([]models.PlaceStats, error)
}

// Thumbnailer finds an image for a place that has none stored.
type Thumbnailer interface {
	Thumbnail(ctx context.Context, q models.GalleryQuery) string
}

// Board holds the current ranking. Until enough places have a score it shows
// the catalog's fallback list.
type Board struct {
	source   Source
	catalog  *config.Catalog
	thumbs   Thumbnailer
	fallback []models.TrendingPlace

	mu        sync.RWMutex
	current   []models.TrendingPlace
	live      bool
	updatedAt time.Time
}

// NewBoard creates a board showing the fallback list. source and thumbs may
// be nil.
func NewBoard(source Source, cat *config.Catalog, thumbs Thumbnailer) *Board {
	b := &Board{source: source, catalog: cat, thumbs: thumbs}
	b.fallback = b.fallbackList()
	b.current = b.fallback
	return b
}

// Current returns the ranking and whether it comes from live scores.
func (b *Board) Current() ([]models.TrendingPlace, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]models.TrendingPlace(nil), b.current...), b.live
}

// UpdatedAt returns when the board last refreshed.
func (b *Board) UpdatedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.updatedAt
}

// Refresh reloads scores. On a source error the previous ranking stays.
func (b *Board) Refresh(ctx context.Context) error {
	places := b.fallback
	live := false

	if b.source != nil {
		stats, err := b.source.TopPlaces(ctx, Size)
		if err != nil {
			return err
		}
		if ranked := b.rank(stats); len(ranked) >= MinLive {
			places = ranked
			live = true
		}
	}

	places = b.withImages(ctx, places)

	b.mu.Lock()
	b.current = places
	b.live = live
	b.updatedAt = time.Now()
	b.mu.Unlock()

	metrics.ObserveTrendingRefresh(!live)
	return nil
}

// rank turns score rows into board entries. Rows with no name to show are
// skipped.
func (b *Board) rank(stats []models.PlaceStats) []models.TrendingPlace {
	out := make([]models.TrendingPlace, 0, len(stats))
	for _, s := range stats {
		if models.IsPlaceholder(s.PlaceKey.String()) {
			continue
		}
		entry := models.TrendingPlace{
			PlaceKey: s.PlaceKey,
			Name:     s.DisplayName,
			Country:  s.Country,
			Score:    s.TotalScore,
			ImageURL: s.ImageURL,
		}
		if spot := b.catalog.SpotByName(s.PlaceKey.String()); spot != nil {
			entry.Name = spot.Name
			entry.NameEN = spot.NameEN
			entry.Country = spot.Country
		}
		if entry.Name == "" {
			entry.Name = s.PlaceKey.String()
		}
		entry.Rank = len(out) + 1
		out = append(out, entry)
	}
	return out
}

func (b *Board) fallbackList() []models.TrendingPlace {
	if b.catalog == nil {
		return nil
	}
	out := make([]models.TrendingPlace, 0, len(b.catalog.Fallback.Trending))
	for _, name := range b.catalog.Fallback.Trending {
		spot := b.catalog.SpotByName(name)
		if spot == nil {
			continue
		}
		out = append(out, models.TrendingPlace{
			Rank:     len(out) + 1,
			PlaceKey: search.CanonicalKey(spot.Name),
			Name:     spot.Name,
			NameEN:   spot.NameEN,
			Country:  spot.Country,
		})
	}
	return out
}

func (b *Board) withImages(ctx context.Context, places []models.TrendingPlace) []models.TrendingPlace {
	if b.thumbs == nil {
		return places
	}
	out := make([]models.TrendingPlace, len(places))
	copy(out, places)
	for i := range out {
		if out[i].ImageURL != "" {
			continue
		}
		name := out[i].NameEN
		if name == "" {
			name = out[i].Name
		}
		out[i].ImageURL = b.thumbs.Thumbnail(ctx, models.GalleryQuery{
			PlaceKey:    out[i].PlaceKey,
			DisplayName: name,
			Country:     out[i].Country,
		})
	}
	return out
}
