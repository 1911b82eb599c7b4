// Package gallery resolves the image gallery for a place through an ordered
// chain of sources: cache, persistent store, external search, static fallback.
package gallery

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"days/internal/cache"
	"days/internal/db"
	"days/internal/metrics"
	"days/internal/models"
)

// Store is the persistent gallery store.
type Store interface {
	GalleryURLs(ctx context.Context, place models.PlaceKey) ([]models.Image, error)
	Thumbnail(ctx context.Context, place models.PlaceKey) (string, error)
	SaveGallery(ctx context.Context, q models.GalleryQuery, images []models.Image) error
}

// Searcher is the external image search.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.Image, error)
}

// Chain tries each source strictly in order and never returns an empty
// gallery. Store and Searcher may be nil when not configured.
type Chain struct {
	cache    *cache.Resolver[[]models.Image]
	store    Store
	search   Searcher
	fallback []models.Image
	flights  singleflight.Group
}

// NewChain creates a gallery chain. fallback must not be empty.
func NewChain(c *cache.Resolver[[]models.Image], store Store, search Searcher, fallback []models.Image) *Chain {
	return &Chain{cache: c, store: store, search: search, fallback: fallback}
}

// Resolve produces the gallery for q. Concurrent calls for the same place
// share one fetch. A fallback result carries Err only when a source failed
// outright rather than finding nothing.
func (c *Chain) Resolve(ctx context.Context, q models.GalleryQuery) models.Result[models.GalleryResult] {
	if unresolvable(q) {
		return c.fallbackResult(q.SearchTerm(), nil)
	}

	v, _, _ := c.flights.Do("gallery:"+q.PlaceKey.String(), func() (any, error) {
		return c.resolve(context.WithoutCancel(ctx), q), nil
	})
	res := v.(models.Result[models.GalleryResult])
	metrics.ObserveGallerySource(string(res.Value.Source))
	return res
}

func (c *Chain) resolve(ctx context.Context, q models.GalleryQuery) models.Result[models.GalleryResult] {
	key := q.PlaceKey.String()
	term := q.SearchTerm()

	if images, ok := c.cache.Get(ctx, key); ok && len(images) > 0 {
		return hit(images, models.SourceCache, term)
	}

	if images := c.fromStore(ctx, q.PlaceKey); len(images) > 0 {
		c.cache.Set(ctx, key, images)
		return hit(images, models.SourceStore, term)
	}

	images, used, err := c.searchWithRetry(ctx, q)
	if len(images) > 0 {
		c.writeThrough(ctx, q, images)
		return hit(images, models.SourceSearch, used)
	}

	return c.fallbackResult(term, err)
}

// Thumbnail returns one representative image URL for q: the first cached
// image, the stored thumbnail, the first search result, or the first fallback
// image, in that order.
func (c *Chain) Thumbnail(ctx context.Context, q models.GalleryQuery) string {
	if unresolvable(q) {
		return c.fallbackThumbnail()
	}

	v, _, _ := c.flights.Do("thumb:"+q.PlaceKey.String(), func() (any, error) {
		return c.thumbnail(context.WithoutCancel(ctx), q), nil
	})
	return v.(string)
}

func (c *Chain) thumbnail(ctx context.Context, q models.GalleryQuery) string {
	if images, ok := c.cache.Get(ctx, q.PlaceKey.String()); ok && len(images) > 0 {
		if u := images[0].ThumbnailURL(); u != "" {
			return u
		}
	}

	if c.store != nil {
		u, err := c.store.Thumbnail(ctx, q.PlaceKey)
		if err == nil && u != "" {
			return u
		}
		if err != nil && !isMiss(err) {
			slog.Warn("thumbnail store lookup failed", "place", q.PlaceKey, "error", err)
		}
	}

	if images, _, _ := c.searchWithRetry(ctx, q); len(images) > 0 {
		c.writeThrough(ctx, q, images)
		if u := images[0].ThumbnailURL(); u != "" {
			return u
		}
	}

	return c.fallbackThumbnail()
}

func (c *Chain) fromStore(ctx context.Context, place models.PlaceKey) []models.Image {
	if c.store == nil {
		return nil
	}
	images, err := c.store.GalleryURLs(ctx, place)
	if err != nil {
		if !isMiss(err) {
			slog.Warn("gallery store lookup failed", "place", place, "error", err)
		}
		return nil
	}
	return images
}

// searchWithRetry runs the primary term and, when that finds nothing, the
// term broadened with the country. It returns the term that produced images.
func (c *Chain) searchWithRetry(ctx context.Context, q models.GalleryQuery) ([]models.Image, string, error) {
	if c.search == nil {
		return nil, "", nil
	}

	term := q.SearchTerm()
	images, err := c.search.Search(ctx, term)
	if err != nil {
		slog.Warn("image search failed", "query", term, "error", err)
		return nil, term, err
	}
	if len(images) > 0 {
		return images, term, nil
	}

	broad := q.BroadenedTerm()
	if broad == "" {
		return nil, term, nil
	}
	slog.Debug("no images, retrying broadened query", "query", term, "retry", broad)
	images, err = c.search.Search(ctx, broad)
	if err != nil {
		slog.Warn("image search failed", "query", broad, "error", err)
		return nil, broad, err
	}
	return images, broad, nil
}

// writeThrough saves search results to the store and the cache. Failures are
// logged; the images are still served.
func (c *Chain) writeThrough(ctx context.Context, q models.GalleryQuery, images []models.Image) {
	if c.store != nil {
		if err := c.store.SaveGallery(ctx, q, images); err != nil {
			slog.Warn("failed to save gallery", "place", q.PlaceKey, "error", err)
		}
	}
	c.cache.Set(ctx, q.PlaceKey.String(), images)
}

func (c *Chain) fallbackResult(term string, err error) models.Result[models.GalleryResult] {
	return models.Result[models.GalleryResult]{
		Value:   models.GalleryResult{Images: c.fallback, Source: models.SourceFallback, Query: term},
		Outcome: models.OutcomeFallback,
		Err:     err,
	}
}

func (c *Chain) fallbackThumbnail() string {
	if len(c.fallback) == 0 {
		return ""
	}
	return c.fallback[0].ThumbnailURL()
}

func hit(images []models.Image, source models.GallerySource, term string) models.Result[models.GalleryResult] {
	return models.Result[models.GalleryResult]{
		Value:   models.GalleryResult{Images: images, Source: source, Query: term},
		Outcome: models.OutcomeHit,
	}
}

// unresolvable reports queries that can only ever produce the fallback.
func unresolvable(q models.GalleryQuery) bool {
	return models.IsPlaceholder(q.PlaceKey.String()) || models.IsPlaceholder(q.SearchTerm())
}

func isMiss(err error) bool {
	return errors.Is(err, db.ErrPlaceNotFound) || errors.Is(err, db.ErrNoGallery)
}
