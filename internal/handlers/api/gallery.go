package api

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"days/internal/middleware"
	"days/internal/models"
	"days/internal/search"
	"days/internal/validation"
	"days/internal/workspace"
)

// Workspaces hands out per-tab state.
type Workspaces interface {
	Get(tabID string) *workspace.Workspace
}

// Thumbnailer finds a single image for a place.
type Thumbnailer interface {
	Thumbnail(ctx context.Context, q models.GalleryQuery) string
}

// GalleryHandler serves place imagery.
type GalleryHandler struct {
	spaces Workspaces
	thumbs Thumbnailer
	keys   Keyer
}

// NewGalleryHandler creates a new gallery handler.
func NewGalleryHandler(spaces Workspaces, thumbs Thumbnailer, keys Keyer) *GalleryHandler {
	return &GalleryHandler{spaces: spaces, thumbs: thumbs, keys: keys}
}

// Gallery loads the gallery for a place into the caller's tab. A result
// overtaken by a newer request from the same tab is reported as stale.
func (h *GalleryHandler) Gallery(c fiber.Ctx) error {
	v, ok := middleware.VisitorFrom(c)
	if !ok {
		return noVisitor(c)
	}

	q, msg := h.galleryQuery(c)
	if msg != "" {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	view := h.spaces.Get(v.TabID).Gallery
	res := view.Load(c.Context(), q)

	resp := models.GalleryResponse{
		GalleryResult: res.Value,
		Outcome:       res.Outcome,
		Generation:    view.Generation(),
	}
	if res.Err != nil {
		resp.Error = "image search unavailable"
	}
	if resp.Images == nil {
		resp.Images = []models.Image{}
	}
	return jsonSuccess(c, resp)
}

// Thumbnail returns one image for a place.
func (h *GalleryHandler) Thumbnail(c fiber.Ctx) error {
	q, msg := h.galleryQuery(c)
	if msg != "" {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	return jsonSuccess(c, models.ThumbnailResponse{
		PlaceKey: q.PlaceKey,
		URL:      h.thumbs.Thumbnail(c.Context(), q),
	})
}

// galleryQuery reads place, name and country from the query string. A
// non-empty message means the request is invalid.
func (h *GalleryHandler) galleryQuery(c fiber.Ctx) (models.GalleryQuery, string) {
	place := c.Query("place")
	name := c.Query("name", place)
	if place == "" {
		place = name
	}
	if place == "" {
		return models.GalleryQuery{}, "place is required"
	}
	if valid, msg := validation.ValidatePlaceText(place); !valid {
		return models.GalleryQuery{}, msg
	}

	return models.GalleryQuery{
		PlaceKey:    h.keys.Key(place),
		DisplayName: string(search.CanonicalKey(name)),
		Country:     c.Query("country"),
	}, ""
}
