package api

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"

	"days/internal/middleware"
	"days/internal/models"
	"days/internal/pins"
	"days/internal/search"
	"days/internal/validation"
)

const resolveTimeout = 15 * time.Second

// PlaceResolver normalizes search input into places.
type PlaceResolver interface {
	Keyer
	Resolve(ctx context.Context, loc models.Location) (models.Resolution, error)
}

// PinHandler manages the pins of the caller's tab.
type PinHandler struct {
	spaces   Workspaces
	scouter  *pins.Scouter
	places   PlaceResolver
	recorder Recorder
	wg       sync.WaitGroup
}

// NewPinHandler creates a new pin handler.
func NewPinHandler(spaces Workspaces, scouter *pins.Scouter, places PlaceResolver, rec Recorder) *PinHandler {
	return &PinHandler{spaces: spaces, scouter: scouter, places: places, recorder: rec}
}

// Wait blocks until background pin resolutions finish.
func (h *PinHandler) Wait() {
	h.wg.Wait()
}

// List returns the tab's pins, newest first.
func (h *PinHandler) List(c fiber.Ctx) error {
	v, ok := middleware.VisitorFrom(c)
	if !ok {
		return noVisitor(c)
	}
	return jsonSuccess(c, h.registry(v).List())
}

// Scout drops a temporary pin at the given coordinates and names it in the
// background. With ?wait=true the pin is named before responding.
func (h *PinHandler) Scout(c fiber.Ctx) error {
	v, ok := middleware.VisitorFrom(c)
	if !ok {
		return noVisitor(c)
	}
	reg := h.registry(v)

	var body models.ScoutRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if valid, msg := validation.ValidateCoordinates(body.Lat, body.Lng); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	pin := h.scouter.Scout(reg, models.Coordinates{Lat: body.Lat, Lng: body.Lng}, body.Category)

	if c.Query("wait") == "true" {
		ctx, cancel := context.WithTimeout(c.Context(), resolveTimeout)
		defer cancel()
		resolved, err := h.scouter.Resolve(ctx, reg, v, pin.ID)
		if errors.Is(err, pins.ErrPinNotFound) {
			return jsonError(c, fiber.StatusNotFound, "pin not found")
		}
		return jsonSuccess(c, resolved)
	}

	// The request context is recycled once the handler returns.
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()
		h.scouter.Resolve(ctx, reg, v, pin.ID)
	}()

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status": "ok",
		"data":   pin,
	})
}

// SelectPlace resolves a search result and pins it as the active place.
// Concepts are returned without a pin.
func (h *PinHandler) SelectPlace(c fiber.Ctx) error {
	v, ok := middleware.VisitorFrom(c)
	if !ok {
		return noVisitor(c)
	}
	reg := h.registry(v)

	var loc models.Location
	if err := json.Unmarshal(c.Body(), &loc); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if loc.Kind == "" {
		loc.Kind = models.LocationRaw
	}
	if loc.Kind == models.LocationRaw {
		if valid, msg := validation.ValidatePlaceText(loc.Text); !valid {
			return jsonError(c, fiber.StatusBadRequest, msg)
		}
	}

	res, err := h.places.Resolve(c.Context(), loc)
	if errors.Is(err, search.ErrEmptyQuery) {
		return jsonError(c, fiber.StatusBadRequest, "place is required")
	}
	if err != nil {
		return jsonError(c, fiber.StatusBadGateway, "place lookup failed")
	}

	switch res.Kind {
	case models.ResolvedMissing:
		return jsonError(c, fiber.StatusNotFound, "place not found")
	case models.ResolvedConcept:
		return jsonSuccess(c, models.SelectionResponse{Resolution: res})
	}

	p := res.Place
	pin := reg.AddOrUpdate(models.Pin{
		PlaceKey:    p.Key,
		Coordinates: p.Coordinates,
		DisplayName: p.Name,
		Country:     p.Country,
		Kind:        models.PinResolved,
		Category:    selectionCategory(p.Category),
	})
	if selected, err := reg.Select(pin.ID); err == nil {
		pin = selected
	}

	h.recorder.RecordAsync(v, pin.PlaceKey, models.InteractionView)
	return jsonSuccess(c, models.SelectionResponse{Resolution: res, Pin: &pin})
}

// Select makes an existing pin the active one.
func (h *PinHandler) Select(c fiber.Ctx) error {
	v, ok := middleware.VisitorFrom(c)
	if !ok {
		return noVisitor(c)
	}
	reg := h.registry(v)

	pin, err := reg.Select(c.Params("id"))
	if err != nil {
		return pinError(c, err)
	}
	return jsonSuccess(c, pin)
}

// Bookmark toggles a pin's bookmark. Bookmarking counts as a save.
func (h *PinHandler) Bookmark(c fiber.Ctx) error {
	v, ok := middleware.VisitorFrom(c)
	if !ok {
		return noVisitor(c)
	}
	reg := h.registry(v)

	body := models.BookmarkRequest{Bookmarked: true}
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid request body")
		}
	}

	pin, err := reg.SetBookmarked(c.Params("id"), body.Bookmarked)
	if err != nil {
		return pinError(c, err)
	}

	if body.Bookmarked && pin.IsResolved() {
		res := h.recorder.Record(c.Context(), v, pin.PlaceKey, models.InteractionSave)
		return jsonSuccess(c, fiber.Map{
			"pin":     pin,
			"outcome": res.Outcome,
		})
	}
	return jsonSuccess(c, fiber.Map{"pin": pin})
}

// Delete removes one pin.
func (h *PinHandler) Delete(c fiber.Ctx) error {
	v, ok := middleware.VisitorFrom(c)
	if !ok {
		return noVisitor(c)
	}
	reg := h.registry(v)

	if !reg.Remove(c.Params("id")) {
		return jsonError(c, fiber.StatusNotFound, "pin not found")
	}
	return jsonSuccess(c, fiber.Map{"message": "pin removed"})
}

// Clear removes every pin of the tab.
func (h *PinHandler) Clear(c fiber.Ctx) error {
	v, ok := middleware.VisitorFrom(c)
	if !ok {
		return noVisitor(c)
	}
	reg := h.registry(v)

	reg.Clear()
	return jsonSuccess(c, fiber.Map{"message": "pins cleared"})
}

func (h *PinHandler) registry(v models.Visitor) *pins.Registry {
	return h.spaces.Get(v.TabID).Pins
}

func pinError(c fiber.Ctx, err error) error {
	if errors.Is(err, pins.ErrPinNotFound) {
		return jsonError(c, fiber.StatusNotFound, "pin not found")
	}
	return jsonError(c, fiber.StatusInternalServerError, "pin update failed")
}

func selectionCategory(category string) string {
	if category == "" {
		return models.CategoryScout
	}
	return category
}
