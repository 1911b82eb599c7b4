package api

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"

	"days/internal/middleware"
	"days/internal/models"
	"days/internal/validation"
)

// Recorder counts interactions.
type Recorder interface {
	Record(ctx context.Context, v models.Visitor, place models.PlaceKey, kind models.InteractionKind) models.Result[models.Receipt]
	RecordAsync(v models.Visitor, place models.PlaceKey, kind models.InteractionKind)
}

// Keyer maps place text to the key interactions are counted under.
type Keyer interface {
	Key(text string) models.PlaceKey
}

// InteractionHandler accepts interaction events via JSON API.
type InteractionHandler struct {
	recorder Recorder
	keys     Keyer
}

// NewInteractionHandler creates a new interaction handler.
func NewInteractionHandler(rec Recorder, keys Keyer) *InteractionHandler {
	return &InteractionHandler{recorder: rec, keys: keys}
}

// Create records a view, chat or save for a place. Counting happens in the
// background; the response only confirms the event was accepted.
func (h *InteractionHandler) Create(c fiber.Ctx) error {
	v, ok := middleware.VisitorFrom(c)
	if !ok {
		return noVisitor(c)
	}

	var body models.InteractionRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if !body.Kind.Valid() {
		return jsonError(c, fiber.StatusBadRequest, "kind must be view, chat or save")
	}
	if valid, msg := validation.ValidatePlaceText(body.Place); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	place := h.keys.Key(body.Place)
	if models.IsPlaceholder(place.String()) {
		return jsonError(c, fiber.StatusUnprocessableEntity, "place is not resolved yet")
	}

	h.recorder.RecordAsync(v, place, body.Kind)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status": "ok",
		"data":   models.InteractionResponse{PlaceKey: place, Kind: body.Kind},
	})
}
