package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"days/internal/models"
	"days/internal/search"
	"days/internal/validation"
)

// SearchHandler resolves free-text place queries.
type SearchHandler struct {
	places PlaceResolver
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(places PlaceResolver) *SearchHandler {
	return &SearchHandler{places: places}
}

// Search resolves q to a place, a concept or nothing. Unknown places are a
// normal not_found resolution, not an error.
func (h *SearchHandler) Search(c fiber.Ctx) error {
	query := c.Query("q", "")
	if valid, msg := validation.ValidatePlaceText(query); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	res, err := h.places.Resolve(c.Context(), models.RawLocation(query))
	if errors.Is(err, search.ErrEmptyQuery) {
		return jsonError(c, fiber.StatusBadRequest, "place is required")
	}
	if err != nil {
		return jsonError(c, fiber.StatusBadGateway, "place lookup failed")
	}
	return jsonSuccess(c, res)
}
