package api

import (
	"github.com/gofiber/fiber/v3"

	"days/internal/models"
)

// Board exposes the current trending ranking.
type Board interface {
	Current() ([]models.TrendingPlace, bool)
}

// TrendingHandler serves the trending board.
type TrendingHandler struct {
	board Board
}

// NewTrendingHandler creates a new trending handler.
func NewTrendingHandler(board Board) *TrendingHandler {
	return &TrendingHandler{board: board}
}

// List returns the ranked places.
func (h *TrendingHandler) List(c fiber.Ctx) error {
	places, live := h.board.Current()
	if places == nil {
		places = []models.TrendingPlace{}
	}
	return jsonSuccess(c, models.TrendingResponse{Places: places, Live: live})
}
