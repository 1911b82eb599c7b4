package api

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"days/internal/middleware"
)

// TabCloser discards a tab's state.
type TabCloser interface {
	Close(ctx context.Context, tabID string)
}

// SessionHandler ends tabs explicitly, ahead of the idle sweep.
type SessionHandler struct {
	spaces TabCloser
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(spaces TabCloser) *SessionHandler {
	return &SessionHandler{spaces: spaces}
}

// End drops the caller's pins, gallery and view receipts. The next request
// starts a fresh tab.
func (h *SessionHandler) End(c fiber.Ctx) error {
	v, ok := middleware.VisitorFrom(c)
	if !ok {
		return noVisitor(c)
	}

	h.spaces.Close(c.Context(), v.TabID)
	middleware.ClearTab(c)
	return jsonSuccess(c, fiber.Map{"message": "tab closed"})
}
