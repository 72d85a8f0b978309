package api

import (
	"github.com/gofiber/fiber/v3"

	"edunex/internal/models"
	"edunex/internal/usage"
)

// UsageHandler reports the remaining daily AI quota of the caller.
type UsageHandler struct {
	tracker *usage.Tracker
}

// NewUsageHandler creates a new API usage handler.
func NewUsageHandler(tracker *usage.Tracker) *UsageHandler {
	return &UsageHandler{tracker: tracker}
}

// Remaining handles GET /api/usage.
func (h *UsageHandler) Remaining(c fiber.Ctx) error {
	conv := loadConversation(c)
	saveConversation(c, conv)
	return jsonSuccess(c, h.tracker.AllRemaining(conv.ID, models.KnownProviders))
}
