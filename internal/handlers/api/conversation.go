package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/google/uuid"

	"edunex/internal/models"
)

// sessionConversation is the session key holding the JSON-encoded chat
// confirmation state.
const sessionConversation = "conversation"

// loadConversation returns the conversation bound to the caller's session,
// starting a new one when the session has none or it cannot be decoded.
func loadConversation(c fiber.Ctx) *models.Conversation {
	conv := &models.Conversation{}
	if sess := session.FromContext(c); sess != nil {
		if raw, ok := sess.Get(sessionConversation).(string); ok && raw != "" {
			if err := json.Unmarshal([]byte(raw), conv); err == nil && conv.ID != "" {
				return conv
			}
			conv = &models.Conversation{}
		}
	}
	conv.ID = uuid.NewString()
	return conv
}

// saveConversation writes conv back to the session.
func saveConversation(c fiber.Ctx, conv *models.Conversation) {
	sess := session.FromContext(c)
	if sess == nil {
		return
	}
	raw, err := json.Marshal(conv)
	if err != nil {
		return
	}
	sess.Set(sessionConversation, string(raw))
}
