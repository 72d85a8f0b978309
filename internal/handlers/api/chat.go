package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"edunex/internal/chat"
	"edunex/internal/config"
)

// ChatHandler runs chat turns for the widget. The confirmation state lives
// in the caller's session.
type ChatHandler struct {
	svc *chat.Service
	cfg *config.Config
}

// NewChatHandler creates a new API chat handler.
func NewChatHandler(svc *chat.Service, cfg *config.Config) *ChatHandler {
	return &ChatHandler{svc: svc, cfg: cfg}
}

// Send handles POST /api/chat {text, provider}.
func (h *ChatHandler) Send(c fiber.Ctx) error {
	var body struct {
		Text     string `json:"text"`
		Provider string `json:"provider"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	provider, ok := pickProvider(body.Provider, h.cfg.DefaultProvider)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "unknown provider")
	}

	conv := loadConversation(c)
	reply, err := h.svc.Send(c.Context(), conv, body.Text, provider)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			return jsonError(c, fiber.StatusBadRequest, "text is required")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to process message")
	}
	saveConversation(c, conv)

	return jsonSuccess(c, reply)
}

// Confirm handles POST /api/chat/confirm {yes, provider}: the button form of
// answering "did you mean".
func (h *ChatHandler) Confirm(c fiber.Ctx) error {
	var body struct {
		Yes      bool   `json:"yes"`
		Provider string `json:"provider"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	provider, ok := pickProvider(body.Provider, h.cfg.DefaultProvider)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "unknown provider")
	}

	conv := loadConversation(c)
	reply, err := h.svc.Confirm(c.Context(), conv, body.Yes, provider)
	if err != nil {
		if errors.Is(err, chat.ErrNotAwaiting) {
			saveConversation(c, conv)
			return jsonError(c, fiber.StatusConflict, "nothing to confirm")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to process confirmation")
	}
	saveConversation(c, conv)

	return jsonSuccess(c, reply)
}

// Reset handles DELETE /api/chat: it drops any pending suggestion.
func (h *ChatHandler) Reset(c fiber.Ctx) error {
	conv := loadConversation(c)
	conv.Clear()
	saveConversation(c, conv)
	return jsonSuccess(c, nil)
}
