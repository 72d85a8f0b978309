package api

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v3"

	"edunex/internal/chat"
	"edunex/internal/config"
	"edunex/internal/models"
)

// ResolveHandler exposes the resolver without the confirmation flow.
type ResolveHandler struct {
	svc *chat.Service
	cfg *config.Config
}

// NewResolveHandler creates a new API resolve handler.
func NewResolveHandler(svc *chat.Service, cfg *config.Config) *ResolveHandler {
	return &ResolveHandler{svc: svc, cfg: cfg}
}

// Resolve handles POST /api/resolve {query, provider} and returns the raw
// resolution. AI answers are charged to the caller's session.
func (h *ResolveHandler) Resolve(c fiber.Ctx) error {
	var body struct {
		Query    string `json:"query"`
		Provider string `json:"provider"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	query := strings.TrimSpace(body.Query)
	if query == "" {
		return jsonError(c, fiber.StatusBadRequest, "query is required")
	}

	provider, ok := pickProvider(body.Provider, h.cfg.DefaultProvider)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "unknown provider")
	}

	conv := loadConversation(c)
	res := h.svc.Resolve(c.Context(), conv.ID, query, provider)
	saveConversation(c, conv)

	return jsonSuccess(c, models.ResolveResponse{
		Query:      query,
		Provider:   provider,
		Resolution: res,
	})
}
