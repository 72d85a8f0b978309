package api

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v3"

	"edunex/internal/ai"
	"edunex/internal/models"
	"edunex/internal/usage"
)

// Completer is the AI Gateway as seen by the proxy endpoints.
type Completer interface {
	Complete(ctx context.Context, prompt string, provider models.Provider) (string, error)
	GeminiModels(ctx context.Context) (*ai.GeminiModels, error)
}

// HealthSource reports the last provider probe results.
type HealthSource interface {
	Snapshot() []models.ProviderHealth
}

// AIHandler serves the provider proxy endpoints. Their bodies are the bare
// {text, provider} / {error} contract rather than the API envelope.
type AIHandler struct {
	gateway Completer
	tracker *usage.Tracker
	health  HealthSource
}

// NewAIHandler creates a new AI proxy handler. health may be nil when the
// prober is disabled.
func NewAIHandler(gateway Completer, tracker *usage.Tracker, health HealthSource) *AIHandler {
	return &AIHandler{gateway: gateway, tracker: tracker, health: health}
}

// Complete handles POST /api/ai/:provider {prompt}. Calls count against the
// caller's session quota, the same one the chat endpoints draw from.
func (h *AIHandler) Complete(c fiber.Ctx) error {
	provider, ok := models.ParseProvider(c.Params("provider"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown provider"})
	}

	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Prompt) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "prompt is required"})
	}

	conv := loadConversation(c)
	saveConversation(c, conv)
	if err := h.tracker.Check(conv.ID, provider); err != nil {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": err.Error()})
	}

	text, err := h.gateway.Complete(c.Context(), body.Prompt, provider)
	if err != nil {
		return c.Status(ai.StatusCode(err)).JSON(fiber.Map{"error": ai.Message(err)})
	}
	h.tracker.Increment(conv.ID, provider)

	return c.JSON(models.CompletionResponse{Text: text, Provider: provider})
}

// GeminiModels handles GET /api/ai/gemini/models.
func (h *AIHandler) GeminiModels(c fiber.Ctx) error {
	list, err := h.gateway.GeminiModels(c.Context())
	if err != nil {
		return c.Status(ai.StatusCode(err)).JSON(fiber.Map{"error": ai.Message(err)})
	}
	return c.JSON(list)
}

// Health handles GET /api/ai/health.
func (h *AIHandler) Health(c fiber.Ctx) error {
	if h.health == nil {
		out := make([]models.ProviderHealth, 0, len(models.KnownProviders))
		for _, p := range models.KnownProviders {
			out = append(out, models.ProviderHealth{Provider: p, Status: models.HealthUnknown})
		}
		return jsonSuccess(c, out)
	}
	return jsonSuccess(c, h.health.Snapshot())
}
