package handlers

import (
	"github.com/gofiber/fiber/v3"

	"edunex/internal/config"
	"edunex/internal/models"
)

// ProviderLister reports which AI providers can answer.
type ProviderLister interface {
	Configured() []models.Provider
}

// ChatHandler serves the chat widget page.
type ChatHandler struct {
	cfg       *config.Config
	providers ProviderLister
}

// NewChatHandler creates a new chat page handler.
func NewChatHandler(cfg *config.Config, providers ProviderLister) *ChatHandler {
	return &ChatHandler{cfg: cfg, providers: providers}
}

// Index renders the chat page with the provider picker.
func (h *ChatHandler) Index(c fiber.Ctx) error {
	return c.Render("index", MergeBranding(fiber.Map{
		"Providers":       h.providers.Configured(),
		"DefaultProvider": h.cfg.DefaultProvider,
	}, h.cfg))
}
