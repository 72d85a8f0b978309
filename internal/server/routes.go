package server

import (
	"context"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"edunex/internal/ai"
	"edunex/internal/chat"
	"edunex/internal/db"
	"edunex/internal/handlers"
	"edunex/internal/handlers/api"
	"edunex/internal/jobs"
	"edunex/internal/middleware"
	"edunex/internal/models"
)

// Deps are the components the routes are served by.
type Deps struct {
	DB      *db.DB
	Chat    *chat.Service
	Gateway *ai.Gateway
	Prober  *jobs.ProviderProber // nil when probing is disabled
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, deps Deps) error {
	authMiddleware := middleware.NewAuthMiddleware(deps.DB)

	// Probes and metrics
	probeHandler := handlers.NewProbeHandler(deps.DB)
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Chat widget
	chatPage := handlers.NewChatHandler(s.Cfg, deps.Gateway)
	s.App.Get("/", chatPage.Index)

	chatAPI := api.NewChatHandler(deps.Chat, s.Cfg)
	s.App.Post("/api/chat", chatAPI.Send)
	s.App.Post("/api/chat/confirm", chatAPI.Confirm)
	s.App.Delete("/api/chat", chatAPI.Reset)
	s.App.Post("/api/resolve", api.NewResolveHandler(deps.Chat, s.Cfg).Resolve)
	s.App.Get("/api/usage", api.NewUsageHandler(deps.Chat.Tracker()).Remaining)

	faqAPI := api.NewFAQHandler(deps.DB, s.logger)
	s.App.Post("/api/faq/get", faqAPI.Answer)

	// Provider proxies
	var health api.HealthSource
	if deps.Prober != nil {
		health = deps.Prober
	}
	aiAPI := api.NewAIHandler(deps.Gateway, deps.Chat.Tracker(), health)
	s.App.Get("/api/ai/gemini/models", aiAPI.GeminiModels)
	s.App.Get("/api/ai/health", aiAPI.Health)
	s.App.Post("/api/ai/:provider", aiAPI.Complete)

	// Admin pages
	adminPages := handlers.NewAdminHandler(deps.DB, s.Cfg, s.logger)
	s.App.Get("/admin/login", adminPages.LoginPage)
	s.App.Post("/admin/login", adminPages.Login)
	s.App.Post("/admin/logout", adminPages.Logout)
	s.App.Get("/admin", authMiddleware.RequireAdmin, adminPages.Dashboard)

	if s.Cfg.IsOIDCEnabled() {
		authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, deps.DB, s.logger)
		if err != nil {
			return err
		}
		s.App.Get("/auth/login", authHandler.Login)
		s.App.Get("/auth/callback", authHandler.Callback)
	} else {
		s.logger.Info("OIDC not configured, admins sign in with e-mail and password only")
	}

	// Admin API
	adminAPI := s.App.Group("/api/admin", authMiddleware.RequireAdminAPI)
	adminAPI.Get("/faqs", faqAPI.List)
	adminAPI.Post("/faqs", faqAPI.Create)
	adminAPI.Put("/faqs/:id", faqAPI.Update)
	adminAPI.Delete("/faqs/:id", faqAPI.Delete)

	accountAPI := api.NewAdminHandler(deps.DB, s.logger)
	adminAPI.Get("/admins", middleware.RequireRole(models.RoleAdmin), accountAPI.List)
	adminAPI.Post("/admins", middleware.RequireRole(models.RoleAdmin), accountAPI.Create)
	adminAPI.Put("/admins/:id/role", middleware.RequireRole(models.RoleAdmin), accountAPI.UpdateRole)
	adminAPI.Delete("/admins/:id", middleware.RequireRole(models.RoleAdmin), accountAPI.Delete)

	return nil
}
