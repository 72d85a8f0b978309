package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"go.uber.org/zap"

	"edunex/internal/config"
	"edunex/internal/db"
	"edunex/internal/middleware"
	"edunex/internal/models"
)

// AdminStore is the subset of the database the admin pages use.
type AdminStore interface {
	Authenticate(ctx context.Context, email, password string) (*models.Admin, error)
	CountFAQs(ctx context.Context) (int64, error)
	CountAdmins(ctx context.Context) (int64, error)
}

// AdminHandler renders the admin login form and dashboard.
type AdminHandler struct {
	db     AdminStore
	cfg    *config.Config
	logger *zap.Logger
}

// NewAdminHandler creates a new admin page handler.
func NewAdminHandler(database AdminStore, cfg *config.Config, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{db: database, cfg: cfg, logger: logger}
}

// LoginPage renders the e-mail/password form.
func (h *AdminHandler) LoginPage(c fiber.Ctx) error {
	return c.Render("admin/login", MergeBranding(fiber.Map{
		"OIDCEnabled": h.cfg.IsOIDCEnabled(),
	}, h.cfg))
}

// Login checks the submitted credentials and starts an admin session.
func (h *AdminHandler) Login(c fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	admin, err := h.db.Authenticate(c.Context(), email, password)
	if err != nil {
		if !errors.Is(err, db.ErrInvalidCredentials) {
			h.logger.Error("admin login failed", zap.Error(err))
		}
		return c.Status(fiber.StatusUnauthorized).Render("admin/login", MergeBranding(fiber.Map{
			"Error":       "Invalid email or password.",
			"Email":       email,
			"OIDCEnabled": h.cfg.IsOIDCEnabled(),
		}, h.cfg))
	}

	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session not available")
	}
	sess.Set(middleware.SessionAdminID, admin.ID)

	h.logger.Info("admin signed in", zap.String("email", admin.Email))
	return c.Redirect().To(popRedirect(sess, "/admin"))
}

// Logout clears the admin session.
func (h *AdminHandler) Logout(c fiber.Ctx) error {
	if sess := session.FromContext(c); sess != nil {
		sess.Delete(middleware.SessionAdminID)
	}
	return c.Redirect().To("/admin/login")
}

// Dashboard renders the FAQ and admin management page.
func (h *AdminHandler) Dashboard(c fiber.Ctx) error {
	admin := middleware.CurrentAdmin(c)

	var stats models.DashboardStats
	var err error
	if stats.FAQCount, err = h.db.CountFAQs(c.Context()); err != nil {
		return err
	}
	if stats.AdminCount, err = h.db.CountAdmins(c.Context()); err != nil {
		return err
	}

	return c.Render("admin/dashboard", MergeBranding(fiber.Map{
		"Admin": admin,
		"Stats": stats,
	}, h.cfg))
}
