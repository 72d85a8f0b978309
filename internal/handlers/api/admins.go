package api

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"edunex/internal/db"
	"edunex/internal/middleware"
	"edunex/internal/models"
	"edunex/internal/validation"
)

// AdminStore is the admins table as seen by the API.
type AdminStore interface {
	ListAdmins(ctx context.Context) ([]models.Admin, error)
	CreateAdmin(ctx context.Context, a *models.Admin) error
	UpdateAdminRole(ctx context.Context, id int64, role string) error
	DeleteAdmin(ctx context.Context, id int64) error
}

// AdminHandler manages admin accounts via JSON API.
type AdminHandler struct {
	db     AdminStore
	logger *zap.Logger
}

// NewAdminHandler creates a new API admin handler.
func NewAdminHandler(database AdminStore, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{db: database, logger: logger}
}

// List returns all admin accounts.
func (h *AdminHandler) List(c fiber.Ctx) error {
	admins, err := h.db.ListAdmins(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch admins")
	}
	return jsonSuccess(c, admins)
}

// Create adds an admin account.
func (h *AdminHandler) Create(c fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	body.Email = strings.TrimSpace(body.Email)
	if valid, msg := validation.ValidateEmail(body.Email); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	if valid, msg := validation.ValidatePassword(body.Password); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	if body.Role == "" {
		body.Role = models.RoleAdmin
	}
	if !models.ValidRole(body.Role) {
		return jsonError(c, fiber.StatusBadRequest, "invalid role")
	}

	hash, err := db.HashPassword(body.Password)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to hash password")
	}

	admin := &models.Admin{Email: body.Email, PasswordHash: hash, Role: body.Role}
	if err := h.db.CreateAdmin(c.Context(), admin); err != nil {
		if errors.Is(err, db.ErrDuplicateAdmin) {
			return jsonError(c, fiber.StatusConflict, err.Error())
		}
		h.logger.Error("failed to create admin", zap.Error(err))
		return jsonError(c, fiber.StatusInternalServerError, "failed to create admin")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
		"data":   admin,
	})
}

// UpdateRole changes the role of another admin.
func (h *AdminHandler) UpdateRole(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid admin id")
	}

	if current := middleware.CurrentAdmin(c); current != nil && current.ID == id {
		return jsonError(c, fiber.StatusBadRequest, "you cannot change your own role")
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if !models.ValidRole(body.Role) {
		return jsonError(c, fiber.StatusBadRequest, "invalid role")
	}

	if err := h.db.UpdateAdminRole(c.Context(), id, body.Role); err != nil {
		if errors.Is(err, db.ErrAdminNotFound) {
			return jsonError(c, fiber.StatusNotFound, "admin not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to update role")
	}

	return jsonSuccess(c, fiber.Map{"id": id, "role": body.Role})
}

// Delete removes another admin account.
func (h *AdminHandler) Delete(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid admin id")
	}

	if current := middleware.CurrentAdmin(c); current != nil && current.ID == id {
		return jsonError(c, fiber.StatusBadRequest, "you cannot remove yourself")
	}

	if err := h.db.DeleteAdmin(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrAdminNotFound) {
			return jsonError(c, fiber.StatusNotFound, "admin not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete admin")
	}

	return jsonSuccess(c, nil)
}
