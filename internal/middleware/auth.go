package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"edunex/internal/models"
)

// Session keys
const (
	SessionAdminID       = "admin_id"
	SessionRedirectAfter = "redirect_after_login"
)

// AdminLoader loads the admin behind a session.
type AdminLoader interface {
	GetAdminByID(ctx context.Context, id int64) (*models.Admin, error)
}

// AuthMiddleware handles admin authentication via sessions.
type AuthMiddleware struct {
	db AdminLoader
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(database AdminLoader) *AuthMiddleware {
	return &AuthMiddleware{db: database}
}

// RequireAdmin ensures an admin is signed in, redirecting to /admin/login if not.
func (m *AuthMiddleware) RequireAdmin(c fiber.Ctx) error {
	admin := m.load(c)
	if admin == nil {
		if sess := session.FromContext(c); sess != nil {
			sess.Set(SessionRedirectAfter, c.OriginalURL())
		}
		return c.Redirect().To("/admin/login")
	}
	c.Locals("admin", admin)
	return c.Next()
}

// RequireAdminAPI is RequireAdmin for JSON endpoints: it answers 401 instead
// of redirecting.
func (m *AuthMiddleware) RequireAdminAPI(c fiber.Ctx) error {
	admin := m.load(c)
	if admin == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status": "error",
			"error":  "Authentication required",
		})
	}
	c.Locals("admin", admin)
	return c.Next()
}

// RequireRole rejects signed-in admins whose role is not role. It must run
// after RequireAdmin or RequireAdminAPI.
func RequireRole(role string) fiber.Handler {
	return func(c fiber.Ctx) error {
		admin := CurrentAdmin(c)
		if admin == nil || admin.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status": "error",
				"error":  "Insufficient permissions",
			})
		}
		return c.Next()
	}
}

// CurrentAdmin returns the admin loaded by the auth middleware, if any.
func CurrentAdmin(c fiber.Ctx) *models.Admin {
	admin, _ := c.Locals("admin").(*models.Admin)
	return admin
}

func (m *AuthMiddleware) load(c fiber.Ctx) *models.Admin {
	sess := session.FromContext(c)
	if sess == nil {
		return nil
	}

	id, ok := sess.Get(SessionAdminID).(int64)
	if !ok {
		return nil
	}

	admin, err := m.db.GetAdminByID(c.Context(), id)
	if err != nil {
		// Account was removed while signed in.
		sess.Delete(SessionAdminID)
		return nil
	}
	return admin
}
