package api

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"edunex/internal/db"
	"edunex/internal/models"
	"edunex/internal/testutil"
)

type memAdmins struct {
	admins []models.Admin
}

func (m *memAdmins) ListAdmins(ctx context.Context) ([]models.Admin, error) { return m.admins, nil }

func (m *memAdmins) CreateAdmin(ctx context.Context, a *models.Admin) error {
	for _, existing := range m.admins {
		if strings.EqualFold(existing.Email, a.Email) {
			return db.ErrDuplicateAdmin
		}
	}
	a.ID = int64(len(m.admins) + 1)
	m.admins = append(m.admins, *a)
	return nil
}

func (m *memAdmins) UpdateAdminRole(ctx context.Context, id int64, role string) error {
	for i := range m.admins {
		if m.admins[i].ID == id {
			m.admins[i].Role = role
			return nil
		}
	}
	return db.ErrAdminNotFound
}

func (m *memAdmins) DeleteAdmin(ctx context.Context, id int64) error {
	for i := range m.admins {
		if m.admins[i].ID == id {
			m.admins = append(m.admins[:i], m.admins[i+1:]...)
			return nil
		}
	}
	return db.ErrAdminNotFound
}

func newAdminApp(store AdminStore) *fiber.App {
	app := fiber.New()
	app.Use(func(c fiber.Ctx) error {
		c.Locals("admin", &models.Admin{ID: 1, Email: "office@college.edu", Role: models.RoleAdmin})
		return c.Next()
	})

	h := NewAdminHandler(store, zap.NewNop())
	app.Get("/api/admins", h.List)
	app.Post("/api/admins", h.Create)
	app.Put("/api/admins/:id/role", h.UpdateRole)
	app.Delete("/api/admins/:id", h.Delete)
	return app
}

func TestAdminCreate(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{"valid", fiber.Map{"email": "new@college.edu", "password": "longenough"}, fiber.StatusCreated},
		{"duplicate", fiber.Map{"email": "OFFICE@college.edu", "password": "longenough"}, fiber.StatusConflict},
		{"bad email", fiber.Map{"email": "not-an-email", "password": "longenough"}, fiber.StatusBadRequest},
		{"short password", fiber.Map{"email": "new@college.edu", "password": "short"}, fiber.StatusBadRequest},
		{"bad role", fiber.Map{"email": "new@college.edu", "password": "longenough", "role": "root"}, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memAdmins{admins: []models.Admin{{ID: 1, Email: "office@college.edu", Role: models.RoleAdmin}}}
			status, _ := postJSON(t, newAdminApp(store), "/api/admins", tt.body)
			if status != tt.wantStatus {
				t.Errorf("POST /api/admins status = %d, want %d", status, tt.wantStatus)
			}
		})
	}
}

func TestAdminCreate_StoresHashedPassword(t *testing.T) {
	store := &memAdmins{}
	status, body := postJSON(t, newAdminApp(store), "/api/admins", fiber.Map{
		"email":    "editor@college.edu",
		"password": "longenough",
		"role":     models.RoleEditor,
	})
	if status != fiber.StatusCreated {
		t.Fatalf("POST /api/admins status = %d, want %d", status, fiber.StatusCreated)
	}

	data := body["data"].(map[string]any)
	if _, ok := data["password_hash"]; ok {
		t.Error("response exposes password_hash")
	}
	if len(store.admins) != 1 {
		t.Fatalf("stored %d admins, want 1", len(store.admins))
	}
	if store.admins[0].PasswordHash == "" || store.admins[0].PasswordHash == "longenough" {
		t.Errorf("PasswordHash = %q, want a bcrypt hash", store.admins[0].PasswordHash)
	}
	if store.admins[0].Role != models.RoleEditor {
		t.Errorf("Role = %q, want %q", store.admins[0].Role, models.RoleEditor)
	}
}

func TestAdminDelete(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"cannot remove yourself", "/api/admins/1", fiber.StatusBadRequest},
		{"other admin", "/api/admins/2", fiber.StatusOK},
		{"missing", "/api/admins/9", fiber.StatusNotFound},
		{"bad id", "/api/admins/x", fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memAdmins{admins: []models.Admin{
				{ID: 1, Email: "office@college.edu", Role: models.RoleAdmin},
				{ID: 2, Email: "editor@college.edu", Role: models.RoleEditor},
			}}
			req, _ := http.NewRequest(http.MethodDelete, tt.path, nil)
			resp, err := newAdminApp(store).Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("DELETE %s status = %d, want %d", tt.path, resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestAdminHandler_Postgres(t *testing.T) {
	testutil.SkipIfNoDB(t)
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	testutil.CreateTestAdmin(t, database, "office@college.edu", "longenough", models.RoleAdmin)

	app := newAdminApp(database)
	status, _ := postJSON(t, app, "/api/admins", fiber.Map{"email": "Office@College.edu", "password": "longenough"})
	if status != fiber.StatusConflict {
		t.Errorf("duplicate create status = %d, want %d", status, fiber.StatusConflict)
	}

	status, _ = postJSON(t, app, "/api/admins", fiber.Map{"email": "dean@college.edu", "password": "longenough"})
	if status != fiber.StatusCreated {
		t.Errorf("create status = %d, want %d", status, fiber.StatusCreated)
	}

	admins, err := database.ListAdmins(context.Background())
	if err != nil {
		t.Fatalf("ListAdmins() error = %v", err)
	}
	if len(admins) != 2 {
		t.Errorf("ListAdmins() returned %d admins, want 2", len(admins))
	}
}
