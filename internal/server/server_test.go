package server

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/encryptcookie"
	"github.com/gofiber/fiber/v3/middleware/session"

	"edunex/internal/config"
)

// TestEncryptCookieSessionRoundTrip replays encrypted session cookies
// across requests the way the chat widget does between turns.
func TestEncryptCookieSessionRoundTrip(t *testing.T) {
	encryptionKey := deriveEncryptionKey("test-secret-that-is-long-enough-for-production")

	app := fiber.New()

	// Same order as New: encryptcookie, then session.
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: encryptionKey,
	}))
	sessionMiddleware, _ := session.NewWithStore(session.Config{
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	app.Use(sessionMiddleware)

	app.Post("/turn", func(c fiber.Ctx) error {
		sess := session.FromContext(c)
		if sess == nil {
			return c.Status(500).SendString("no session")
		}
		turns, _ := sess.Get("turns").(string)
		turns += "x"
		sess.Set("turns", turns)
		return c.SendString(turns)
	})

	var cookies []*http.Cookie
	for i, want := range []string{"x", "xx", "xxx"} {
		req, _ := http.NewRequest(http.MethodPost, "/turn", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request %d failed (possible encryptcookie panic): %v", i+1, err)
		}
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != 200 {
			t.Fatalf("request %d: expected 200, got %d: %s", i+1, resp.StatusCode, body)
		}
		if string(body) != want {
			t.Errorf("request %d: session value = %q, want %q", i+1, body, want)
		}
		if next := resp.Cookies(); len(next) > 0 {
			cookies = next
		}
	}
}

func TestDeriveEncryptionKey(t *testing.T) {
	a := deriveEncryptionKey("secret-one")
	b := deriveEncryptionKey("secret-two")

	if a == b {
		t.Error("different secrets derived the same key")
	}
	if a != deriveEncryptionKey("secret-one") {
		t.Error("key derivation is not deterministic")
	}
	// encryptcookie needs a base64 32-byte key.
	if len(a) != 44 {
		t.Errorf("len(key) = %d, want 44", len(a))
	}
}

func TestErrorHandler_APIGetsJSON(t *testing.T) {
	cfg := &config.Config{SiteTitle: "EduNex"}
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler(cfg)})
	app.Get("/api/thing", func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	req, _ := http.NewRequest(http.MethodGet, "/api/thing", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != fiber.StatusTeapot {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusTeapot)
	}
	if want := `{"error":"short and stout","status":"error"}`; string(body) != want {
		t.Errorf("body = %s, want %s", body, want)
	}
}

func TestBuildTLSConfig(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "ca.pem")
	if err := os.WriteFile(garbage, []byte("not a certificate"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		caFile     string
		wantErr    bool
		wantClient bool
	}{
		{"plain TLS", "", false, false},
		{"missing CA file", filepath.Join(dir, "missing.pem"), true, false},
		{"unparseable CA", garbage, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc, err := buildTLSConfig(&config.Config{TLSCAFile: tt.caFile})
			if (err != nil) != tt.wantErr {
				t.Fatalf("buildTLSConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && (tc.ClientCAs != nil) != tt.wantClient {
				t.Errorf("ClientCAs set = %v, want %v", tc.ClientCAs != nil, tt.wantClient)
			}
		})
	}
}
