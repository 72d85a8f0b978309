package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/storage/memory/v2"

	"edunex/internal/ai"
	"edunex/internal/models"
	"edunex/internal/usage"
)

type fakeCompleter struct {
	text   string
	err    error
	models *ai.GeminiModels
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string, p models.Provider) (string, error) {
	return f.text, f.err
}

func (f *fakeCompleter) GeminiModels(ctx context.Context) (*ai.GeminiModels, error) {
	return f.models, f.err
}

type fakeHealth []models.ProviderHealth

func (f fakeHealth) Snapshot() []models.ProviderHealth { return f }

// countingClient is a provider client that records how often it was called.
type countingClient struct {
	text  string
	err   error
	calls int
}

func (c *countingClient) Complete(ctx context.Context, prompt string) (string, error) {
	c.calls++
	return c.text, c.err
}

func (c *countingClient) Ping(ctx context.Context) error { return nil }

func newTestTracker(limits models.ProviderLimits) *usage.Tracker {
	return usage.NewTracker(memory.New(), limits, time.UTC, nil)
}

func newAIApp(gateway Completer, tracker *usage.Tracker) *fiber.App {
	app := newSessionApp()
	app.Post("/api/ai/:provider", NewAIHandler(gateway, tracker, nil).Complete)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (int, map[string]any) {
	t.Helper()
	raw, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test(POST %s) error = %v", path, err)
	}

	var out map[string]any
	data, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error = %v, body: %s", err, data)
	}
	return resp.StatusCode, out
}

func TestAIHandler_Complete(t *testing.T) {
	tests := []struct {
		name       string
		provider   string
		body       any
		completer  *fakeCompleter
		wantStatus int
		wantText   string
		wantError  string
	}{
		{
			name:       "success",
			provider:   "groq",
			body:       fiber.Map{"prompt": "hello"},
			completer:  &fakeCompleter{text: "hi there"},
			wantStatus: fiber.StatusOK,
			wantText:   "hi there",
		},
		{
			name:       "upstream status is passed through",
			provider:   "gemini",
			body:       fiber.Map{"prompt": "hello"},
			completer:  &fakeCompleter{err: &ai.ProviderError{Provider: models.ProviderGemini, Status: 429, Message: "quota"}},
			wantStatus: 429,
			wantError:  "quota",
		},
		{
			name:       "missing key",
			provider:   "deepseek",
			body:       fiber.Map{"prompt": "hello"},
			completer:  &fakeCompleter{err: &ai.NotConfiguredError{Provider: models.ProviderDeepSeek}},
			wantStatus: fiber.StatusInternalServerError,
			wantError:  "DEEPSEEK_API_KEY not configured",
		},
		{
			name:       "safety block",
			provider:   "gemini",
			body:       fiber.Map{"prompt": "hello"},
			completer:  &fakeCompleter{err: ai.ErrSafetyBlocked},
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "unknown provider",
			provider:   "openai",
			body:       fiber.Map{"prompt": "hello"},
			completer:  &fakeCompleter{},
			wantStatus: fiber.StatusNotFound,
			wantError:  "unknown provider",
		},
		{
			name:       "empty prompt",
			provider:   "groq",
			body:       fiber.Map{"prompt": "  "},
			completer:  &fakeCompleter{},
			wantStatus: fiber.StatusBadRequest,
			wantError:  "prompt is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newAIApp(tt.completer, newTestTracker(models.ProviderLimits{Total: 60}))

			status, body := postJSON(t, app, "/api/ai/"+tt.provider, tt.body)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if tt.wantText != "" {
				if body["text"] != tt.wantText || body["provider"] != tt.provider {
					t.Errorf("body = %v, want text %q from %s", body, tt.wantText, tt.provider)
				}
			}
			if tt.wantError != "" && body["error"] != tt.wantError {
				t.Errorf("error = %v, want %q", body["error"], tt.wantError)
			}
		})
	}
}

func TestAIHandler_CompleteEnforcesQuota(t *testing.T) {
	gateway := ai.NewGateway(ai.Options{})
	upstream := &countingClient{text: "hi"}
	gateway.Register(models.ProviderGemini, upstream, 0, 0)

	tracker := newTestTracker(models.ProviderLimits{
		PerProvider: map[models.Provider]int{models.ProviderGemini: 1},
		Total:       1,
	})
	cl := &client{app: newAIApp(gateway, tracker)}

	status, body := cl.do(t, http.MethodPost, "/api/ai/gemini", fiber.Map{"prompt": "hello"})
	if status != fiber.StatusOK || body["text"] != "hi" {
		t.Fatalf("first call = %d %v, want 200 with text", status, body)
	}

	want := "Daily limit reached for gemini. Try another provider or come back tomorrow."
	for i := 2; i <= 5; i++ {
		status, body := cl.do(t, http.MethodPost, "/api/ai/gemini", fiber.Map{"prompt": "hello"})
		if status != fiber.StatusTooManyRequests {
			t.Errorf("call %d status = %d, want %d", i, status, fiber.StatusTooManyRequests)
		}
		if body["error"] != want {
			t.Errorf("call %d error = %v, want %q", i, body["error"], want)
		}
	}

	if upstream.calls != 1 {
		t.Errorf("upstream calls = %d, want 1", upstream.calls)
	}
}

func TestAIHandler_FailedCallIsNotCharged(t *testing.T) {
	gateway := ai.NewGateway(ai.Options{})
	upstream := &countingClient{err: &ai.ProviderError{Provider: models.ProviderGroq, Status: 503, Message: "overloaded"}}
	gateway.Register(models.ProviderGroq, upstream, 0, 0)

	tracker := newTestTracker(models.ProviderLimits{
		PerProvider: map[models.Provider]int{models.ProviderGroq: 1},
		Total:       60,
	})
	cl := &client{app: newAIApp(gateway, tracker)}

	if status, _ := cl.do(t, http.MethodPost, "/api/ai/groq", fiber.Map{"prompt": "hello"}); status != 503 {
		t.Fatalf("failing call status = %d, want 503", status)
	}

	upstream.err = nil
	upstream.text = "back"
	if status, _ := cl.do(t, http.MethodPost, "/api/ai/groq", fiber.Map{"prompt": "hello"}); status != fiber.StatusOK {
		t.Errorf("retry status = %d, want %d", status, fiber.StatusOK)
	}
	if status, _ := cl.do(t, http.MethodPost, "/api/ai/groq", fiber.Map{"prompt": "hello"}); status != fiber.StatusTooManyRequests {
		t.Errorf("third call status = %d, want %d", status, fiber.StatusTooManyRequests)
	}
}

func TestAIHandler_QuotaScopedToSession(t *testing.T) {
	tracker := newTestTracker(models.ProviderLimits{
		PerProvider: map[models.Provider]int{models.ProviderGroq: 1},
		Total:       60,
	})
	app := newAIApp(&fakeCompleter{text: "hi"}, tracker)

	// A client that drops the cookie starts a new session and a new quota;
	// the per-IP rate limiter is what bounds it in production.
	browser := &client{app: app}
	if status, _ := browser.do(t, http.MethodPost, "/api/ai/groq", fiber.Map{"prompt": "hello"}); status != fiber.StatusOK {
		t.Fatalf("browser first call status = %d, want %d", status, fiber.StatusOK)
	}
	if status, _ := browser.do(t, http.MethodPost, "/api/ai/groq", fiber.Map{"prompt": "hello"}); status != fiber.StatusTooManyRequests {
		t.Errorf("browser second call status = %d, want %d", status, fiber.StatusTooManyRequests)
	}

	other := &client{app: app}
	if status, _ := other.do(t, http.MethodPost, "/api/ai/groq", fiber.Map{"prompt": "hello"}); status != fiber.StatusOK {
		t.Errorf("new session status = %d, want %d", status, fiber.StatusOK)
	}
}

func TestAIHandler_GeminiModels(t *testing.T) {
	h := NewAIHandler(&fakeCompleter{models: &ai.GeminiModels{
		APIVersionTried: "v1",
		Models:          []ai.GeminiModel{{Name: "models/gemini-1.5-flash"}},
	}}, newTestTracker(models.ProviderLimits{Total: 60}), nil)
	app := fiber.New()
	app.Get("/api/ai/gemini/models", h.GeminiModels)

	req, _ := http.NewRequest(http.MethodGet, "/api/ai/gemini/models", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}

	var out ai.GeminiModels
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if out.APIVersionTried != "v1" || len(out.Models) != 1 {
		t.Errorf("GeminiModels = %+v, want one model from v1", out)
	}
}

func TestAIHandler_Health(t *testing.T) {
	tests := []struct {
		name   string
		health HealthSource
		want   string
	}{
		{"prober disabled", nil, models.HealthUnknown},
		{"prober snapshot", fakeHealth{{Provider: models.ProviderGroq, Status: models.HealthHealthy}}, models.HealthHealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/api/ai/health", NewAIHandler(&fakeCompleter{}, nil, tt.health).Health)

			req, _ := http.NewRequest(http.MethodGet, "/api/ai/health", nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}

			var out struct {
				Data []models.ProviderHealth `json:"data"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if len(out.Data) == 0 {
				t.Fatal("Health() returned no providers")
			}
			if out.Data[0].Status != tt.want {
				t.Errorf("Status = %q, want %q", out.Data[0].Status, tt.want)
			}
		})
	}
}
