// Package ai forwards prompts to hosted large-language-model providers and
// returns plain text.
package ai

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"edunex/internal/config"
	"edunex/internal/models"
)

// Client performs one completion against a single provider.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Ping(ctx context.Context) error
}

// Observer is told about every upstream call, successful or not.
type Observer func(provider models.Provider, elapsed time.Duration, err error)

// Options configures a Gateway.
type Options struct {
	Institution string
	Focus       []string
	Logger      *zap.Logger
	Observer    Observer
}

// Gateway rewrites prompts with institution context and dispatches them to
// the registered provider clients.
type Gateway struct {
	mu       sync.RWMutex
	clients  map[models.Provider]Client
	limiters map[models.Provider]*rate.Limiter
	gemini   *geminiClient

	institution string
	focus       []string
	logger      *zap.Logger
	observer    Observer
}

// NewGateway creates a Gateway with no providers registered.
func NewGateway(opts Options) *Gateway {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		clients:     make(map[models.Provider]Client),
		limiters:    make(map[models.Provider]*rate.Limiter),
		institution: opts.Institution,
		focus:       opts.Focus,
		logger:      logger,
		observer:    opts.Observer,
	}
}

// New builds a Gateway from the process and assistant configuration.
// A provider with a remote endpoint is reached through it; otherwise the
// provider's API is called directly when its API key is set. Providers with
// neither are left unregistered.
func New(cfg *config.Config, acfg *config.AssistantConfig, logger *zap.Logger, observer Observer) *Gateway {
	g := NewGateway(Options{
		Institution: acfg.InstitutionName,
		Focus:       acfg.Focus(),
		Logger:      logger,
		Observer:    observer,
	})

	httpClient := &http.Client{Timeout: 60 * time.Second}
	system := SystemInstruction(acfg.InstitutionName, acfg.InstitutionURL)
	endpoints := acfg.ProviderEndpoints()

	for _, p := range models.KnownProviders {
		pc := acfg.Provider(p)
		key := cfg.APIKey(string(p))

		if p == models.ProviderGemini && key != "" {
			g.gemini = &geminiClient{
				apiKey:      key,
				model:       pc.Model,
				baseURL:     strings.TrimRight(orDefault(pc.BaseURL, DefaultGeminiBaseURL), "/"),
				temperature: pc.Temperature,
				maxTokens:   pc.MaxTokens,
				system:      system,
				client:      httpClient,
			}
		}

		var c Client
		switch {
		case endpoints[p] != "":
			c = &endpointClient{provider: p, url: endpoints[p], client: httpClient}
		case key == "":
			continue
		case p == models.ProviderGemini:
			c = g.gemini
		case p == models.ProviderGroq:
			c = newOpenAICompatClient(p, key, orDefault(pc.BaseURL, DefaultGroqBaseURL), pc.Model, pc.Temperature, pc.MaxTokens, "You are a helpful assistant.", httpClient)
		case p == models.ProviderDeepSeek:
			c = newOpenAICompatClient(p, key, orDefault(pc.BaseURL, DefaultDeepSeekBaseURL), pc.Model, pc.Temperature, pc.MaxTokens, system, httpClient)
		}
		g.Register(p, c, pc.RequestsPerSecond, pc.Burst)
		g.logger.Info("AI provider registered",
			zap.String("provider", string(p)),
			zap.Bool("remote", endpoints[p] != ""),
			zap.String("model", pc.Model))
	}
	return g
}

// Register adds or replaces the client for p. A positive rps throttles
// outbound calls to that provider.
func (g *Gateway) Register(p models.Provider, c Client, rps float64, burst int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.clients[p] = c
	if rps > 0 {
		if burst < 1 {
			burst = 1
		}
		g.limiters[p] = rate.NewLimiter(rate.Limit(rps), burst)
	} else {
		delete(g.limiters, p)
	}
}

// Configured returns the registered providers in display order.
func (g *Gateway) Configured() []models.Provider {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []models.Provider
	for _, p := range models.KnownProviders {
		if _, ok := g.clients[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Reply injects institution context into prompt and sends it to provider.
func (g *Gateway) Reply(ctx context.Context, prompt string, provider models.Provider) (string, error) {
	return g.Complete(ctx, InjectContext(prompt, g.institution, g.focus), provider)
}

// Complete sends prompt to provider unchanged.
func (g *Gateway) Complete(ctx context.Context, prompt string, provider models.Provider) (string, error) {
	c, limiter, err := g.lookup(provider)
	if err != nil {
		return "", err
	}

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return "", &ProviderError{Provider: provider, Message: err.Error(), Err: err}
		}
	}

	start := time.Now()
	text, err := c.Complete(ctx, prompt)
	elapsed := time.Since(start)

	if g.observer != nil {
		g.observer(provider, elapsed, err)
	}
	if err != nil {
		g.logger.Warn("AI provider call failed",
			zap.String("provider", string(provider)),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return "", err
	}
	return text, nil
}

// Ping checks that provider is reachable with the configured credentials.
func (g *Gateway) Ping(ctx context.Context, provider models.Provider) error {
	c, _, err := g.lookup(provider)
	if err != nil {
		return err
	}
	return c.Ping(ctx)
}

// GeminiModels lists the Gemini models available to the configured key.
func (g *Gateway) GeminiModels(ctx context.Context) (*GeminiModels, error) {
	g.mu.RLock()
	gc := g.gemini
	g.mu.RUnlock()

	if gc == nil {
		return nil, &NotConfiguredError{Provider: models.ProviderGemini}
	}
	return gc.ListModels(ctx)
}

func (g *Gateway) lookup(provider models.Provider) (Client, *rate.Limiter, error) {
	if _, ok := models.ParseProvider(string(provider)); !ok {
		return nil, nil, ErrUnknownProvider
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	c, ok := g.clients[provider]
	if !ok || c == nil {
		return nil, nil, &NotConfiguredError{Provider: provider}
	}
	return c, g.limiters[provider], nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
