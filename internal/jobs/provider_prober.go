package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"edunex/internal/metrics"
	"edunex/internal/models"
)

// Pinger is the part of the AI gateway the prober needs.
type Pinger interface {
	Configured() []models.Provider
	Ping(ctx context.Context, provider models.Provider) error
}

// ProviderProber periodically checks that every configured AI provider is
// reachable and keeps the latest result per provider.
type ProviderProber struct {
	gateway  Pinger
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
	now      func() time.Time

	mu      sync.RWMutex
	results map[models.Provider]models.ProviderHealth
}

// NewProviderProber creates a new provider prober.
func NewProviderProber(gateway Pinger, interval time.Duration, logger *zap.Logger) *ProviderProber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProviderProber{
		gateway:  gateway,
		interval: interval,
		timeout:  10 * time.Second,
		logger:   logger,
		now:      time.Now,
		results:  make(map[models.Provider]models.ProviderHealth),
	}
}

// Start begins the background probe loop.
func (p *ProviderProber) Start(ctx context.Context) {
	p.logger.Info("provider prober started", zap.Duration("interval", p.interval))

	// Run immediately on start
	p.CheckAll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("provider prober stopped")
			return
		case <-ticker.C:
			p.CheckAll(ctx)
		}
	}
}

// CheckAll probes every configured provider once.
func (p *ProviderProber) CheckAll(ctx context.Context) {
	for _, provider := range p.gateway.Configured() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		status, errMsg := p.check(ctx, provider)
		checkedAt := p.now()

		p.mu.Lock()
		p.results[provider] = models.ProviderHealth{
			Provider:  provider,
			Status:    status,
			CheckedAt: &checkedAt,
			Error:     errMsg,
		}
		p.mu.Unlock()

		metrics.SetProviderHealth(provider, status)
		if status != models.HealthHealthy {
			p.logger.Warn("provider probe failed",
				zap.String("provider", string(provider)),
				zap.String("status", status),
				zap.String("error", errMsg))
		}
	}
}

func (p *ProviderProber) check(ctx context.Context, provider models.Provider) (string, string) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.gateway.Ping(ctx, provider); err != nil {
		if ctx.Err() != nil {
			// No answer at all: reachability is unknown rather than broken.
			return models.HealthUnknown, err.Error()
		}
		return models.HealthUnhealthy, err.Error()
	}
	return models.HealthHealthy, ""
}

// Snapshot returns the latest health of every known provider, in display
// order. Providers never probed are reported as unknown.
func (p *ProviderProber) Snapshot() []models.ProviderHealth {
	configured := map[models.Provider]bool{}
	for _, provider := range p.gateway.Configured() {
		configured[provider] = true
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]models.ProviderHealth, 0, len(models.KnownProviders))
	for _, provider := range models.KnownProviders {
		if h, ok := p.results[provider]; ok && configured[provider] {
			out = append(out, h)
			continue
		}
		h := models.ProviderHealth{Provider: provider, Status: models.HealthUnknown}
		if !configured[provider] {
			h.Error = "not configured"
		}
		out = append(out, h)
	}
	return out
}
