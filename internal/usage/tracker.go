// Package usage keeps per-day, per-provider AI call counters and answers
// whether a provider may still be used today.
package usage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"edunex/internal/models"
)

// Store is the key/value capability the tracker persists through. It is the
// subset of fiber.Storage the tracker needs, so the storage shared with
// sessions and the rate limiter can be passed in directly. Get returns nil
// for a missing key.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
}

// KeyPrefix prefixes every stored usage record.
const KeyPrefix = "edunex_usage_v2"

// recordTTL bounds how long a stale record lingers in the store.
const recordTTL = 48 * time.Hour

// ErrQuotaExceeded is matched by QuotaError.
var ErrQuotaExceeded = errors.New("daily quota exceeded")

// QuotaError is returned when a provider has no calls left today.
type QuotaError struct {
	Provider models.Provider
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("Daily limit reached for %s. Try another provider or come back tomorrow.", e.Provider)
}

func (e *QuotaError) Is(target error) bool { return target == ErrQuotaExceeded }

// Tracker counts AI calls per scope (one chat session) and calendar day.
// The day rolls over lazily: a record dated before today reads as zero.
type Tracker struct {
	store  Store
	limits models.ProviderLimits
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewTracker creates a Tracker. loc decides where the calendar day starts.
func NewTracker(store Store, limits models.ProviderLimits, loc *time.Location, logger *zap.Logger) *Tracker {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{store: store, limits: limits, loc: loc, now: time.Now, logger: logger}
}

// WithClock replaces the tracker's clock.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// Limits returns the configured quotas.
func (t *Tracker) Limits() models.ProviderLimits {
	return t.limits
}

func (t *Tracker) today() string {
	return t.now().In(t.loc).Format("2006-01-02")
}

func key(scope string) string {
	if scope == "" {
		return KeyPrefix
	}
	return KeyPrefix + ":" + scope
}

// State returns today's counters for scope. Missing, unreadable or stale
// records yield a zeroed state.
func (t *Tracker) State(scope string) models.UsageState {
	today := t.today()
	fresh := models.NewUsageState(today)

	raw, err := t.store.Get(key(scope))
	if err != nil {
		t.logger.Warn("failed to read usage", zap.String("scope", scope), zap.Error(err))
		return fresh
	}
	if len(raw) == 0 {
		return fresh
	}

	var state models.UsageState
	if err := json.Unmarshal(raw, &state); err != nil {
		t.logger.Warn("discarding unreadable usage record", zap.String("scope", scope), zap.Error(err))
		return fresh
	}
	if state.Date != today {
		return fresh
	}
	if state.Counts == nil {
		state.Counts = map[models.Provider]int{}
	}
	return state
}

// Remaining returns the quota left for provider in scope.
func (t *Tracker) Remaining(scope string, provider models.Provider) models.Remaining {
	return t.remaining(t.State(scope), provider)
}

func (t *Tracker) remaining(state models.UsageState, provider models.Provider) models.Remaining {
	limit := t.limits.Limit(provider)
	return models.Remaining{
		PerProviderRemaining: max(0, limit-state.Used(provider)),
		TotalRemaining:       max(0, t.limits.Total-state.Total()),
		PerProviderLimit:     limit,
		TotalLimit:           t.limits.Total,
	}
}

// CanUse reports whether provider has calls left both on its own quota and
// on the aggregate quota.
func (t *Tracker) CanUse(scope string, provider models.Provider) bool {
	return t.Remaining(scope, provider).Allows()
}

// Check returns a QuotaError when provider cannot be used.
func (t *Tracker) Check(scope string, provider models.Provider) error {
	if !t.CanUse(scope, provider) {
		return &QuotaError{Provider: provider}
	}
	return nil
}

// Increment records one call to provider. Persistence failures are logged
// and otherwise ignored.
func (t *Tracker) Increment(scope string, provider models.Provider) {
	state := t.State(scope)
	state.Counts[provider]++

	raw, err := json.Marshal(state)
	if err != nil {
		t.logger.Warn("failed to encode usage", zap.Error(err))
		return
	}
	if err := t.store.Set(key(scope), raw, recordTTL); err != nil {
		t.logger.Warn("failed to persist usage", zap.String("scope", scope), zap.Error(err))
	}
}

// AllRemaining returns the remaining calls of each of providers, plus the
// aggregate under "total".
func (t *Tracker) AllRemaining(scope string, providers []models.Provider) map[string]int {
	state := t.State(scope)
	out := map[string]int{"total": max(0, t.limits.Total-state.Total())}
	for _, p := range providers {
		out[string(p)] = t.remaining(state, p).PerProviderRemaining
	}
	return out
}
