package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"edunex/internal/models"
)

var (
	resolutionDesc = prometheus.NewDesc(
		"edunex_resolutions_total",
		"Total query resolutions by outcome and provider",
		[]string{"outcome", "provider"},
		nil,
	)

	providerCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "edunex_provider_calls_total",
		Help: "Upstream AI provider calls by result",
	}, []string{"provider", "result"})

	providerLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "edunex_provider_call_duration_seconds",
		Help:    "Upstream AI provider call latency",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"provider"})

	providerUp = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "edunex_provider_up",
		Help: "Last probe result per provider (1 healthy, 0 unhealthy, -1 unknown)",
	}, []string{"provider"})
)

// Store is where resolution counters are persisted.
type Store interface {
	IncrementResolutionLookup(ctx context.Context, outcome, provider string) error
	GetAllResolutionLookups(ctx context.Context) ([]models.ResolutionLookup, error)
}

// ResolutionCollector is a custom Prometheus collector that reads resolution
// counts from the database on each scrape.
type ResolutionCollector struct {
	store  Store
	logger *zap.Logger
}

// NewResolutionCollector creates a collector over store.
func NewResolutionCollector(store Store, logger *zap.Logger) *ResolutionCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResolutionCollector{store: store, logger: logger}
}

// Describe sends the metric descriptor to the channel.
func (c *ResolutionCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- resolutionDesc
}

// Collect queries the database for all resolution counters and emits them.
func (c *ResolutionCollector) Collect(ch chan<- prometheus.Metric) {
	lookups, err := c.store.GetAllResolutionLookups(context.Background())
	if err != nil {
		c.logger.Error("failed to collect resolution metrics", zap.Error(err))
		return
	}
	for _, l := range lookups {
		ch <- prometheus.MustNewConstMetric(
			resolutionDesc,
			prometheus.CounterValue,
			float64(l.Count),
			l.Outcome,
			l.Provider,
		)
	}
}

// Recorder records resolution outcomes without blocking the request.
type Recorder struct {
	store  Store
	logger *zap.Logger
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the collectors and returns the recorder.
// Must be called once at startup.
func Init(store Store, logger *zap.Logger) *Recorder {
	recorderOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
		recorder = &Recorder{store: store, logger: logger}
		prometheus.MustRegister(NewResolutionCollector(store, logger), providerCalls, providerLatency, providerUp)
	})
	return recorder
}

// IncrementResolutionLookup records one outcome in the background. The
// request context is not used because the write outlives the request.
func (r *Recorder) IncrementResolutionLookup(_ context.Context, outcome, provider string) error {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.store.IncrementResolutionLookup(ctx, outcome, provider); err != nil {
			r.logger.Error("failed to record resolution",
				zap.String("outcome", outcome),
				zap.String("provider", provider),
				zap.Error(err))
		}
	}()
	return nil
}

// ObserveProviderCall records one upstream call. Its signature matches
// ai.Observer.
func ObserveProviderCall(provider models.Provider, elapsed time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	providerCalls.WithLabelValues(string(provider), result).Inc()
	providerLatency.WithLabelValues(string(provider)).Observe(elapsed.Seconds())
}

// SetProviderHealth publishes the last probe status of provider.
func SetProviderHealth(provider models.Provider, status string) {
	v := -1.0
	switch status {
	case models.HealthHealthy:
		v = 1
	case models.HealthUnhealthy:
		v = 0
	}
	providerUp.WithLabelValues(string(provider)).Set(v)
}
