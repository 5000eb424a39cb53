package metrics

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	MatchEvaluations prometheus.Counter
	MatchRecommended prometheus.Counter
	MatchDuration    prometheus.Histogram

	SyncRuns      *prometheus.CounterVec
	SyncFetches   *prometheus.CounterVec
	SyncUpserted  prometheus.Counter
	PublicFetches *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the collectors on reg. A nil reg uses a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		MatchEvaluations: f.NewCounter(prometheus.CounterOpts{
			Name: "policy_match_evaluations_total",
			Help: "Total number of policy evaluations run by the matcher",
		}),
		MatchRecommended: f.NewCounter(prometheus.CounterOpts{
			Name: "policy_match_recommended_total",
			Help: "Total number of policies recommended (score above threshold)",
		}),
		MatchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "policy_match_duration_seconds",
			Help:    "Duration of one matching run in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		SyncRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "policy_sync_runs_total",
			Help: "Catalog sync runs by outcome",
		}, []string{"result"}),
		SyncFetches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "policy_sync_fetches_total",
			Help: "Public API fetches made by the catalog sync",
		}, []string{"source", "result"}),
		SyncUpserted: f.NewCounter(prometheus.CounterOpts{
			Name: "policy_sync_upserted_total",
			Help: "Policies inserted or changed by the catalog sync",
		}),
		PublicFetches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "public_data_requests_total",
			Help: "Public data proxy requests by source and origin",
		}, []string{"source", "origin"}),
		gatherer: reg,
	}
}

// ObserveMatch records one matching run. Nil-safe.
func (m *Metrics) ObserveMatch(evaluated, recommended int, took time.Duration) {
	if m == nil {
		return
	}
	m.MatchEvaluations.Add(float64(evaluated))
	m.MatchRecommended.Add(float64(recommended))
	m.MatchDuration.Observe(took.Seconds())
}

func (m *Metrics) ObserveSyncFetch(source string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.SyncFetches.WithLabelValues(source, result).Inc()
}

func (m *Metrics) ObserveSyncRun(upserted int, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.SyncRuns.WithLabelValues(result).Inc()
	m.SyncUpserted.Add(float64(upserted))
}

func (m *Metrics) ObservePublicFetch(source string, fallback bool) {
	if m == nil {
		return
	}
	origin := "api"
	if fallback {
		origin = "fallback"
	}
	m.PublicFetches.WithLabelValues(source, origin).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
