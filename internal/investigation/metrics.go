package investigation

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the investigation subsystem.
type Metrics struct {
	SelectionsTotal  prometheus.Counter
	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec
	RetriesTotal     prometheus.Counter
	FallbacksTotal   prometheus.Counter
	StaleDropsTotal  prometheus.Counter
	BriefingsTotal   *prometheus.CounterVec
	EscalationsTotal prometheus.Counter
}

// NewMetrics registers and returns investigation metrics on the given
// registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SelectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_selections_total",
			Help: "Total alert selections dispatched for analysis.",
		}),
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_analyses_total",
			Help: "Completed analysis requests by outcome.",
		}, []string{"outcome"}),
		AnalysisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sentinel_analysis_duration_seconds",
			Help:    "Duration of analysis requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 8), // 0.5s .. ~64s
		}, []string{"outcome"}),
		RetriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_analysis_retries_total",
			Help: "Manual analysis retries.",
		}),
		FallbacksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_analysis_fallbacks_total",
			Help: "Synthetic fallback analyses served.",
		}),
		StaleDropsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_stale_responses_dropped_total",
			Help: "Async analysis responses discarded because the selection changed.",
		}),
		BriefingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_briefings_total",
			Help: "Audio briefing playbacks by outcome.",
		}, []string{"outcome"}),
		EscalationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_escalations_total",
			Help: "Confirm-and-draft handoffs to the report compositor.",
		}),
	}

	reg.MustRegister(
		m.SelectionsTotal,
		m.AnalysesTotal,
		m.AnalysisDuration,
		m.RetriesTotal,
		m.FallbacksTotal,
		m.StaleDropsTotal,
		m.BriefingsTotal,
		m.EscalationsTotal,
	)

	return m
}

// NopMetrics returns metrics registered on a throwaway registry, for tests
// and wiring paths that do not export.
func NopMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
