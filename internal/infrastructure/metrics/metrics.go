package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the underwriting engine.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Orchestrator outcomes by final decision and whether it was taken synchronously
	QuotesProcessed *prometheus.CounterVec

	// Full ProcessQuote latency, store calls included
	ProcessLatency prometheus.Histogram

	// Review decisions by outcome and source ("automatic", "manual")
	ReviewDecisions *prometheus.CounterVec

	// Failures absorbed into advisories by kind ("audit_log", "decider")
	Advisories *prometheus.CounterVec

	// Quotes moved to expired by the sweeper
	QuotesExpired prometheus.Counter
}

// New registers the engine metrics on the default Prometheus registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the engine metrics on reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration panics.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		QuotesProcessed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "underwriting_quotes_processed_total",
			Help: "Total quotes processed by final decision",
		}, []string{"decision", "immediate"}),

		ProcessLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "underwriting_process_quote_duration_seconds",
			Help:    "Duration of quote processing including store calls",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		ReviewDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "underwriting_review_decisions_total",
			Help: "Total review decisions applied by outcome and source",
		}, []string{"decision", "source"}),

		Advisories: f.NewCounterVec(prometheus.CounterOpts{
			Name: "underwriting_advisories_total",
			Help: "Failures absorbed without failing the operation, by kind",
		}, []string{"kind"}),

		QuotesExpired: f.NewCounter(prometheus.CounterOpts{
			Name: "underwriting_quotes_expired_total",
			Help: "Total submitted quotes marked expired by the sweeper",
		}),
	}
}

// ObserveProcessed records a ProcessQuote outcome and its latency.
func (m *Metrics) ObserveProcessed(decision string, immediate bool, d time.Duration) {
	if m == nil {
		return
	}
	label := "false"
	if immediate {
		label = "true"
	}
	m.QuotesProcessed.WithLabelValues(decision, label).Inc()
	m.ProcessLatency.Observe(d.Seconds())
}

// IncrementReviewDecision records an applied review decision.
func (m *Metrics) IncrementReviewDecision(decision, source string) {
	if m != nil {
		m.ReviewDecisions.WithLabelValues(decision, source).Inc()
	}
}

// IncrementAdvisory records an absorbed failure.
func (m *Metrics) IncrementAdvisory(kind string) {
	if m != nil {
		m.Advisories.WithLabelValues(kind).Inc()
	}
}

// AddExpired records quotes expired in one sweep.
func (m *Metrics) AddExpired(n int) {
	if m != nil && n > 0 {
		m.QuotesExpired.Add(float64(n))
	}
}
