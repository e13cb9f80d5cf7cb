// Package observability constructs the logging, tracing, and metrics
// collaborators threaded through the core's constructors.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

// Metrics holds the prometheus collectors the ingest/query paths
// update. Constructed once and threaded explicitly, never a package
// global. Every method tolerates a nil receiver so callers without a
// metrics pipeline can pass nil.
type Metrics struct {
	IngestTotal         *prometheus.CounterVec
	QueryLatency        *prometheus.HistogramVec
	CandidateSetSize    prometheus.Histogram
	RankingDegradations prometheus.Counter
}

// NewMetrics registers every collector against reg and returns the
// bundle. Passing prometheus.NewRegistry() keeps tests isolated from
// the default global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		IngestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchcore_ingest_total",
			Help: "Listings ingested, partitioned by intent and outcome.",
		}, []string{"intent", "outcome"}),
		QueryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "matchcore_query_latency_seconds",
			Help:    "End-to-end query latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"intent"}),
		CandidateSetSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "matchcore_candidate_set_size",
			Help:    "Number of candidates returned by the retriever before matching.",
			Buckets: prometheus.LinearBuckets(0, 25, 10),
		}),
		RankingDegradations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchcore_ranking_degradations_total",
			Help: "Survivors dropped from ranking for a missing embedding.",
		}),
	}
	reg.MustRegister(m.IngestTotal, m.QueryLatency, m.CandidateSetSize, m.RankingDegradations)
	return m
}

// RecordIngest increments the ingest counter, tagged by outcome.
func (m *Metrics) RecordIngest(intent string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.IngestTotal.WithLabelValues(intent, outcome).Inc()
}

func (m *Metrics) RecordQueryLatency(intent string, d time.Duration) {
	if m == nil {
		return
	}
	m.QueryLatency.WithLabelValues(intent).Observe(d.Seconds())
}

func (m *Metrics) RecordCandidateSetSize(n int) {
	if m == nil {
		return
	}
	m.CandidateSetSize.Observe(float64(n))
}

func (m *Metrics) RecordRankingDegradation() {
	if m == nil {
		return
	}
	m.RankingDegradations.Inc()
}

// NewLogger constructs the zap.Logger threaded through every
// component: constructed once, passed explicitly.
func NewLogger(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// NewTracerProvider builds the TracerProvider behind the retriever's
// spans. No exporter is registered here; deployments that ship spans
// somewhere pass their exporter as a span processor option.
func NewTracerProvider(opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(opts...)
}
