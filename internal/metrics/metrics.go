// Package metrics exposes prometheus instrumentation for the retrieval
// pipeline.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	retrieverLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "forkcast_retriever_latency_ms",
		Help:    "Latency of retrieval channel calls in milliseconds",
		Buckets: []float64{25, 50, 100, 200, 400, 800, 1500, 3000, 6000, 10000},
	}, []string{"type"})

	retrieverResults = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "forkcast_retriever_results",
		Help:    "Number of results a retrieval channel contributed",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
	}, []string{"type"})

	intentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forkcast_intent_total",
		Help: "Classified intent count by kind",
	}, []string{"kind"})

	channelFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forkcast_channel_failures_total",
		Help: "Single-channel retrieval failures by type",
	}, []string{"type"})

	pipelineFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "forkcast_pipeline_failures_total",
		Help: "Pipeline failures recovered at the orchestrator boundary",
	})
)

func ensureRegistered() {
	once.Do(func() {
		prometheus.MustRegister(retrieverLatency, retrieverResults, intentTotal, channelFailures, pipelineFailures)
	})
}

// ObserveRetriever records latency and contributed result count for a
// retrieval channel type.
func ObserveRetriever(typ string, start time.Time, results int) {
	ensureRegistered()
	retrieverLatency.WithLabelValues(typ).Observe(float64(time.Since(start).Milliseconds()))
	retrieverResults.WithLabelValues(typ).Observe(float64(results))
}

// IncIntent counts one classified query by intent kind.
func IncIntent(kind string) {
	ensureRegistered()
	intentTotal.WithLabelValues(kind).Inc()
}

// IncChannelFailure counts a degraded single-channel failure.
func IncChannelFailure(typ string) {
	ensureRegistered()
	channelFailures.WithLabelValues(typ).Inc()
}

// IncPipelineFailure counts a failure recovered at the orchestrator boundary.
func IncPipelineFailure() {
	ensureRegistered()
	pipelineFailures.Inc()
}
