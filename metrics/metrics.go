// Package metrics exposes Prometheus counters and gauges for the matching
// engine and its tracing pipeline. Most are incremented at the CLI/driver
// boundary; RingEventsPublished and RingEventsDropped are incremented
// directly from internal/trace on the engine's own Submit call chain, and
// DrainFlushesTotal from internal/trace on the drain goroutine, matching the
// ecosystem convention of a
// package touching the default registry at its own point of truth rather
// than bubbling every observation up through a return value (see DESIGN.md).
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrdersSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matchcore_orders_submitted_total",
		Help: "Orders successfully validated and passed to the engine.",
	})

	IngestErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matchcore_ingest_errors_total",
		Help: "Input CSV lines skipped for failing validation.",
	})

	ReportsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matchcore_execution_reports_total",
		Help: "Execution reports appended to the engine's report log, by executionType.",
	}, []string{"execution_type"})

	RingEventsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matchcore_trace_ring_published_total",
		Help: "Trace events successfully claimed and published to the ring.",
	})

	RingEventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matchcore_trace_ring_dropped_total",
		Help: "Trace events dropped because the ring was full at claim time.",
	})

	DrainFlushesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matchcore_trace_drain_flushes_total",
		Help: "Times the drain flushed its output buffer to the trace sink.",
	})

	BookDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "matchcore_book_depth",
		Help: "Number of distinct resting price levels, by side.",
	}, []string{"side"})

	BookVolume = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "matchcore_book_volume",
		Help: "Total remaining quantity resting on the book, by side.",
	}, []string{"side"})

	BookOrders = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "matchcore_book_orders",
		Help: "Number of resting orders on the book, by side.",
	}, []string{"side"})
)

// StartServer starts a background HTTP server exposing /metrics. It never
// blocks the caller; a bind or serve failure is sent to errc if non-nil.
func StartServer(addr string, errc chan<- error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		err := http.ListenAndServe(addr, mux)
		if err != nil && errc != nil {
			errc <- err
		}
	}()
}
