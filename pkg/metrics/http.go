package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration observes handler latency by route and status class.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "coh",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})

	// WorkerProxyCalls counts proxy calls to the sibling worker process.
	WorkerProxyCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coh",
		Subsystem: "worker_proxy",
		Name:      "calls_total",
		Help:      "Worker proxy calls by operation and outcome.",
	}, []string{"operation", "outcome"})
)

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveWorkerCall records one proxy call outcome.
func ObserveWorkerCall(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	WorkerProxyCalls.WithLabelValues(operation, outcome).Inc()
}
