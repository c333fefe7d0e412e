// Package metrics provides Prometheus instrumentation for outgoing backend
// calls.
//
// Every gateway call is observed; the counters matter mostly for the
// long-running courier watch loop, which exposes them on a loopback
// /metrics listener:
//
//	stop := metrics.Serve(config.MetricsAddr())
//	defer stop()
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shashiranjanraj/bodega/pkg/logger"
)

var (
	// APICallDuration tracks how long each backend call takes, broken down
	// by operation name and status code (0 = transport failure).
	APICallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bodega",
			Subsystem: "api",
			Name:      "call_duration_seconds",
			Help:      "Duration of backend API calls in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation", "status"},
	)

	// APICallTotal counts all backend calls.
	APICallTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bodega",
			Subsystem: "api",
			Name:      "calls_total",
			Help:      "Total number of backend API calls.",
		},
		[]string{"operation", "status"},
	)

	// SessionExpirations counts 401 responses that forced a logout.
	SessionExpirations = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bodega",
		Subsystem: "session",
		Name:      "expirations_total",
		Help:      "Number of times a 401 response cleared the session.",
	})

	// WatchPolls counts courier watch iterations.
	WatchPolls = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bodega",
		Subsystem: "courier",
		Name:      "watch_polls_total",
		Help:      "Number of available-order poll iterations.",
	})
)

var registry = prometheus.NewRegistry()

func init() {
	registry.MustRegister(
		APICallDuration,
		APICallTotal,
		SessionExpirations,
		WatchPolls,
		collectors.NewGoCollector(),
	)
}

// ObserveCall records one backend call. status 0 means the request never got
// a response.
func ObserveCall(operation string, status int, elapsed time.Duration) {
	s := strconv.Itoa(status)
	APICallTotal.WithLabelValues(operation, s).Inc()
	APICallDuration.WithLabelValues(operation, s).Observe(elapsed.Seconds())
}

// Serve exposes /metrics on addr and returns a function that shuts the
// listener down. Serve never blocks.
func Serve(addr string) (stop func()) {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics: listener stopped", "addr", addr, "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
