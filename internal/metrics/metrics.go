// Package metrics exposes Prometheus counters for page renders and feed fetches.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests and multiple servers do not collide.
type Metrics struct {
	registry            *prometheus.Registry
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	feedFetches         *prometheus.CounterVec
	feedFetchDuration   prometheus.Histogram
	featuresRendered    prometheus.Counter
	featuresSkipped     prometheus.Counter
}

// New creates a registry with HTTP, feed and feature metrics registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quakemap",
		Name:      "http_requests_total",
		Help:      "Count of HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "quakemap",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	feedFetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quakemap",
		Name:      "feed_fetches_total",
		Help:      "Feed fetch attempts by result",
	}, []string{"result"})

	feedFetchDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "quakemap",
		Name:      "feed_fetch_duration_seconds",
		Help:      "Duration of feed fetches including decoding",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	featuresRendered := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "quakemap",
		Name:      "features_rendered_total",
		Help:      "Earthquake markers placed on rendered maps",
	})

	featuresSkipped := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "quakemap",
		Name:      "features_skipped_total",
		Help:      "Malformed feed features dropped before rendering",
	})

	registry.MustRegister(
		httpRequests,
		httpRequestDuration,
		feedFetches,
		feedFetchDuration,
		featuresRendered,
		featuresSkipped,
	)

	return &Metrics{
		registry:            registry,
		httpRequests:        httpRequests,
		httpRequestDuration: httpRequestDuration,
		feedFetches:         feedFetches,
		feedFetchDuration:   feedFetchDuration,
		featuresRendered:    featuresRendered,
		featuresSkipped:     featuresSkipped,
	}
}

// ObserveHTTPRequest records a single HTTP request/response cycle.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}
	m.httpRequests.With(labels).Inc()
	m.httpRequestDuration.With(labels).Observe(duration.Seconds())
}

// ObserveFeedFetch records one fetch attempt. It matches feed.Observer.
func (m *Metrics) ObserveFeedFetch(_ string, took time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.feedFetches.WithLabelValues(result).Inc()
	m.feedFetchDuration.Observe(took.Seconds())
}

// AddFeatures records how many features were rendered and skipped.
func (m *Metrics) AddFeatures(rendered, skipped int) {
	if m == nil {
		return
	}
	m.featuresRendered.Add(float64(rendered))
	m.featuresSkipped.Add(float64(skipped))
}

// Handler exposes the Prometheus registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("metrics unavailable"))
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
