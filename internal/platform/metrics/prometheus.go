package metrics

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/zora-digital-fashion/marketplace/internal/platform/logger"
)

// MetricsManager holds the service's Prometheus collectors on a private registry.
type MetricsManager struct {
	Registry *prometheus.Registry

	SearchesTotal       *prometheus.CounterVec // by sort key
	SearchResultItems   prometheus.Histogram
	PurchasesTotal      *prometheus.CounterVec // by outcome
	CatalogCacheResults *prometheus.CounterVec // hit | miss | error
	APIErrorsTotal      *prometheus.CounterVec
	APILatency          *prometheus.HistogramVec
}

// NewMetricsManager registers every collector under the namespace derived
// from serviceName.
func NewMetricsManager(serviceName string) *MetricsManager {
	registry := prometheus.NewRegistry()
	namespace := strings.ReplaceAll(serviceName, "-", "_")

	m := &MetricsManager{
		Registry: registry,
		SearchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wearable_searches_total",
			Help:      "Total number of catalog queries by sort key.",
		}, []string{"sort_by"}),
		SearchResultItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "wearable_search_matches",
			Help:      "Number of wearables matching a catalog query before pagination.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		}),
		PurchasesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wearable_purchases_total",
			Help:      "Simulated purchases by outcome.",
		}, []string{"outcome"}),
		CatalogCacheResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_cache_results_total",
			Help:      "Catalog snapshot cache lookups by result.",
		}, []string{"result"}),
		APIErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_errors_total",
			Help:      "Total number of API errors by route and error type.",
		}, []string{"route", "error_type"}),
		APILatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_latency_seconds",
			Help:      "Latency of API requests by route, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}

	registry.MustRegister(
		m.SearchesTotal,
		m.SearchResultItems,
		m.PurchasesTotal,
		m.CatalogCacheResults,
		m.APIErrorsTotal,
		m.APILatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveSearch records one catalog query.
func (m *MetricsManager) ObserveSearch(sortBy string, matches int) {
	if m == nil {
		return
	}
	if sortBy == "" {
		sortBy = "none"
	}
	m.SearchesTotal.WithLabelValues(sortBy).Inc()
	m.SearchResultItems.Observe(float64(matches))
}

// ObservePurchase records the outcome of a purchase attempt.
func (m *MetricsManager) ObservePurchase(outcome string) {
	if m == nil {
		return
	}
	m.PurchasesTotal.WithLabelValues(outcome).Inc()
}

// ObserveCache records a snapshot cache lookup.
func (m *MetricsManager) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.CatalogCacheResults.WithLabelValues(result).Inc()
}

// ObserveRequest records a handled HTTP request.
func (m *MetricsManager) ObserveRequest(route, method, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.APILatency.WithLabelValues(route, method, status).Observe(elapsed.Seconds())
}

// ObserveError records an API error by route and type.
func (m *MetricsManager) ObserveError(route, errorType string) {
	if m == nil {
		return
	}
	m.APIErrorsTotal.WithLabelValues(route, errorType).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *MetricsManager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// MetricsServer serves /metrics on its own port.
type MetricsServer struct {
	server *http.Server
	log    *logger.Logger
}

// NewMetricsServer returns nil when port is empty.
func NewMetricsServer(port string, appLogger *logger.Logger, m *MetricsManager) *MetricsServer {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return &MetricsServer{
		server: &http.Server{
			Addr:              ":" + port,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: appLogger,
	}
}

// Start blocks until the server stops. A graceful shutdown returns nil.
func (s *MetricsServer) Start() error {
	s.log.Info("Prometheus metrics server starting", zap.String("addr", s.server.Addr), zap.String("path", "/metrics"))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
