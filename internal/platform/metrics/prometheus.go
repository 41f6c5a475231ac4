package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsManager holds the service's Prometheus collectors.
type MetricsManager struct {
	Registry              *prometheus.Registry
	CatalogFetchTotal     *prometheus.CounterVec
	CatalogFallbackTotal  *prometheus.CounterVec
	PipelineDuration      prometheus.Histogram
	OrdersPlacedTotal     prometheus.Counter
	OrderStatusTransition *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
}

func NewMetricsManager(namespace string) *MetricsManager {
	registry := prometheus.NewRegistry()

	m := &MetricsManager{
		Registry: registry,
		CatalogFetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_fetch_total",
			Help:      "Catalog source requests by source and outcome.",
		}, []string{"source", "outcome"}),
		CatalogFallbackTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_fallback_total",
			Help:      "Times the static fallback catalog was served, by reason.",
		}, []string{"reason"}),
		PipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_pipeline_duration_seconds",
			Help:      "Duration of the filter/sort pipeline.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}),
		OrdersPlacedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Total number of orders created at checkout.",
		}),
		OrderStatusTransition: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_transitions_total",
			Help:      "Order status changes by target status.",
		}, []string{"status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests by route, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}

	registry.MustRegister(
		m.CatalogFetchTotal,
		m.CatalogFallbackTotal,
		m.PipelineDuration,
		m.OrdersPlacedTotal,
		m.OrderStatusTransition,
		m.HTTPRequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *MetricsManager) ObserveFetch(source, outcome string) {
	m.CatalogFetchTotal.WithLabelValues(source, outcome).Inc()
}

func (m *MetricsManager) ObserveFallback(reason string) {
	m.CatalogFallbackTotal.WithLabelValues(reason).Inc()
}

func (m *MetricsManager) ObservePipeline(d time.Duration) {
	m.PipelineDuration.Observe(d.Seconds())
}

func (m *MetricsManager) OrderPlaced() {
	m.OrdersPlacedTotal.Inc()
}

func (m *MetricsManager) OrderStatusChanged(status string) {
	m.OrderStatusTransition.WithLabelValues(status).Inc()
}

func (m *MetricsManager) ObserveHTTP(route, method, status string, d time.Duration) {
	m.HTTPRequestDuration.WithLabelValues(route, method, status).Observe(d.Seconds())
}

// StartMetricsServer serves /metrics on its own port. It returns nil without
// starting anything when port is empty; the returned server is for shutdown.
func StartMetricsServer(port string, log logger.Logger, registry *prometheus.Registry) *http.Server {
	if port == "" {
		log.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Infof("Prometheus metrics server starting on :%s/metrics", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Metrics server failed: %v", err)
		}
	}()
	return server
}
