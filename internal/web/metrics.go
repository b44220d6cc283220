package web

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Collector bundles the upload front-end's prometheus metrics on a private
// registry.
type Collector struct {
	reg *prometheus.Registry

	Uploads         *prometheus.CounterVec // status label: ok|rejected|invalid
	RowsRendered    prometheus.Counter
	ComputeDuration prometheus.Histogram
}

// NewCollector builds and registers the metric set.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gpxtable_uploads_total",
			Help: "Total upload requests by outcome.",
		}, []string{"status"}),
		RowsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gpxtable_rows_rendered_total",
			Help: "Total itinerary rows rendered.",
		}),
		ComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gpxtable_compute_duration_seconds",
			Help:    "Duration of parse plus itinerary computation per upload.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
	}

	reg.MustRegister(c.Uploads, c.RowsRendered, c.ComputeDuration)
	return c
}

// Handler serves the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on its own listener. Empty addr disables it.
func (c *Collector) Serve(addr string, log *zap.Logger) *http.Server {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server error", zap.Error(err))
		}
	}()
	log.Info("metrics listening", zap.String("addr", addr))
	return srv
}
