package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// serveMetrics holds the Prometheus metrics exported by serve and
// capture mode.
type serveMetrics struct {
	registry *prometheus.Registry

	framesTotal *prometheus.CounterVec
	bytesTotal  *prometheus.CounterVec
	frameErrors *prometheus.CounterVec
	activeConns prometheus.Gauge
	connsTotal  prometheus.Counter
}

// newServeMetrics creates and registers all metrics on a private
// registry, so repeated server starts in one process never collide.
func newServeMetrics() *serveMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &serveMetrics{
		registry: registry,
		framesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "framewire_frames_total",
				Help: "Total number of frames processed",
			},
			[]string{"direction"},
		),
		bytesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "framewire_frame_bytes_total",
				Help: "Total frame payload bytes processed",
			},
			[]string{"direction"},
		),
		frameErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "framewire_frame_errors_total",
				Help: "Total framing errors by kind",
			},
			[]string{"kind"},
		),
		activeConns: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "framewire_active_connections",
				Help: "Currently open client connections",
			},
		),
		connsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "framewire_connections_total",
				Help: "Total accepted client connections",
			},
		),
	}
}

func (m *serveMetrics) received(payloadLen int) {
	m.framesTotal.WithLabelValues("received").Inc()
	m.bytesTotal.WithLabelValues("received").Add(float64(payloadLen))
}

func (m *serveMetrics) sent(payloadLen int) {
	m.framesTotal.WithLabelValues("sent").Inc()
	m.bytesTotal.WithLabelValues("sent").Add(float64(payloadLen))
}

func (m *serveMetrics) failed(kind string) {
	m.frameErrors.WithLabelValues(kind).Inc()
}

// metricsRouter exposes /metrics and /healthz.
func metricsRouter(m *serveMetrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// runMetricsServer serves the metrics router until ctx is done.
func runMetricsServer(ctx context.Context, addr string, m *serveMetrics, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           metricsRouter(m),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	log.Info().Str("addr", addr).Msg("metrics endpoint listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
