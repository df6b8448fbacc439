// Package metrics exposes Prometheus collectors for the extraction pipeline.
// Observation helpers are no-ops until Init has been called.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	registry *prometheus.Registry

	fetchTotal           *prometheus.CounterVec
	fetchDurationSeconds prometheus.Histogram
	extractTotal         *prometheus.CounterVec
	renderTotal          *prometheus.CounterVec
	sitesTotal           *prometheus.CounterVec

	once sync.Once
)

// Init registers the collectors. It is safe to call multiple times.
func Init() {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		fetchTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "phonecrawl_fetch_total",
				Help: "Page fetches, labeled by status class (2xx, 4xx, error, ...).",
			},
			[]string{"status"},
		)
		fetchDurationSeconds = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "phonecrawl_fetch_duration_seconds",
				Help:    "Duration of page fetches.",
				Buckets: prometheus.DefBuckets,
			},
		)
		extractTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "phonecrawl_extract_total",
				Help: "Extractions, labeled by the tier that produced the phone (none on failure).",
			},
			[]string{"tier"},
		)
		renderTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "phonecrawl_render_total",
				Help: "Rendered-page fallbacks, labeled by result (ok, cached, error).",
			},
			[]string{"result"},
		)
		sitesTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "phonecrawl_sites_total",
				Help: "Processed sites, labeled by outcome (ok, failed).",
			},
			[]string{"outcome"},
		)

		registry.MustRegister(fetchTotal, fetchDurationSeconds, extractTotal, renderTotal, sitesTotal)
	})
}

// ObserveFetch records one fetch attempt
func ObserveFetch(status string, d time.Duration) {
	if fetchTotal == nil {
		return
	}
	fetchTotal.WithLabelValues(status).Inc()
	fetchDurationSeconds.Observe(d.Seconds())
}

// ObserveExtract records the tier that resolved an extraction
func ObserveExtract(tier string) {
	if extractTotal == nil {
		return
	}
	extractTotal.WithLabelValues(tier).Inc()
}

// ObserveRender records one rendered-page fallback
func ObserveRender(result string) {
	if renderTotal == nil {
		return
	}
	renderTotal.WithLabelValues(result).Inc()
}

// ObserveSite records a completed site
func ObserveSite(failed bool) {
	if sitesTotal == nil {
		return
	}
	outcome := "ok"
	if failed {
		outcome = "failed"
	}
	sitesTotal.WithLabelValues(outcome).Inc()
}

// Handler returns the HTTP handler exposing the registered metrics
func Handler() http.Handler {
	Init()
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Debug().Str("addr", addr).Msg("Metrics endpoint listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
