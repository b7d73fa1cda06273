// SPDX-License-Identifier: EPL-2.0

package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const namespace = "audseg"

// Result label values.
const (
	resultOK    = "ok"
	resultError = "error"
)

// Metrics holds every collector of the editor.
type Metrics struct {
	Decodes          *prometheus.CounterVec
	DecodeDuration   prometheus.Histogram
	Exports          prometheus.Counter
	ExportedBytes    prometheus.Counter
	EmptyExports     prometheus.Counter
	AnalysisRequests *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
}

// New creates the collectors and registers them with reg. A nil reg uses
// the default Prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		Decodes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decodes_total",
			Help:      "Clips decoded, by container format and result",
		}, []string{"format", "result"}),
		DecodeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "decode_duration_seconds",
			Help:      "Time spent decoding a clip",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
		}),
		Exports: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Segments exported as WAV",
		}),
		ExportedBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exported_bytes_total",
			Help:      "WAV bytes produced by exports",
		}),
		EmptyExports: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_exports_total",
			Help:      "Exports whose window selected no frames",
		}),
		AnalysisRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_requests_total",
			Help:      "Segments submitted to the analysis gateway, by result",
		}, []string{"result"}),
		AnalysisDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Round trip time of analysis requests including retries",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
		}),
	}
}

func result(err error) string {
	if err != nil {
		return resultError
	}
	return resultOK
}

func (m *Metrics) DecodeFinished(format string, took time.Duration, err error) {
	m.Decodes.WithLabelValues(format, result(err)).Inc()
	m.DecodeDuration.Observe(took.Seconds())
}

func (m *Metrics) Exported(bytes int) {
	if bytes == 0 {
		m.EmptyExports.Inc()
		return
	}
	m.Exports.Inc()
	m.ExportedBytes.Add(float64(bytes))
}

func (m *Metrics) AnalysisFinished(took time.Duration, err error) {
	m.AnalysisRequests.WithLabelValues(result(err)).Inc()
	m.AnalysisDuration.Observe(took.Seconds())
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Serve exposes g on addr under /metrics until ctx is done.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer, log logrus.FieldLogger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(g))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("serving metrics")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
