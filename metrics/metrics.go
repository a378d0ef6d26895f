package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/lumepay/lumepay/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lumepay"

// Metrics implements common.BatchObserver on top of a private registry.
type Metrics struct {
	registry *prometheus.Registry

	batchesTotal       *prometheus.CounterVec
	recipientsTotal    *prometheus.CounterVec
	batchDuration      *prometheus.HistogramVec
	runsTotal          *prometheus.CounterVec
	lastRunFailedRatio prometheus.Gauge
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		batchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "batches_total",
				Help:      "Total number of processed batches by outcome.",
			},
			[]string{"outcome"},
		),
		recipientsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recipients_total",
				Help:      "Total number of recipients in processed batches by outcome.",
			},
			[]string{"outcome"},
		),
		batchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "batch_duration_seconds",
				Help:      "Batch duration in seconds from build to ledger inclusion, signing wait included.",
				Buckets:   prometheus.ExponentialBuckets(0.25, 2, 12),
			},
			[]string{"outcome"},
		),
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of finished payroll runs by result.",
			},
			[]string{"result"},
		),
		lastRunFailedRatio: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_failed_recipients_ratio",
				Help:      "Share of recipients that were not paid in the last finished run.",
			},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.batchesTotal,
		m.recipientsTotal,
		m.batchDuration,
		m.runsTotal,
		m.lastRunFailedRatio,
	)

	return m
}

func (m *Metrics) ObserveBatch(outcome string, recipients int, duration time.Duration) {
	if m == nil {
		return
	}
	seconds := duration.Seconds()
	if seconds < 0 {
		seconds = 0
	}
	m.batchesTotal.WithLabelValues(outcome).Inc()
	m.recipientsTotal.WithLabelValues(outcome).Add(float64(recipients))
	m.batchDuration.WithLabelValues(outcome).Observe(seconds)
}

func (m *Metrics) ObserveRun(progress common.BulkPaymentProgress) {
	if m == nil {
		return
	}
	result := "success"
	if !progress.OverallSuccess {
		result = "partial"
	}
	m.runsTotal.WithLabelValues(result).Inc()
	if progress.TotalRecipients > 0 {
		m.lastRunFailedRatio.Set(float64(len(progress.GetFailedRecipients())) / float64(progress.TotalRecipients))
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil || m.registry == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) App() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	return app
}

// Serve exposes /metrics on listen until ctx is done
func (m *Metrics) Serve(ctx context.Context, listen string) error {
	listener, err := net.Listen("tcp", listen)
	if err != nil {
		return err
	}
	app := m.App()
	go func() {
		<-ctx.Done()
		app.ShutdownWithTimeout(5 * time.Second)
	}()
	go func() {
		if err := app.Listener(listener); err != nil && !errors.Is(err, net.ErrClosed) {
			slog.Warn("metrics endpoint stopped", "error", err.Error())
		}
	}()
	slog.Debug("metrics endpoint listening", "listen", listener.Addr().String())
	return nil
}
