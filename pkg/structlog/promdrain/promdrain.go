// Package promdrain instruments another drain with Prometheus metrics:
// records by level, sink errors and sink latency.
package promdrain

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nessig/go-structlog/pkg/structlog"
)

// Drain counts and times every record it forwards.
type Drain struct {
	next    structlog.Drain
	records *prometheus.CounterVec
	errs    prometheus.Counter
	latency prometheus.Histogram
}

type config struct {
	registerer prometheus.Registerer
	namespace  string
}

// Option configures a Drain.
type Option func(c *config)

// WithRegisterer sets the metrics registry. Defaults to the global one.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *config) {
		c.registerer = reg
	}
}

// WithNamespace prefixes all metric names.
func WithNamespace(ns string) Option {
	return func(c *config) {
		c.namespace = ns
	}
}

// New creates an instrumented drain in front of next and registers its
// metrics. Registering the same metrics twice on one registry panics, as
// usual with promauto.
func New(next structlog.Drain, opts ...Option) (*Drain, error) {
	if next == nil {
		return nil, structlog.ErrDrainMustBeSet
	}

	cfg := config{registerer: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.registerer)

	return &Drain{
		next: next,
		records: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "structlog_records_total",
			Help:      "Log records forwarded to the sink, by level.",
		}, []string{"level"}),
		errs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "structlog_sink_errors_total",
			Help:      "Records the sink failed to accept.",
		}),
		latency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.namespace,
			Name:      "structlog_sink_duration_seconds",
			Help:      "Latency of sink deliveries.",
			Buckets:   prometheus.DefBuckets,
		}),
	}, nil
}

// Log forwards rec to the wrapped drain and records the outcome.
func (d *Drain) Log(rec *structlog.Record, logger structlog.KV) error {
	start := time.Now()
	err := d.next.Log(rec, logger)
	d.latency.Observe(time.Since(start).Seconds())
	d.records.WithLabelValues(rec.Level.String()).Inc()
	if err != nil {
		d.errs.Inc()

		return errors.Wrap(err, "sink")
	}

	return nil
}

var _ structlog.Drain = (*Drain)(nil)
