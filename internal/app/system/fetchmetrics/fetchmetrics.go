// Package fetchmetrics exposes Prometheus metrics about report fetches.
package fetchmetrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/clubdash/internal/app/system/ourclub"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for clubdash_report_fetches_total.
const (
	OutcomeOK              = "ok"
	OutcomeServerError     = "server_error"
	OutcomeConnectionError = "connection_error"
)

// Fetcher is the report source being measured. *ourclub.Client satisfies it.
type Fetcher interface {
	FetchMembershipReport(ctx context.Context) (ourclub.Envelope, error)
}

// Recorder holds report fetch metrics in its own registry.
type Recorder struct {
	reg      *prometheus.Registry
	fetches  *prometheus.CounterVec
	duration prometheus.Histogram
	records  prometheus.Gauge
	invalid  prometheus.Gauge
}

// New creates a Recorder with its collectors registered.
func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clubdash_report_fetches_total",
			Help: "Membership report fetches by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "clubdash_report_fetch_duration_seconds",
			Help:    "Time spent fetching the membership report.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "clubdash_report_records",
			Help: "Records in the last successfully fetched report.",
		}),
		invalid: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "clubdash_report_invalid_records",
			Help: "Records missing a required field in the last successfully fetched report.",
		}),
	}
	r.reg.MustRegister(r.fetches, r.duration, r.records, r.invalid)
	return r
}

// Observe records one finished fetch.
func (r *Recorder) Observe(env ourclub.Envelope, err error, elapsed time.Duration) {
	r.duration.Observe(elapsed.Seconds())
	r.fetches.WithLabelValues(Outcome(err)).Inc()
	if err == nil {
		r.records.Set(float64(env.Len()))
		r.invalid.Set(float64(env.InvalidCount()))
	}
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Instrument wraps f so every fetch is observed by r.
func (r *Recorder) Instrument(f Fetcher) Fetcher {
	return &instrumented{next: f, rec: r, now: time.Now}
}

// Outcome classifies a fetch error into a metric label.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	var se *ourclub.ServerError
	if errors.As(err, &se) {
		return OutcomeServerError
	}
	return OutcomeConnectionError
}

type instrumented struct {
	next Fetcher
	rec  *Recorder
	now  func() time.Time
}

func (i *instrumented) FetchMembershipReport(ctx context.Context) (ourclub.Envelope, error) {
	start := i.now()
	env, err := i.next.FetchMembershipReport(ctx)
	i.rec.Observe(env, err, i.now().Sub(start))
	return env, err
}
