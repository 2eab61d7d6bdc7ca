// Package metrics collects and exposes Prometheus metrics for the
// marketplace core.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the domain counters. All record methods are nil-safe so
// callers can run without metrics wired (tests, tools).
type Collector struct {
	registry *prometheus.Registry

	jobsCreated       prometheus.Counter
	jobsExpired       prometheus.Counter
	bidsCreated       prometheus.Counter
	bidsResolved      *prometheus.CounterVec
	cascadeRejections prometheus.Counter
	httpStatus        *prometheus.CounterVec
	httpLatency       prometheus.Histogram
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		registry: reg,
		jobsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shutterbid_jobs_created_total",
			Help: "Total number of job postings created.",
		}),
		jobsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shutterbid_jobs_expired_total",
			Help: "Total number of jobs transitioned to expired by the sweeper.",
		}),
		bidsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shutterbid_bids_created_total",
			Help: "Total number of bids submitted.",
		}),
		bidsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shutterbid_bids_resolved_total",
			Help: "Total number of bid resolutions by outcome.",
		}, []string{"outcome"}),
		cascadeRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shutterbid_cascade_rejections_total",
			Help: "Total number of sibling bids auto-rejected after an acceptance.",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shutterbid_http_requests_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "shutterbid_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.jobsCreated,
		c.jobsExpired,
		c.bidsCreated,
		c.bidsResolved,
		c.cascadeRejections,
		c.httpStatus,
		c.httpLatency,
	)

	return c
}

func (c *Collector) RecordJobCreated() {
	if c == nil {
		return
	}
	c.jobsCreated.Inc()
}

func (c *Collector) RecordJobsExpired(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.jobsExpired.Add(float64(n))
}

func (c *Collector) RecordBidCreated() {
	if c == nil {
		return
	}
	c.bidsCreated.Inc()
}

func (c *Collector) RecordBidResolved(outcome string) {
	if c == nil {
		return
	}
	c.bidsResolved.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordCascadeRejections(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.cascadeRejections.Add(float64(n))
}

func (c *Collector) RecordHTTPRequest(statusCode int, d time.Duration) {
	if c == nil {
		return
	}
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
	c.httpLatency.Observe(d.Seconds())
}

// Handler serves the collector's registry in the Prometheus exposition
// format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
