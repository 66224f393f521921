package promcollector

import (
	"time"

	"github.com/hupe1980/quadgrid"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "quadgrid"

var _ quadgrid.MetricsCollector = (*Collector)(nil)

// Collector implements quadgrid.MetricsCollector on Prometheus vectors.
// Every metric carries a "kind" label (quadtree or grid).
type Collector struct {
	buildLatency *prometheus.HistogramVec
	builds       *prometheus.CounterVec
	buildSize    *prometheus.GaugeVec
	queryLatency *prometheus.HistogramVec
	queryResults *prometheus.HistogramVec
	batchLatency *prometheus.HistogramVec
	batches      *prometheus.CounterVec
}

// New creates a Collector and registers it with reg, unless reg is nil.
// It panics if the metrics are already registered, like
// prometheus.MustRegister.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		buildLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Latency of index construction",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind", "status"}),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Total index constructions",
		}, []string{"kind", "status"}),
		buildSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_elements",
			Help:      "Number of input elements of the last successful build",
		}, []string{"kind"}),
		queryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Latency of single queries",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
		}, []string{"kind"}),
		queryResults: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_results",
			Help:      "Number of results per query",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}, []string{"kind"}),
		batchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Latency of batch queries",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind", "status"}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_queries_total",
			Help:      "Total queries submitted in batches",
		}, []string{"kind"}),
	}

	if reg != nil {
		reg.MustRegister(c)
	}
	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordBuild implements quadgrid.MetricsCollector.
func (c *Collector) RecordBuild(kind string, count int, duration time.Duration, err error) {
	s := status(err)
	c.buildLatency.WithLabelValues(kind, s).Observe(duration.Seconds())
	c.builds.WithLabelValues(kind, s).Inc()
	if err == nil {
		c.buildSize.WithLabelValues(kind).Set(float64(count))
	}
}

// RecordQuery implements quadgrid.MetricsCollector.
func (c *Collector) RecordQuery(kind string, results int, duration time.Duration) {
	c.queryLatency.WithLabelValues(kind).Observe(duration.Seconds())
	c.queryResults.WithLabelValues(kind).Observe(float64(results))
}

// RecordBatch implements quadgrid.MetricsCollector.
func (c *Collector) RecordBatch(kind string, count int, duration time.Duration, err error) {
	c.batchLatency.WithLabelValues(kind, status(err)).Observe(duration.Seconds())
	c.batches.WithLabelValues(kind).Add(float64(count))
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.buildLatency.Describe(ch)
	c.builds.Describe(ch)
	c.buildSize.Describe(ch)
	c.queryLatency.Describe(ch)
	c.queryResults.Describe(ch)
	c.batchLatency.Describe(ch)
	c.batches.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.buildLatency.Collect(ch)
	c.builds.Collect(ch)
	c.buildSize.Collect(ch)
	c.queryLatency.Collect(ch)
	c.queryResults.Collect(ch)
	c.batchLatency.Collect(ch)
	c.batches.Collect(ch)
}
