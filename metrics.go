package quadgrid

import (
	"sync/atomic"
	"time"
)

// Index kinds reported to a MetricsCollector and a Logger.
const (
	KindQuadTree = "quadtree"
	KindGrid     = "grid"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see the promcollector package).
//
// kind is KindQuadTree or KindGrid.
type MetricsCollector interface {
	// RecordBuild is called after each index construction.
	// count is the number of input elements, err is nil if successful.
	RecordBuild(kind string, count int, duration time.Duration, err error)

	// RecordQuery is called after each single query.
	// results is the number of elements returned, or 1 for a hit and 0 for a
	// miss on boolean queries.
	RecordQuery(kind string, results int, duration time.Duration)

	// RecordBatch is called after each batch query.
	// count is the number of queries in the batch.
	RecordBatch(kind string, count int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordQuery(string, int, time.Duration)        {}
func (NoopMetricsCollector) RecordBatch(string, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount      atomic.Int64
	BuildErrors     atomic.Int64
	BuildElements   atomic.Int64
	BuildTotalNanos atomic.Int64
	QueryCount      atomic.Int64
	QueryResults    atomic.Int64
	QueryTotalNanos atomic.Int64
	BatchCount      atomic.Int64
	BatchQueries    atomic.Int64
	BatchErrors     atomic.Int64
	BatchTotalNanos atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(_ string, count int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
		return
	}
	b.BuildElements.Add(int64(count))
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(_ string, results int, duration time.Duration) {
	b.QueryCount.Add(1)
	b.QueryResults.Add(int64(results))
	b.QueryTotalNanos.Add(duration.Nanoseconds())
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(_ string, count int, duration time.Duration, err error) {
	b.BatchCount.Add(1)
	b.BatchQueries.Add(int64(count))
	b.BatchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BatchErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:    b.BuildCount.Load(),
		BuildErrors:   b.BuildErrors.Load(),
		BuildElements: b.BuildElements.Load(),
		BuildAvgNanos: avg(b.BuildTotalNanos.Load(), b.BuildCount.Load()),
		QueryCount:    b.QueryCount.Load(),
		QueryResults:  b.QueryResults.Load(),
		QueryAvgNanos: avg(b.QueryTotalNanos.Load(), b.QueryCount.Load()),
		BatchCount:    b.BatchCount.Load(),
		BatchQueries:  b.BatchQueries.Load(),
		BatchErrors:   b.BatchErrors.Load(),
		BatchAvgNanos: avg(b.BatchTotalNanos.Load(), b.BatchCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount    int64
	BuildErrors   int64
	BuildElements int64
	BuildAvgNanos int64
	QueryCount    int64
	QueryResults  int64
	QueryAvgNanos int64
	BatchCount    int64
	BatchQueries  int64
	BatchErrors   int64
	BatchAvgNanos int64
}
