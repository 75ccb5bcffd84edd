package geoquad

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordBuild is called after tree construction.
	// points is the input size, duration the total build time,
	// err is nil if successful.
	RecordBuild(points int, duration time.Duration, err error)

	// RecordQuery is called after each overlap query.
	// matched is the number of points returned, duration the time taken,
	// err is nil if successful.
	RecordQuery(matched int, duration time.Duration, err error)

	// RecordWalk is called after a full traversal completes.
	RecordWalk(points int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordQuery(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordWalk(int, time.Duration)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount      atomic.Int64
	BuildErrors     atomic.Int64
	BuildTotalNanos atomic.Int64
	QueryCount      atomic.Int64
	QueryErrors     atomic.Int64
	QueryMatched    atomic.Int64
	QueryTotalNanos atomic.Int64
	WalkCount       atomic.Int64
	WalkPoints      atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(points int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(matched int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryMatched.Add(int64(matched))
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QueryErrors.Add(1)
	}
}

// RecordWalk implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWalk(points int, duration time.Duration) {
	b.WalkCount.Add(1)
	b.WalkPoints.Add(int64(points))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:    b.BuildCount.Load(),
		BuildErrors:   b.BuildErrors.Load(),
		QueryCount:    b.QueryCount.Load(),
		QueryErrors:   b.QueryErrors.Load(),
		QueryMatched:  b.QueryMatched.Load(),
		QueryAvgNanos: b.getAvgQueryNanos(),
		WalkCount:     b.WalkCount.Load(),
		WalkPoints:    b.WalkPoints.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgQueryNanos() int64 {
	count := b.QueryCount.Load()
	if count == 0 {
		return 0
	}
	return b.QueryTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount    int64
	BuildErrors   int64
	QueryCount    int64
	QueryErrors   int64
	QueryMatched  int64
	QueryAvgNanos int64
	WalkCount     int64
	WalkPoints    int64
}
