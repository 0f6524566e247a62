package mirrormap

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    mapCounter   prometheus.Counter
//	    mapHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordMap(duration time.Duration, err error) {
//	    p.mapCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordMap is called after each establish attempt.
	// duration is the total time taken, err is nil if successful.
	RecordMap(duration time.Duration, err error)

	// RecordRelease is called after each release.
	RecordRelease(duration time.Duration, err error)

	// RecordWipe is called after each wipe.
	// bytes is the number of bytes zeroed, duration is the time taken,
	// err is nil if successful.
	RecordWipe(bytes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordMap(time.Duration, error)       {}
func (NoopMetricsCollector) RecordRelease(time.Duration, error)   {}
func (NoopMetricsCollector) RecordWipe(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	MapCount      atomic.Int64
	MapErrors     atomic.Int64
	MapTotalNanos atomic.Int64
	ReleaseCount  atomic.Int64
	ReleaseErrors atomic.Int64
	WipeCount     atomic.Int64
	WipeErrors    atomic.Int64
	WipeBytes     atomic.Int64
}

// RecordMap implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMap(duration time.Duration, err error) {
	b.MapCount.Add(1)
	b.MapTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MapErrors.Add(1)
	}
}

// RecordRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelease(duration time.Duration, err error) {
	b.ReleaseCount.Add(1)
	if err != nil {
		b.ReleaseErrors.Add(1)
	}
}

// RecordWipe implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWipe(bytes int, duration time.Duration, err error) {
	b.WipeCount.Add(1)
	b.WipeBytes.Add(int64(bytes))
	if err != nil {
		b.WipeErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		MapCount:      b.MapCount.Load(),
		MapErrors:     b.MapErrors.Load(),
		MapAvgNanos:   b.getAvgMapNanos(),
		ReleaseCount:  b.ReleaseCount.Load(),
		ReleaseErrors: b.ReleaseErrors.Load(),
		WipeCount:     b.WipeCount.Load(),
		WipeErrors:    b.WipeErrors.Load(),
		WipeBytes:     b.WipeBytes.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgMapNanos() int64 {
	count := b.MapCount.Load()
	if count == 0 {
		return 0
	}
	return b.MapTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	MapCount      int64
	MapErrors     int64
	MapAvgNanos   int64
	ReleaseCount  int64
	ReleaseErrors int64
	WipeCount     int64
	WipeErrors    int64
	WipeBytes     int64
}
