package respool

import (
	"sync/atomic"
	"time"
)

// Lookup tells where a Get was answered.
type Lookup uint8

const (
	// LookupMiss means neither the local store nor any peer had the name.
	LookupMiss Lookup = iota
	// LookupLocal means the local store answered.
	LookupLocal
	// LookupRemote means a peer pool answered through the connector.
	LookupRemote
)

func (l Lookup) String() string {
	switch l {
	case LookupLocal:
		return "local"
	case LookupRemote:
		return "remote"
	default:
		return "miss"
	}
}

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// metrics/prometheus package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordPut is called after each put operation.
	RecordPut(duration time.Duration, err error)

	// RecordGet is called after each get operation.
	RecordGet(duration time.Duration, lookup Lookup)

	// RecordRemove is called after each remove operation.
	RecordRemove(duration time.Duration, err error)

	// RecordGetAll is called after each listing with the number of entries returned.
	RecordGetAll(count int, duration time.Duration)

	// RecordRemoteFailure is called when a remote call fails or times out.
	// op is "directory" or "read".
	RecordRemoteFailure(op string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPut(time.Duration, error)    {}
func (NoopMetricsCollector) RecordGet(time.Duration, Lookup)   {}
func (NoopMetricsCollector) RecordRemove(time.Duration, error) {}
func (NoopMetricsCollector) RecordGetAll(int, time.Duration)   {}
func (NoopMetricsCollector) RecordRemoteFailure(string)        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	PutCount       atomic.Int64
	PutErrors      atomic.Int64
	PutTotalNanos  atomic.Int64
	GetCount       atomic.Int64
	GetLocalHits   atomic.Int64
	GetRemoteHits  atomic.Int64
	GetTotalNanos  atomic.Int64
	RemoveCount    atomic.Int64
	RemoveErrors   atomic.Int64
	GetAllCount    atomic.Int64
	GetAllItems    atomic.Int64
	RemoteFailures atomic.Int64
}

// RecordPut implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPut(duration time.Duration, err error) {
	b.PutCount.Add(1)
	b.PutTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.PutErrors.Add(1)
	}
}

// RecordGet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGet(duration time.Duration, lookup Lookup) {
	b.GetCount.Add(1)
	b.GetTotalNanos.Add(duration.Nanoseconds())
	switch lookup {
	case LookupLocal:
		b.GetLocalHits.Add(1)
	case LookupRemote:
		b.GetRemoteHits.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(_ time.Duration, err error) {
	b.RemoveCount.Add(1)
	if err != nil {
		b.RemoveErrors.Add(1)
	}
}

// RecordGetAll implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGetAll(count int, _ time.Duration) {
	b.GetAllCount.Add(1)
	b.GetAllItems.Add(int64(count))
}

// RecordRemoteFailure implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemoteFailure(string) {
	b.RemoteFailures.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		PutCount:       b.PutCount.Load(),
		PutErrors:      b.PutErrors.Load(),
		PutAvgNanos:    avg(b.PutTotalNanos.Load(), b.PutCount.Load()),
		GetCount:       b.GetCount.Load(),
		GetLocalHits:   b.GetLocalHits.Load(),
		GetRemoteHits:  b.GetRemoteHits.Load(),
		GetAvgNanos:    avg(b.GetTotalNanos.Load(), b.GetCount.Load()),
		RemoveCount:    b.RemoveCount.Load(),
		RemoveErrors:   b.RemoveErrors.Load(),
		GetAllCount:    b.GetAllCount.Load(),
		GetAllItems:    b.GetAllItems.Load(),
		RemoteFailures: b.RemoteFailures.Load(),
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
	PutCount       int64
	PutErrors      int64
	PutAvgNanos    int64
	GetCount       int64
	GetLocalHits   int64
	GetRemoteHits  int64
	GetAvgNanos    int64
	RemoveCount    int64
	RemoveErrors   int64
	GetAllCount    int64
	GetAllItems    int64
	RemoteFailures int64
}
