// Package metrics provides in-memory runtime statistics collection.
package metrics

import (
	"maps"
	"math"
	"sync"
	"time"
)

// OperationMetrics holds aggregated metrics for a single operation type.
type OperationMetrics struct {
	Count     int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// OperationSnapshot provides computed stats from raw metrics.
type OperationSnapshot struct {
	Count       int64   `json:"count"`
	TotalTimeMs int64   `json:"totalTimeMs"`
	AvgTimeMs   float64 `json:"avgTimeMs"`
	MinTimeMs   int64   `json:"minTimeMs"`
	MaxTimeMs   int64   `json:"maxTimeMs"`
}

// Snapshot represents the full server statistics at a point in time.
type Snapshot struct {
	UptimeSeconds float64            `json:"uptimeSeconds"`
	Match         *OperationSnapshot `json:"match,omitempty"`
	Route         *OperationSnapshot `json:"route,omitempty"`
	StoreQuery    *OperationSnapshot `json:"storeQuery,omitempty"`
	StoreSearch   *OperationSnapshot `json:"storeSearch,omitempty"`
	Counters      map[string]int64   `json:"counters"`
}

// Operation names for the collector.
const (
	OpMatch       = "match"
	OpRoute       = "route"
	OpStoreQuery  = "store_query"
	OpStoreSearch = "store_search"
)

// Collector aggregates in-memory runtime statistics.
// All methods are thread-safe. A nil *Collector discards everything.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	ops       map[string]*OperationMetrics
	counters  map[string]int64
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		ops:       make(map[string]*OperationMetrics),
		counters:  make(map[string]int64),
	}
}

// getOrCreate returns existing metrics or creates new ones for an operation.
// Caller must hold write lock.
func (c *Collector) getOrCreate(op string) *OperationMetrics {
	m, ok := c.ops[op]
	if !ok {
		m = &OperationMetrics{MinTime: time.Duration(math.MaxInt64)}
		c.ops[op] = m
	}
	return m
}

// RecordTiming records timing for an operation.
func (c *Collector) RecordTiming(op string, duration time.Duration) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.getOrCreate(op)
	m.Count++
	m.TotalTime += duration

	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}
}

// Since records the time elapsed since start for op. Meant for defer:
//
//	defer mc.Since(metrics.OpRoute, time.Now())
func (c *Collector) Since(op string, start time.Time) {
	c.RecordTiming(op, time.Since(start))
}

// Inc increments a named counter, e.g. "match.lenient".
func (c *Collector) Inc(name string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[name]++
}

// snapshotOp creates a snapshot for an operation, returning nil if no data.
func snapshotOp(m *OperationMetrics) *OperationSnapshot {
	if m == nil || m.Count == 0 {
		return nil
	}

	return &OperationSnapshot{
		Count:       m.Count,
		TotalTimeMs: m.TotalTime.Milliseconds(),
		AvgTimeMs:   float64(m.TotalTime.Milliseconds()) / float64(m.Count),
		MinTimeMs:   m.MinTime.Milliseconds(),
		MaxTimeMs:   m.MaxTime.Milliseconds(),
	}
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{Counters: map[string]int64{}}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Snapshot{
		UptimeSeconds: time.Since(c.startTime).Seconds(),
		Match:         snapshotOp(c.ops[OpMatch]),
		Route:         snapshotOp(c.ops[OpRoute]),
		StoreQuery:    snapshotOp(c.ops[OpStoreQuery]),
		StoreSearch:   snapshotOp(c.ops[OpStoreSearch]),
		Counters:      maps.Clone(c.counters),
	}
}
