// Package metrics provides in-memory runtime statistics collection.
package metrics

import (
	"math"
	"sync"
	"time"
)

// OperationMetrics holds aggregated metrics for a single operation type.
type OperationMetrics struct {
	Count     int64
	Errors    int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// OperationSnapshot provides computed stats from raw metrics.
type OperationSnapshot struct {
	Count       int64   `json:"count"`
	Errors      int64   `json:"errors"`
	TotalTimeMs int64   `json:"total_time_ms"`
	AvgTimeMs   float64 `json:"avg_time_ms"`
	MinTimeMs   int64   `json:"min_time_ms"`
	MaxTimeMs   int64   `json:"max_time_ms"`
}

// Operation names for the collector.
const (
	OpEmbedding = "embedding"
	OpUpsert    = "store_upsert"
	OpSearch    = "store_search"
	OpGenerate  = "llm_generate"
)

// Snapshot represents the full server statistics at a point in time.
type Snapshot struct {
	UptimeSeconds float64                       `json:"uptime_seconds"`
	Tools         map[string]OperationSnapshot  `json:"tools,omitempty"`
	Operations    map[string]OperationSnapshot  `json:"operations,omitempty"`
}

// Collector aggregates in-memory runtime statistics.
// All methods are thread-safe.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	tools     map[string]*OperationMetrics
	ops       map[string]*OperationMetrics
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		tools:     make(map[string]*OperationMetrics),
		ops:       make(map[string]*OperationMetrics),
	}
}

// getOrCreate returns existing metrics or creates new ones for a key.
// Caller must hold write lock.
func getOrCreate(m map[string]*OperationMetrics, key string) *OperationMetrics {
	om, ok := m[key]
	if !ok {
		om = &OperationMetrics{MinTime: time.Duration(math.MaxInt64)}
		m[key] = om
	}
	return om
}

func record(om *OperationMetrics, duration time.Duration, failed bool) {
	om.Count++
	if failed {
		om.Errors++
	}
	om.TotalTime += duration
	if duration < om.MinTime {
		om.MinTime = duration
	}
	if duration > om.MaxTime {
		om.MaxTime = duration
	}
}

// RecordTool records a tool invocation with its duration and outcome.
func (c *Collector) RecordTool(name string, duration time.Duration, failed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	record(getOrCreate(c.tools, name), duration, failed)
}

// RecordOperation records timing for a collaborator operation (embed, upsert, search).
func (c *Collector) RecordOperation(op string, duration time.Duration, failed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	record(getOrCreate(c.ops, op), duration, failed)
}

// snapshotOp creates a snapshot for an operation, returning a zero value if no data.
func snapshotOp(m *OperationMetrics) OperationSnapshot {
	snap := OperationSnapshot{
		Count:       m.Count,
		Errors:      m.Errors,
		TotalTimeMs: m.TotalTime.Milliseconds(),
		MaxTimeMs:   m.MaxTime.Milliseconds(),
	}
	if m.Count > 0 {
		snap.AvgTimeMs = float64(m.TotalTime.Milliseconds()) / float64(m.Count)
		snap.MinTimeMs = m.MinTime.Milliseconds()
	}
	return snap
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := Snapshot{
		UptimeSeconds: time.Since(c.startTime).Seconds(),
	}
	if len(c.tools) > 0 {
		snap.Tools = make(map[string]OperationSnapshot, len(c.tools))
		for name, m := range c.tools {
			snap.Tools[name] = snapshotOp(m)
		}
	}
	if len(c.ops) > 0 {
		snap.Operations = make(map[string]OperationSnapshot, len(c.ops))
		for name, m := range c.ops {
			snap.Operations[name] = snapshotOp(m)
		}
	}
	return snap
}
