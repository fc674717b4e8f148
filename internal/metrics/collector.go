// Package metrics counts requests served by the guide server.
package metrics

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Snapshot is a point-in-time view of server metrics — safe to marshal to JSON.
type Snapshot struct {
	TotalRequests  int64   `json:"total_requests"`
	HealthRequests int64   `json:"health_requests"`
	GuideRendered  int64   `json:"guide_rendered"`
	GuideFallbacks int64   `json:"guide_fallbacks"` // template unreadable
	UptimeSeconds  float64 `json:"uptime_seconds"`
}

// String formats the snapshot as a single status line.
func (s Snapshot) String() string {
	return fmt.Sprintf("requests=%d health=%d rendered=%d fallback=%d uptime=%.0fs",
		s.TotalRequests, s.HealthRequests, s.GuideRendered, s.GuideFallbacks, s.UptimeSeconds)
}

// Collector is a thread-safe metrics store.
type Collector struct {
	startTime time.Time

	total    atomic.Int64
	health   atomic.Int64
	rendered atomic.Int64
	fallback atomic.Int64
}

// NewCollector creates and starts a Collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
	}
}

// RecordHealth counts a health check.
func (c *Collector) RecordHealth() {
	c.total.Add(1)
	c.health.Add(1)
}

// RecordGuide counts a guide page; fellBack is true when the fallback page was served.
func (c *Collector) RecordGuide(fellBack bool) {
	c.total.Add(1)
	if fellBack {
		c.fallback.Add(1)
	} else {
		c.rendered.Add(1)
	}
}

// Snapshot returns current metrics as an immutable value.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		TotalRequests:  c.total.Load(),
		HealthRequests: c.health.Load(),
		GuideRendered:  c.rendered.Load(),
		GuideFallbacks: c.fallback.Load(),
		UptimeSeconds:  time.Since(c.startTime).Seconds(),
	}
}
