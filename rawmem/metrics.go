package rawmem

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
)

// Stats is a snapshot of allocator accounting.
type Stats struct {
	LiveBytes     int64  // Bytes in blocks not yet deallocated
	LiveBlocks    int64  // Blocks not yet deallocated
	Allocations   uint64 // Successful Allocate calls
	Deallocations uint64 // Deallocate calls on non-nil blocks
	Failures      uint64 // Allocate calls that returned an error
	Limit         int64  // Live-byte cap, 0 if unlimited
}

// Stats returns a snapshot of the allocator counters. Fields are read
// independently, so the snapshot is only consistent when the allocator is
// idle.
func (a *Allocator) Stats() Stats {
	return Stats{
		LiveBytes:     a.liveBytes.Load(),
		LiveBlocks:    a.liveBlocks.Load(),
		Allocations:   a.allocs.Load(),
		Deallocations: a.frees.Load(),
		Failures:      a.failures.Load(),
		Limit:         a.limit.Load(),
	}
}

func (s Stats) String() string {
	limit := "unlimited"
	if s.Limit > 0 {
		limit = humanize.IBytes(uint64(s.Limit))
	}
	return fmt.Sprintf("live=%s blocks=%d allocs=%d frees=%d failures=%d limit=%s",
		humanize.IBytes(uint64(s.LiveBytes)), s.LiveBlocks, s.Allocations, s.Deallocations, s.Failures, limit)
}

// Collector exports allocator accounting as Prometheus metrics.
type Collector struct {
	a *Allocator

	liveBytes     *prometheus.Desc
	liveBlocks    *prometheus.Desc
	allocations   *prometheus.Desc
	deallocations *prometheus.Desc
	failures      *prometheus.Desc
	limit         *prometheus.Desc
}

// NewCollector returns a collector for a. Register it with a
// prometheus.Registerer to expose the metrics.
func NewCollector(a *Allocator) *Collector {
	return &Collector{
		a:             a,
		liveBytes:     prometheus.NewDesc("rawmem_live_bytes", "Bytes held in blocks that have not been deallocated.", nil, nil),
		liveBlocks:    prometheus.NewDesc("rawmem_live_blocks", "Blocks that have not been deallocated.", nil, nil),
		allocations:   prometheus.NewDesc("rawmem_allocations_total", "Total successful block allocations.", nil, nil),
		deallocations: prometheus.NewDesc("rawmem_deallocations_total", "Total block deallocations.", nil, nil),
		failures:      prometheus.NewDesc("rawmem_allocation_failures_total", "Total failed block allocations.", nil, nil),
		limit:         prometheus.NewDesc("rawmem_limit_bytes", "Live byte limit, 0 if unlimited.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.liveBytes
	ch <- c.liveBlocks
	ch <- c.allocations
	ch <- c.deallocations
	ch <- c.failures
	ch <- c.limit
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.a.Stats()
	ch <- prometheus.MustNewConstMetric(c.liveBytes, prometheus.GaugeValue, float64(s.LiveBytes))
	ch <- prometheus.MustNewConstMetric(c.liveBlocks, prometheus.GaugeValue, float64(s.LiveBlocks))
	ch <- prometheus.MustNewConstMetric(c.allocations, prometheus.CounterValue, float64(s.Allocations))
	ch <- prometheus.MustNewConstMetric(c.deallocations, prometheus.CounterValue, float64(s.Deallocations))
	ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(s.Failures))
	ch <- prometheus.MustNewConstMetric(c.limit, prometheus.GaugeValue, float64(s.Limit))
}
