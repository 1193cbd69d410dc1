package metrics

import (
	"sync"
	"sync/atomic"
)

// Basic is a simple in-memory implementation of Provider. It is
// concurrency-safe and suitable for tests, examples, and the demo binary.
// Instruments are created on demand and reused for the same name.
type Basic struct {
	mu         sync.Mutex
	counters   map[string]*BasicCounter
	gauges     map[string]*BasicGauge
	histograms map[string]*BasicHistogram
}

// NewBasic constructs a new Basic provider.
func NewBasic() *Basic {
	return &Basic{
		counters:   make(map[string]*BasicCounter),
		gauges:     make(map[string]*BasicGauge),
		histograms: make(map[string]*BasicHistogram),
	}
}

// Counter returns the monotonic counter registered under name, creating it on
// first use.
func (b *Basic) Counter(name string) Counter {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.counters[name]
	if !ok {
		c = &BasicCounter{}
		b.counters[name] = c
	}
	return c
}

// Gauge returns the gauge registered under name, creating it on first use.
func (b *Basic) Gauge(name string) Gauge {
	b.mu.Lock()
	defer b.mu.Unlock()
	g, ok := b.gauges[name]
	if !ok {
		g = &BasicGauge{}
		b.gauges[name] = g
	}
	return g
}

// Histogram returns the histogram registered under name, creating it on first use.
func (b *Basic) Histogram(name string) Histogram {
	b.mu.Lock()
	defer b.mu.Unlock()
	h, ok := b.histograms[name]
	if !ok {
		h = &BasicHistogram{}
		b.histograms[name] = h
	}
	return h
}

// CounterValue returns the current value of the named counter, or zero if it
// was never used.
func (b *Basic) CounterValue(name string) int64 {
	b.mu.Lock()
	c, ok := b.counters[name]
	b.mu.Unlock()
	if !ok {
		return 0
	}
	return c.Value()
}

// GaugeValue returns the current value of the named gauge, or zero if it was
// never used.
func (b *Basic) GaugeValue(name string) int64 {
	b.mu.Lock()
	g, ok := b.gauges[name]
	b.mu.Unlock()
	if !ok {
		return 0
	}
	return g.Value()
}

// HistogramSummary returns a snapshot of the named histogram; the second
// return value reports whether the histogram exists.
func (b *Basic) HistogramSummary(name string) (HistogramSummary, bool) {
	b.mu.Lock()
	h, ok := b.histograms[name]
	b.mu.Unlock()
	if !ok {
		return HistogramSummary{}, false
	}
	return h.Summary(), true
}

// BasicCounter is a thread-safe monotonic counter.
type BasicCounter struct {
	v atomic.Int64
}

// Add increments the counter by n.
func (c *BasicCounter) Add(n int64) { c.v.Add(n) }

// Value returns the current value.
func (c *BasicCounter) Value() int64 { return c.v.Load() }

// BasicGauge is a thread-safe gauge.
type BasicGauge struct {
	v atomic.Int64
}

// Add moves the gauge by n (positive or negative).
func (g *BasicGauge) Add(n int64) { g.v.Add(n) }

// Set replaces the gauge value.
func (g *BasicGauge) Set(v int64) { g.v.Store(v) }

// Value returns the current value.
func (g *BasicGauge) Value() int64 { return g.v.Load() }

// BasicHistogram tracks count, sum, min, and max of observed measurements.
// It keeps no buckets; it is a lightweight aggregator, not a full histogram.
type BasicHistogram struct {
	mu    sync.Mutex
	count int64
	sum   float64
	min   float64
	max   float64
}

// Observe adds a measurement.
func (h *BasicHistogram) Observe(v float64) {
	h.mu.Lock()
	if h.count == 0 {
		h.min, h.max = v, v
	} else {
		if v < h.min {
			h.min = v
		}
		if v > h.max {
			h.max = v
		}
	}
	h.count++
	h.sum += v
	h.mu.Unlock()
}

// HistogramSummary is an immutable snapshot of a BasicHistogram.
type HistogramSummary struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
	Mean  float64
}

// Summary returns a snapshot of the histogram state at the time of call.
func (h *BasicHistogram) Summary() HistogramSummary {
	h.mu.Lock()
	s := HistogramSummary{Count: h.count, Sum: h.sum, Min: h.min, Max: h.max}
	h.mu.Unlock()
	if s.Count > 0 {
		s.Mean = s.Sum / float64(s.Count)
	}
	return s
}
