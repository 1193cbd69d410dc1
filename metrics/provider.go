// Package metrics defines the minimal instrumentation surface used by parwork
// and two reference implementations: Noop (discard everything) and Basic
// (in-memory, with snapshot accessors for tests and demo output).
package metrics

// Provider constructs instruments by name. Requesting the same name twice
// must return the same instrument. Implementations must be safe for
// concurrent use.
//
// Keep this interface minimal and stable; adapters for real metrics backends
// should live with the application, not here.
type Provider interface {
	Counter(name string) Counter
	Gauge(name string) Gauge
	Histogram(name string) Histogram
}

// Counter records monotonic counts (e.g. items pushed).
// Methods must be safe for concurrent use.
type Counter interface {
	Add(n int64)
}

// Gauge records a value that moves both ways (e.g. current queue depth).
// Methods must be safe for concurrent use.
type Gauge interface {
	Add(n int64)
	Set(v int64)
}

// Histogram records a distribution of float64 measurements
// (e.g. reduction durations in seconds).
// Methods must be safe for concurrent use.
type Histogram interface {
	Observe(v float64)
}
