package parwork

import (
	"runtime"
	"time"

	"github.com/ygrebnov/errorc"

	"github.com/nvoskov/parwork/metrics"
)

// config holds the shared configuration consumed by the package entry points.
// Each entry point honors the subset of fields that applies to it; the rest
// are ignored.
type config struct {
	// Workers defines how many reducer workers (and therefore partitions)
	// Reduce, MapReduce and Sum dispatch.
	// Zero (default) means runtime.NumCPU() at call time.
	// Default: 0
	Workers uint

	// JoinTimeout bounds how long a reduction waits for its workers to finish.
	// Zero (default) means the join waits indefinitely.
	// Default: 0
	JoinTimeout time.Duration

	// EmitDelay is the producer's pause between consecutive pushes,
	// simulating upstream latency.
	// Default: 0 (no pause)
	EmitDelay time.Duration

	// PollInterval switches the consumer from blocking waits to polling with
	// the given idle interval between empty pops. The interval is jittered to
	// desynchronize concurrent pollers.
	// Default: 0 (blocking waits)
	PollInterval time.Duration

	// QueueCapacity is the initial capacity of the queue buffer. The buffer
	// still grows beyond it as needed.
	// Default: 0
	QueueCapacity uint

	// Metrics receives queue and reducer measurements.
	// Nil (default) means all measurements are discarded.
	// Default: nil
	Metrics metrics.Provider
}

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		Workers:       0, // runtime.NumCPU() at call time
		JoinTimeout:   0, // unbounded join
		EmitDelay:     0,
		PollInterval:  0, // blocking consumer
		QueueCapacity: 0,
		Metrics:       nil, // discard
	}
}

// validateConfig performs lightweight invariants checks.
// Individual options already reject invalid inputs; this is reserved for
// cross-field validation expansions.
func validateConfig(_ *config) error {
	return nil
}

// newConfig assembles a config from defaults and options.
func newConfig(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return config{}, err
	}
	return cfg, nil
}

// workerCount resolves the effective number of reducer workers.
func (c *config) workerCount() int {
	if c.Workers == 0 {
		return runtime.NumCPU()
	}
	return int(c.Workers)
}

// provider resolves the effective metrics provider.
func (c *config) provider() metrics.Provider {
	if c.Metrics == nil {
		return metrics.NewNoop()
	}
	return c.Metrics
}

// Option configures an entry point of this package. Options not applicable to
// an entry point are ignored by it. An option returns an error on invalid
// input instead of panicking.
type Option func(*config) error

// WithWorkers sets the number of reducer workers (must be > 0).
// Each worker owns exactly one partition of the input.
func WithWorkers(n uint) Option {
	return func(cfg *config) error {
		if n == 0 {
			return errorc.With(ErrInvalidWorkerCount, errorc.String("", "WithWorkers requires n > 0"))
		}
		cfg.Workers = n
		return nil
	}
}

// WithJoinTimeout bounds the reducer's join phase (must be > 0).
// A join that exceeds the bound fails with ErrJoinTimeout.
func WithJoinTimeout(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithJoinTimeout requires d > 0"))
		}
		cfg.JoinTimeout = d
		return nil
	}
}

// WithEmitDelay sets the producer's pause between consecutive pushes (must not be negative).
func WithEmitDelay(d time.Duration) Option {
	return func(cfg *config) error {
		if d < 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithEmitDelay requires d >= 0"))
		}
		cfg.EmitDelay = d
		return nil
	}
}

// WithPollInterval switches the consumer to polling mode with the given idle
// interval between empty pops (must be > 0).
func WithPollInterval(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithPollInterval requires d > 0"))
		}
		cfg.PollInterval = d
		return nil
	}
}

// WithQueueCapacity sets the initial capacity of the queue buffer.
func WithQueueCapacity(n uint) Option {
	return func(cfg *config) error { cfg.QueueCapacity = n; return nil }
}

// WithMetrics sets the metrics provider receiving queue and reducer measurements.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a non-nil provider"))
		}
		cfg.Metrics = p
		return nil
	}
}
