// Package config loads the optional YAML configuration consumed by the
// parwork demo commands.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML scalars like "20ms" or "1.5s" parse
// directly.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// PipelineConfig holds defaults for the pipeline command.
type PipelineConfig struct {
	Items        int      `yaml:"items,omitempty"`
	Delay        Duration `yaml:"delay,omitempty"`
	PollInterval Duration `yaml:"poll_interval,omitempty"`
	Capacity     uint     `yaml:"capacity,omitempty"`
}

// ReduceConfig holds defaults for the reduce command.
type ReduceConfig struct {
	Size        int      `yaml:"size,omitempty"`
	Workers     uint     `yaml:"workers,omitempty"`
	JoinTimeout Duration `yaml:"join_timeout,omitempty"`
}

// Config represents the top-level parwork.yml configuration. A zero field
// means "keep the command's built-in default"; explicit command-line flags
// override file values.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline,omitempty"`
	Reduce   ReduceConfig   `yaml:"reduce,omitempty"`
}

// Validate rejects values no command can honor.
func (c *Config) Validate() error {
	if c.Pipeline.Items < 0 {
		return fmt.Errorf("pipeline.items must not be negative, got %d", c.Pipeline.Items)
	}
	if c.Pipeline.Delay < 0 {
		return fmt.Errorf("pipeline.delay must not be negative, got %v", c.Pipeline.Delay.Std())
	}
	if c.Pipeline.PollInterval < 0 {
		return fmt.Errorf("pipeline.poll_interval must not be negative, got %v", c.Pipeline.PollInterval.Std())
	}
	if c.Reduce.Size < 0 {
		return fmt.Errorf("reduce.size must not be negative, got %d", c.Reduce.Size)
	}
	if c.Reduce.JoinTimeout < 0 {
		return fmt.Errorf("reduce.join_timeout must not be negative, got %v", c.Reduce.JoinTimeout.Std())
	}
	return nil
}

// Load reads and validates a parwork.yml from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
