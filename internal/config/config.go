// Package config holds the tunable constants of the refinement loop:
// metric targets, lock tolerances, and iteration settings. Defaults are
// embedded and loaded once; user files may override individual values.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/prosepolish/prosepolish/internal/evaluator"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Duration wraps time.Duration with YAML parsing of strings like "1.5s"
type Duration time.Duration

// UnmarshalYAML parses a duration string
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Iteration holds the loop settings
type Iteration struct {
	// MaxIterations bounds committed iterations per run
	MaxIterations int `yaml:"max_iterations"`

	// MaxStrategies bounds strategies applied per iteration
	MaxStrategies int `yaml:"max_strategies"`

	// Delay paces successive iterations to respect external rate limits.
	// It is a tuned constant, not a correctness requirement.
	Delay Duration `yaml:"delay"`
}

// Config is the full tunable configuration
type Config struct {
	// TargetScore is the overall score at which a run stops
	TargetScore float64 `yaml:"target_score"`

	// Targets are the per-metric thresholds
	Targets evaluator.Targets `yaml:"targets"`

	// Tolerances allow small per-metric slack before a locked metric's
	// regression rejects an iteration. Metrics without an entry get no
	// slack; dialogue balance uses a range check and pattern count an
	// exact non-increase regardless of this table.
	Tolerances map[string]float64 `yaml:"tolerances"`

	Iteration Iteration `yaml:"iteration"`
}

// Tolerance returns the slack for a metric, zero when unset
func (c *Config) Tolerance(metric string) float64 {
	return c.Tolerances[metric]
}

// Default returns the embedded default configuration
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		// The embedded defaults are validated by tests; fall back to a
		// usable configuration if they are ever broken.
		return &Config{
			TargetScore: evaluator.ExcellenceScore,
			Targets:     evaluator.DefaultTargets(),
			Iteration:   Iteration{MaxIterations: 15, MaxStrategies: 3},
		}
	}
	return &cfg
}

// Load returns the defaults overlaid with values from a YAML file
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
