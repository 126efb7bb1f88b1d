// Package config handles YAML run-configuration parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"benchkit/internal/core"
	"benchkit/internal/stats"
)

// RunConfig is the on-disk form of a measurement configuration.
type RunConfig struct {
	Metrics          []string                   `yaml:"metrics"`
	WarmupIterations int                        `yaml:"warmup_iterations"`
	MaxIterations    int                        `yaml:"max_iterations"`
	MaxDuration      time.Duration              `yaml:"max_duration"`
	TimeUnits        string                     `yaml:"time_units"`
	ScalingFactor    int                        `yaml:"scaling_factor"`
	TargetRate       int                        `yaml:"target_rate"`
	Thresholds       map[string]ThresholdConfig `yaml:"thresholds,omitempty"`
}

// ThresholdConfig is a per-metric pass/fail bound. Zero fields are not
// checked.
type ThresholdConfig struct {
	Percentile float64 `yaml:"percentile"`
	Max        int64   `yaml:"max"`
	Min        int64   `yaml:"min"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var rc RunConfig
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &rc, nil
}

// Configuration converts the on-disk form into run parameters. Unknown
// metric names and unit strings are errors.
func (rc *RunConfig) Configuration() (core.Configuration, error) {
	var cfg core.Configuration

	for _, name := range rc.Metrics {
		m, err := core.ParseMetric(name)
		if err != nil {
			return cfg, fmt.Errorf("metrics: %w", err)
		}
		cfg.Metrics = append(cfg.Metrics, m)
	}

	units, err := stats.ParseUnits(rc.TimeUnits)
	if err != nil {
		return cfg, fmt.Errorf("time_units: %w", err)
	}

	cfg.WarmupIterations = rc.WarmupIterations
	cfg.MaxIterations = rc.MaxIterations
	cfg.MaxDuration = rc.MaxDuration
	cfg.TimeUnits = units
	cfg.ScalingFactor = rc.ScalingFactor
	cfg.TargetRate = rc.TargetRate

	if len(rc.Thresholds) > 0 {
		cfg.Thresholds = make(map[core.Metric]core.Threshold, len(rc.Thresholds))
		for name, tc := range rc.Thresholds {
			m, err := core.ParseMetric(name)
			if err != nil {
				return cfg, fmt.Errorf("thresholds: %w", err)
			}
			cfg.Thresholds[m] = core.Threshold{
				Percentile: tc.Percentile,
				Max:        tc.Max,
				Min:        tc.Min,
			}
		}
	}

	return cfg, nil
}
