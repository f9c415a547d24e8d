package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. ROOMLIGHT_ENGINE_ANGLE_EPSILON
const EnvPrefix = "ROOMLIGHT"

// Load builds the config with priority: defaults < file < environment < flags.
// A missing file named only by default is not an error.
func Load(args []string) (*Config, error) {
	flags, err := ParseFlags(args)
	if err != nil {
		return nil, err
	}

	cfg := Default()

	if flags.Config != "" {
		if err := loadFromFile(cfg, flags.Config); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", flags.Config, err)
		}
	} else if err := loadFromFile(cfg, "roomlight.yaml"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading config from roomlight.yaml: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	flags.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile loads config from a YAML file, merging with existing values
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnv overrides fields whose ROOMLIGHT_* variable is set
func applyEnv(cfg *Config) error {
	return envconfig.Process(EnvPrefix, cfg)
}

// Validate rejects settings the engine cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.Engine.AngleEpsilon <= 0 {
		errs = append(errs, fmt.Errorf("engine.angle_epsilon must be positive"))
	}
	if c.Engine.MergeDistance < 0 || c.Engine.HitEpsilon < 0 || c.Engine.MinShadowDistance < 0 {
		errs = append(errs, fmt.Errorf("engine distances must not be negative"))
	}
	if c.Heatmap.PixelsPerFoot <= 0 {
		errs = append(errs, fmt.Errorf("heatmap.pixels_per_foot must be positive"))
	}
	if c.Preview.PixelsPerFoot <= 0 {
		errs = append(errs, fmt.Errorf("preview.pixels_per_foot must be positive"))
	}
	if c.Preview.RecomputeTicks < 1 {
		errs = append(errs, fmt.Errorf("preview.recompute_ticks must be at least 1"))
	}
	return errors.Join(errs...)
}
