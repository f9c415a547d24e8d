// Package config holds the tool settings. Values are layered: defaults, then
// a YAML file, then ROOMLIGHT_* environment variables, then command-line
// flags.
package config

import (
	"chosenoffset.com/roomlight/internal/core/shadows"
)

// Config holds all settings
type Config struct {
	Engine  EngineConfig  `yaml:"engine" envconfig:"engine"`
	Scene   SceneConfig   `yaml:"scene" envconfig:"scene"`
	Heatmap HeatmapConfig `yaml:"heatmap" envconfig:"heatmap"`
	Preview PreviewConfig `yaml:"preview" envconfig:"preview"`
	Logging LoggingConfig `yaml:"logging" envconfig:"logging"`
}

// EngineConfig holds the sweep and projector tolerances (feet / radians)
type EngineConfig struct {
	AngleEpsilon      float64 `yaml:"angle_epsilon" envconfig:"angle_epsilon"`
	MergeDistance     float64 `yaml:"merge_distance" envconfig:"merge_distance"`
	HitEpsilon        float64 `yaml:"hit_epsilon" envconfig:"hit_epsilon"`
	MinShadowDistance float64 `yaml:"min_shadow_distance" envconfig:"min_shadow_distance"`
}

// SceneConfig holds the scene input settings
type SceneConfig struct {
	Path          string  `yaml:"path" envconfig:"path"`
	BoundsPadding float64 `yaml:"bounds_padding" envconfig:"bounds_padding"` // Feet added around derived bounds
}

// HeatmapConfig holds illumination export settings
type HeatmapConfig struct {
	Output        string  `yaml:"output" envconfig:"output"` // PNG path, empty to skip
	PixelsPerFoot float64 `yaml:"pixels_per_foot" envconfig:"pixels_per_foot"`
}

// PreviewConfig holds the interactive window settings
type PreviewConfig struct {
	Enabled        bool    `yaml:"enabled" envconfig:"enabled"`
	Width          int     `yaml:"width" envconfig:"width"`
	Height         int     `yaml:"height" envconfig:"height"`
	PixelsPerFoot  float64 `yaml:"pixels_per_foot" envconfig:"pixels_per_foot"`
	RecomputeTicks int     `yaml:"recompute_ticks" envconfig:"recompute_ticks"` // Minimum ticks between recomputes while dragging
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level   string `yaml:"level" envconfig:"level"`
	LogFile string `yaml:"log_file" envconfig:"log_file"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	opts := shadows.DefaultOptions()
	return &Config{
		Engine: EngineConfig{
			AngleEpsilon:      opts.AngleEpsilon,
			MergeDistance:     opts.MergeDistance,
			HitEpsilon:        opts.HitEpsilon,
			MinShadowDistance: opts.MinShadowDistance,
		},
		Scene: SceneConfig{
			BoundsPadding: 1,
		},
		Heatmap: HeatmapConfig{
			PixelsPerFoot: 20,
		},
		Preview: PreviewConfig{
			Width:          1280,
			Height:         800,
			PixelsPerFoot:  40,
			RecomputeTicks: 3,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ShadowOptions converts the engine section for the shadows package
func (c *Config) ShadowOptions() shadows.Options {
	return shadows.Options{
		AngleEpsilon:      c.Engine.AngleEpsilon,
		MergeDistance:     c.Engine.MergeDistance,
		HitEpsilon:        c.Engine.HitEpsilon,
		MinShadowDistance: c.Engine.MinShadowDistance,
	}
}
