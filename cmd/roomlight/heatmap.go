package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"chosenoffset.com/roomlight/internal/config"
	"chosenoffset.com/roomlight/internal/core/geometry"
	"chosenoffset.com/roomlight/internal/core/shadows"
	"chosenoffset.com/roomlight/internal/render/heatmap"
	"chosenoffset.com/roomlight/internal/world/room"
)

func writeHeatmap(cfg *config.Config, scene *room.Scene, results []shadows.Result, bounds geometry.BoundingBox, log *zap.Logger) error {
	m, err := heatmap.Render(results, bounds, cfg.Heatmap.PixelsPerFoot)
	if err != nil {
		return fmt.Errorf("rendering heatmap: %w", err)
	}

	f, err := os.Create(cfg.Heatmap.Output)
	if err != nil {
		return fmt.Errorf("creating heatmap file: %w", err)
	}
	if err := m.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("writing heatmap: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing heatmap file: %w", err)
	}

	stats := m.Stats(scene.State.Outline())
	log.Info("heatmap written",
		zap.String("path", cfg.Heatmap.Output),
		zap.Int("width", m.Width),
		zap.Int("height", m.Height),
		zap.Float64("lit_fraction", stats.LitFraction),
		zap.Float64("dead_zone_fraction", stats.DeadZoneFraction),
		zap.Float64("max_overlap", stats.MaxOverlap))
	return nil
}
