package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"chosenoffset.com/roomlight/internal/config"
	"chosenoffset.com/roomlight/internal/logger"
	"chosenoffset.com/roomlight/internal/preview"
	ebitenrender "chosenoffset.com/roomlight/internal/render/ebiten"
	"chosenoffset.com/roomlight/internal/render/lighting"
	"chosenoffset.com/roomlight/internal/world/room"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "roomlight: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Log

	if cfg.Scene.Path == "" {
		return errors.New("no scene given, use -scene or scene.path")
	}

	scene, err := room.LoadScene(cfg.Scene.Path)
	if err != nil {
		return err
	}
	bounds := scene.ViewBounds(cfg.Scene.BoundsPadding)
	log.Info("scene loaded",
		zap.String("name", scene.Name),
		zap.Int("walls", len(scene.State.Walls)),
		zap.Int("doors", len(scene.State.Doors)),
		zap.Int("obstacles", len(scene.State.Obstacles)),
		zap.Int("lights", len(scene.Lights)))

	manager := lighting.NewManager(cfg.ShadowOptions(), log)
	for _, l := range scene.Lights {
		if err := manager.AddLight(l); err != nil {
			return err
		}
	}

	results := manager.Recompute(scene.State, bounds)
	for _, res := range results {
		l := res.Visibility.Light
		if !res.Visibility.Lit() {
			log.Warn("light has no visibility polygon", zap.String("light", l.ID),
				zap.Float64("x", l.Position.X), zap.Float64("y", l.Position.Y))
			continue
		}
		log.Info("light",
			zap.String("light", l.ID),
			zap.Int("vertices", len(res.Visibility.Polygon)),
			zap.Float64("lit_area", res.Visibility.Area()),
			zap.Int("shadows", len(res.Shadows)))
	}

	if cfg.Heatmap.Output != "" {
		if err := writeHeatmap(cfg, scene, results, bounds, log); err != nil {
			return err
		}
	}

	if cfg.Preview.Enabled {
		game := preview.NewGame(ebitenrender.NewRenderer(), ebitenrender.NewInputManager(), scene, bounds, manager, preview.Options{
			Width:          cfg.Preview.Width,
			Height:         cfg.Preview.Height,
			PixelsPerFoot:  cfg.Preview.PixelsPerFoot,
			RecomputeTicks: cfg.Preview.RecomputeTicks,
		}, log)
		return preview.Run(ebitenrender.NewEngine(), game, "roomlight - "+scene.Name)
	}
	return nil
}
