// worldcheck builds the spatial index for a world and reports what it
// found: collision rects, fishable cells, water regions, spawn point.
// Optionally renders a PNG overlay and answers point queries.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/driftline/worldindex/internal/config"
	"github.com/driftline/worldindex/internal/data"
	"github.com/driftline/worldindex/internal/overlay"
	"github.com/driftline/worldindex/internal/scripting"
	"github.com/driftline/worldindex/internal/spatial"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s %s %s\n", label, strings.Repeat(".", dotsLen), numStr)
}

func run() error {
	cfgPath := "config/worldindex.toml"
	if p := os.Getenv("WORLDINDEX_CONFIG"); p != "" {
		cfgPath = p
	}
	flag.StringVar(&cfgPath, "config", cfgPath, "config file path")
	pngPath := flag.String("png", "", "write a debug overlay PNG to this path")
	pxPerTile := flag.Int("px", 8, "overlay pixels per tile")
	at := flag.String("at", "", "query a world point, format x,y")
	buffer := flag.Float64("buffer", 0, "water search buffer for -at, world units")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	tilesets, err := data.LoadTilesets(cfg.World.Tilesets)
	if err != nil {
		return fmt.Errorf("load tilesets: %w", err)
	}
	catalog := spatial.NewCatalog(tilesets)
	printStat("tile definitions", catalog.Count())

	worldMap, err := data.LoadWorldMap(cfg.World.Map)
	if err != nil {
		return fmt.Errorf("load world map: %w", err)
	}
	printStat("grid width", worldMap.Width)
	printStat("grid height", worldMap.Height)

	rules := classifierRules(cfg.Classifier)
	classifier, err := scripting.NewClassifier(cfg.World.ClassifierScript, rules.Classify, log)
	if err != nil {
		return fmt.Errorf("classifier script: %w", err)
	}
	defer classifier.Close()

	engine := spatial.Build(worldMap, catalog, spatial.BuildParams{
		Scale:          cfg.World.Scale,
		WaterLayer:     cfg.Layers.Water,
		CollisionLayer: cfg.Layers.Collision,
		LogicLayer:     cfg.Layers.Logic,
		Classify:       classifier.Classify,
		Log:            log,
	})

	printStat("collision rects", engine.Collision().RectCount())
	printStat("fishable cells", len(engine.FishableCells()))
	printStat("water regions", len(engine.Regions()))
	for _, reg := range engine.Regions() {
		fmt.Printf("  region %d: %s origin=(%d,%d) size=%dx%d\n",
			reg.ID, reg.Type, reg.OriginX, reg.OriginY, reg.Width, reg.Height)
	}
	sx, sy, marked := engine.SpawnPoint()
	if marked {
		fmt.Printf("  spawn point: (%.1f, %.1f)\n", sx, sy)
	} else {
		fmt.Printf("  spawn point: (%.1f, %.1f) [map-center fallback]\n", sx, sy)
	}

	if *at != "" {
		if err := queryPoint(engine, *at, *buffer); err != nil {
			return err
		}
	}

	if *pngPath != "" {
		if err := overlay.Render(engine, *pngPath, *pxPerTile); err != nil {
			return fmt.Errorf("render overlay: %w", err)
		}
		log.Info("overlay written", zap.String("path", *pngPath))
	}
	return nil
}

// queryPoint answers every engine query for one world point.
func queryPoint(engine *spatial.Engine, at string, buffer float64) error {
	parts := strings.SplitN(at, ",", 2)
	if len(parts) != 2 {
		return fmt.Errorf("bad -at value %q, want x,y", at)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return fmt.Errorf("bad -at x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return fmt.Errorf("bad -at y: %w", err)
	}

	fmt.Printf("  point (%.1f, %.1f):\n", x, y)
	fmt.Printf("    collision: %v\n", engine.IsCollisionAt(x, y))
	fmt.Printf("    fishable: %v\n", engine.IsFishableAt(x, y))
	fmt.Printf("    water type: %s\n", engine.WaterTypeAt(x, y))
	if reg, ok := engine.RegionAt(x, y); ok {
		fmt.Printf("    region: %d (%s)\n", reg.ID, reg.Type)
	}
	fmt.Printf("    inside water collision: %v\n", engine.IsInsideWaterCollisionArea(x, y))
	if buffer > 0 {
		if hit, ok := engine.NearestWaterInRange(x, y, buffer); ok {
			fmt.Printf("    nearest water (buffer %.1f): %s region %d\n", buffer, hit.Type, hit.RegionID)
		} else {
			fmt.Printf("    nearest water (buffer %.1f): none\n", buffer)
		}
	}
	return nil
}

// classifierRules converts the config rule table into classifier form.
func classifierRules(cc config.ClassifierConfig) spatial.ClassifierRules {
	rules := spatial.ClassifierRules{
		OceanRowMin: cc.OceanRowMin,
		Default:     spatial.ParseWaterType(cc.Default),
	}
	rules.OceanTileIDs = idRanges(cc.OceanTiles)
	rules.RiverTileIDs = idRanges(cc.RiverTiles)
	return rules
}

func idRanges(pairs [][]int) []spatial.IDRange {
	out := make([]spatial.IDRange, 0, len(pairs))
	for _, p := range pairs {
		switch len(p) {
		case 1:
			out = append(out, spatial.IDRange{Lo: p[0], Hi: p[0]})
		case 2:
			out = append(out, spatial.IDRange{Lo: p[0], Hi: p[1]})
		}
	}
	return out
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
