package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	World      WorldConfig      `toml:"world"`
	Layers     LayersConfig     `toml:"layers"`
	Classifier ClassifierConfig `toml:"classifier"`
	Logging    LoggingConfig    `toml:"logging"`
}

type WorldConfig struct {
	Map              string  `toml:"map"`
	Tilesets         string  `toml:"tilesets"`
	ClassifierScript string  `toml:"classifier_script"` // optional Lua override
	Scale            float64 `toml:"scale"`
}

type LayersConfig struct {
	Water     string `toml:"water"`
	Collision string `toml:"collision"`
	Logic     string `toml:"logic"`
}

// ClassifierConfig is the default water-type rule table. Worlds tune
// thresholds here or replace the classifier with a script.
type ClassifierConfig struct {
	Default     string  `toml:"default"`       // "pond", "river", or "ocean"
	OceanRowMin int     `toml:"ocean_row_min"` // -1 disables the row rule
	OceanTiles  [][]int `toml:"ocean_tiles"`   // inclusive [lo, hi] gid ranges
	RiverTiles  [][]int `toml:"river_tiles"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		World: WorldConfig{
			Map:      "data/world.yaml",
			Tilesets: "data/tilesets.yaml",
			Scale:    1.0,
		},
		Layers: LayersConfig{
			Water:     "water",
			Collision: "collision",
			Logic:     "logic",
		},
		Classifier: ClassifierConfig{
			Default:     "pond",
			OceanRowMin: -1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
