package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tileset declares a contiguous range of global tile identifiers and the
// per-tile metadata attached to some of them. Tiles without an entry have
// no collision geometry and no properties.
type Tileset struct {
	Name      string
	FirstGID  int
	TileCount int
	Tiles     []TileEntry
}

// TileEntry is the metadata for one tile, keyed by its tileset-local id.
type TileEntry struct {
	ID         int
	Collision  []RectEntry
	Properties map[string]any // bool, int, or string values
}

// RectEntry is a collision rectangle in tile-local, unscaled coordinates.
type RectEntry struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

type tilesetFile struct {
	Tilesets []tilesetNode `yaml:"tilesets"`
}

type tilesetNode struct {
	Name      string     `yaml:"name"`
	FirstGID  int        `yaml:"first_gid"`
	TileCount int        `yaml:"tile_count"`
	Tiles     []tileNode `yaml:"tiles"`
}

type tileNode struct {
	ID         int            `yaml:"id"`
	Collision  []rectNode     `yaml:"collision"`
	Properties map[string]any `yaml:"properties"`
}

type rectNode struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LoadTilesets loads tileset definitions from a YAML file.
func LoadTilesets(path string) ([]Tileset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tilesets %s: %w", path, err)
	}
	var f tilesetFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse tilesets %s: %w", path, err)
	}

	out := make([]Tileset, 0, len(f.Tilesets))
	for _, node := range f.Tilesets {
		if node.FirstGID <= 0 || node.TileCount <= 0 {
			return nil, fmt.Errorf("tilesets %s: %q has bad range first_gid=%d tile_count=%d",
				path, node.Name, node.FirstGID, node.TileCount)
		}
		ts := Tileset{
			Name:      node.Name,
			FirstGID:  node.FirstGID,
			TileCount: node.TileCount,
		}
		for _, t := range node.Tiles {
			entry := TileEntry{ID: t.ID, Properties: t.Properties}
			for _, r := range t.Collision {
				entry.Collision = append(entry.Collision, RectEntry{
					X: r.X, Y: r.Y, Width: r.Width, Height: r.Height,
				})
			}
			ts.Tiles = append(ts.Tiles, entry)
		}
		out = append(out, ts)
	}
	return out, nil
}
