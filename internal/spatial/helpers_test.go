package spatial

import (
	"github.com/driftline/worldindex/internal/data"
)

// Tile ids used across the tests.
// Terrain: 1 grass, 2 tree (blocking), 3 boulder (partial box).
// Water: 9 still, 10 deep (declared ocean), 11 shallows (collision band),
// 12 flowing.
// Logic: 13 spawn marker.
const (
	gidGrass    = 1
	gidTree     = 2
	gidBoulder  = 3
	gidStill    = 9
	gidDeep     = 10
	gidShallows = 11
	gidFlowing  = 12
	gidSpawn    = 13
)

func testTilesets() []data.Tileset {
	return []data.Tileset{
		{
			Name:      "terrain",
			FirstGID:  1,
			TileCount: 8,
			Tiles: []data.TileEntry{
				{ID: 0},
				{ID: 1, Properties: map[string]any{"blocking": true}},
				{ID: 2, Collision: []data.RectEntry{{X: 4, Y: 4, Width: 8, Height: 8}}},
			},
		},
		{
			Name:      "water",
			FirstGID:  9,
			TileCount: 4,
			Tiles: []data.TileEntry{
				{ID: 0, Properties: map[string]any{"fishable": true}},
				{ID: 1, Properties: map[string]any{"fishable": true, "water_type": "ocean"}},
				{
					ID:         2,
					Collision:  []data.RectEntry{{X: 0, Y: 8, Width: 16, Height: 8}},
					Properties: map[string]any{"fishable": true},
				},
				{ID: 3, Properties: map[string]any{"fishable": true}},
			},
		},
		{
			Name:      "logic",
			FirstGID:  13,
			TileCount: 2,
			Tiles: []data.TileEntry{
				{ID: 0, Properties: map[string]any{"spawn_marker": true}},
			},
		},
	}
}

func testCatalog() *Catalog {
	return NewCatalog(testTilesets())
}

// waterWorld builds a square world with a single water layer from a
// row-major gid grid.
func waterWorld(size int, cells []int) *data.WorldMap {
	m := data.NewWorldMap(size, size, 16)
	m.SetTileLayer("water", cells)
	return m
}
