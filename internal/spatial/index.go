package spatial

import (
	"go.uber.org/zap"

	"github.com/driftline/worldindex/internal/data"
	"github.com/driftline/worldindex/internal/geom"
)

// BuildParams configures the single build pass over a world map.
type BuildParams struct {
	// Scale converts unscaled map units to world units.
	Scale float64

	// Layer names. A named layer that is absent from the map is treated
	// as empty, never as an error.
	WaterLayer     string
	CollisionLayer string
	LogicLayer     string

	// Classify overrides the water-type classifier; nil uses the
	// default rule table.
	Classify ClassifyFunc

	Log *zap.Logger
}

// Engine is the read API over the built indices: point collision, point
// fishability, and water-proximity queries. All methods are pure and
// safe for concurrent use; nothing is mutated after Build returns.
type Engine struct {
	width    int
	height   int
	scale    float64
	cellSize float64 // world units per tile

	catalog   *Catalog
	collision *CollisionIndex

	cells        map[TileCoord]WaterType
	regionByCell map[TileCoord]int
	regions      []Region
	waterGeom    map[TileCoord][]geom.Rect // water tiles' own collision rects

	spawnX, spawnY float64
	spawnFound     bool
}

// Build runs the whole load-time pass: tile collision, layer obstacles,
// water regions, and spawn resolution. The world map and catalog are
// treated as read-only from here on.
func Build(m *data.WorldMap, catalog *Catalog, p BuildParams) *Engine {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	if p.Scale <= 0 {
		p.Scale = 1
	}
	cellSize := m.TileSize * p.Scale

	e := &Engine{
		width:    m.Width,
		height:   m.Height,
		scale:    p.Scale,
		cellSize: cellSize,
		catalog:  catalog,
	}

	// Per-tile collision from every tile layer. The water layer's own
	// rects are kept aside: water-area checks must never see geometry
	// contributed by other layers on the same cell.
	e.collision = NewCollisionIndex(catalog, cellSize)
	e.waterGeom = make(map[TileCoord][]geom.Rect)
	for _, layer := range m.TileLayers() {
		for y := 0; y < layer.Height; y++ {
			for x := 0; x < layer.Width; x++ {
				gid := layer.GID(x, y)
				if gid == 0 {
					continue
				}
				rects := e.collision.AddTileCollision(float64(x)*cellSize, float64(y)*cellSize, gid, p.Scale)
				if layer.Name == p.WaterLayer && len(rects) > 0 {
					e.waterGeom[TileCoord{X: x, Y: y}] = rects
				}
			}
		}
	}

	// Placed objects: tile-referencing objects (buildings) contribute
	// their tile's geometry; plain rectangles on the collision layer are
	// broad obstacles.
	for _, layer := range m.ObjectLayers() {
		for _, o := range layer.Objects {
			switch {
			case o.GID > 0:
				e.collision.AddTileCollision(o.X*p.Scale, o.Y*p.Scale, o.GID, p.Scale)
			case layer.Name == p.CollisionLayer:
				e.collision.AddLayerRect(geom.Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height}.Scale(p.Scale))
			}
		}
	}

	// Water regions.
	builder := NewRegionBuilder(catalog, p.Classify, log)
	e.cells, e.regionByCell, e.regions = builder.Build(m.TileLayer(p.WaterLayer))

	// Spawn point.
	e.spawnX, e.spawnY, e.spawnFound = resolveSpawn(m.TileLayer(p.LogicLayer), catalog, cellSize)
	if !e.spawnFound {
		// Documented fallback: map center.
		e.spawnX = float64(m.Width) * cellSize / 2
		e.spawnY = float64(m.Height) * cellSize / 2
	}

	log.Info("spatial index built",
		zap.Int("width", m.Width),
		zap.Int("height", m.Height),
		zap.Int("collision_rects", e.collision.RectCount()),
		zap.Int("fishable_cells", len(e.cells)),
		zap.Int("regions", len(e.regions)),
		zap.Bool("spawn_marker", e.spawnFound))
	return e
}

// Collision returns the underlying collision index.
func (e *Engine) Collision() *CollisionIndex {
	return e.collision
}

// Regions returns the built region list. Must not be modified.
func (e *Engine) Regions() []Region {
	return e.regions
}

// FishableCells returns a copy of the fishable-cell map, for debug
// overlays and tooling.
func (e *Engine) FishableCells() map[TileCoord]WaterType {
	out := make(map[TileCoord]WaterType, len(e.cells))
	for k, v := range e.cells {
		out[k] = v
	}
	return out
}

// Bounds returns the grid size in tiles.
func (e *Engine) Bounds() (width, height int) {
	return e.width, e.height
}

// CellSize returns the world-space edge length of one tile.
func (e *Engine) CellSize() float64 {
	return e.cellSize
}

// SpawnPoint returns the resolved spawn position in world coordinates
// and whether it came from a spawn marker (false means the map-center
// fallback).
func (e *Engine) SpawnPoint() (x, y float64, marked bool) {
	return e.spawnX, e.spawnY, e.spawnFound
}
