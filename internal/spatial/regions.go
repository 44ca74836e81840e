package spatial

import (
	"go.uber.org/zap"

	"github.com/driftline/worldindex/internal/data"
)

// WaterType classifies a fishable cell.
type WaterType uint8

const (
	WaterNone WaterType = iota
	WaterPond
	WaterRiver
	WaterOcean
)

// String returns the lowercase name used in assets and scripts.
func (w WaterType) String() string {
	switch w {
	case WaterPond:
		return "pond"
	case WaterRiver:
		return "river"
	case WaterOcean:
		return "ocean"
	}
	return "none"
}

// ParseWaterType maps an asset string to a WaterType, WaterNone when unknown.
func ParseWaterType(s string) WaterType {
	switch s {
	case "pond":
		return WaterPond
	case "river":
		return WaterRiver
	case "ocean":
		return WaterOcean
	}
	return WaterNone
}

// Region is the bounding box of one maximal 4-connected group of
// same-type fishable cells. The box contains every member cell but may
// also cover non-fishable or foreign-type cells; that imprecision is a
// deliberate trade for O(1) lookups. Immutable once built.
type Region struct {
	ID      int
	OriginX int // tile coords
	OriginY int
	Width   int // in tiles
	Height  int
	Type    WaterType
}

// ClassifyContext is what a classifier sees for one fishable cell.
type ClassifyContext struct {
	GID          int
	TileX        int
	TileY        int
	GridWidth    int
	GridHeight   int
	DeclaredType string // the tile's water_type property, "" when absent
}

// ClassifyFunc assigns a WaterType to a fishable cell. Must be
// deterministic: the builder calls it exactly once per cell and region
// identity depends on its output.
type ClassifyFunc func(ClassifyContext) WaterType

// IDRange is an inclusive global-tile-id range.
type IDRange struct {
	Lo int
	Hi int
}

func (r IDRange) contains(gid int) bool {
	return gid >= r.Lo && gid <= r.Hi
}

// ClassifierRules is the default data-driven classifier: an explicit
// water_type tile property wins, then declared gid sub-ranges, then a
// grid-row threshold, then the default type. Worlds override thresholds
// through config or replace the whole function with a script.
type ClassifierRules struct {
	OceanRowMin  int // rows at or past this index are ocean; -1 disables
	OceanTileIDs []IDRange
	RiverTileIDs []IDRange
	Default      WaterType
}

// Classify applies the rule table.
func (r ClassifierRules) Classify(ctx ClassifyContext) WaterType {
	if t := ParseWaterType(ctx.DeclaredType); t != WaterNone {
		return t
	}
	for _, ids := range r.OceanTileIDs {
		if ids.contains(ctx.GID) {
			return WaterOcean
		}
	}
	for _, ids := range r.RiverTileIDs {
		if ids.contains(ctx.GID) {
			return WaterRiver
		}
	}
	if r.OceanRowMin >= 0 && ctx.TileY >= r.OceanRowMin {
		return WaterOcean
	}
	if r.Default == WaterNone {
		return WaterPond
	}
	return r.Default
}

// RegionBuilder marks fishable cells on the water layer and partitions
// them into bounding-box regions. One build pass per world load.
type RegionBuilder struct {
	catalog  *Catalog
	classify ClassifyFunc
	log      *zap.Logger
}

// NewRegionBuilder creates a builder. classify may be nil, in which case
// the zero ClassifierRules table is used.
func NewRegionBuilder(catalog *Catalog, classify ClassifyFunc, log *zap.Logger) *RegionBuilder {
	if classify == nil {
		classify = ClassifierRules{OceanRowMin: -1}.Classify
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RegionBuilder{catalog: catalog, classify: classify, log: log}
}

// Build scans the water layer and returns the fishable-cell map, each
// cell's region id, and the region list. A nil layer yields no cells and
// no regions.
func (b *RegionBuilder) Build(layer *data.TileLayer) (map[TileCoord]WaterType, map[TileCoord]int, []Region) {
	cells := make(map[TileCoord]WaterType)
	member := make(map[TileCoord]int)
	if layer == nil {
		return cells, member, nil
	}

	// Pass 1: mark fishable cells with their water type.
	for y := 0; y < layer.Height; y++ {
		for x := 0; x < layer.Width; x++ {
			gid := layer.GID(x, y)
			if gid == 0 {
				continue
			}
			def := b.catalog.Resolve(gid)
			if def == nil || !def.Bool(PropFishable) {
				continue
			}
			declared, _ := def.Str(PropWaterType)
			t := b.classify(ClassifyContext{
				GID:          gid,
				TileX:        x,
				TileY:        y,
				GridWidth:    layer.Width,
				GridHeight:   layer.Height,
				DeclaredType: declared,
			})
			if t == WaterNone {
				continue
			}
			cells[TileCoord{x, y}] = t
		}
	}

	// Pass 2: group cells into 4-connected same-type components and emit
	// one bounding box per component. Row-major discovery keeps region
	// ids deterministic. The fill uses an explicit stack; recursion depth
	// would track water-body size on large maps.
	visited := make(map[TileCoord]bool, len(cells))
	var regions []Region
	stack := make([]TileCoord, 0, 64)

	for y := 0; y < layer.Height; y++ {
		for x := 0; x < layer.Width; x++ {
			seed := TileCoord{x, y}
			t, ok := cells[seed]
			if !ok || visited[seed] {
				continue
			}

			id := len(regions)
			minX, minY := seed.X, seed.Y
			maxX, maxY := seed.X, seed.Y
			visited[seed] = true
			member[seed] = id
			stack = append(stack[:0], seed)

			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				if cur.X < minX {
					minX = cur.X
				}
				if cur.X > maxX {
					maxX = cur.X
				}
				if cur.Y < minY {
					minY = cur.Y
				}
				if cur.Y > maxY {
					maxY = cur.Y
				}

				// 4-connectivity only; diagonal neighbours never merge.
				for _, n := range [4]TileCoord{
					{cur.X, cur.Y - 1},
					{cur.X, cur.Y + 1},
					{cur.X - 1, cur.Y},
					{cur.X + 1, cur.Y},
				} {
					if visited[n] || cells[n] != t {
						continue
					}
					visited[n] = true
					member[n] = id
					stack = append(stack, n)
				}
			}

			regions = append(regions, Region{
				ID:      id,
				OriginX: minX,
				OriginY: minY,
				Width:   maxX - minX + 1,
				Height:  maxY - minY + 1,
				Type:    t,
			})
		}
	}

	b.log.Debug("water regions built",
		zap.Int("fishable_cells", len(cells)),
		zap.Int("regions", len(regions)))
	return cells, member, regions
}
