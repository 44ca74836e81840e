package spatial

import (
	"github.com/driftline/worldindex/internal/geom"
)

// TileCoord addresses one grid cell.
type TileCoord struct {
	X int
	Y int
}

// CollisionIndex stores world-space blocking rectangles from two sources:
// a short list of broad hand-authored obstacles, and per-tile collision
// geometry bucketed by grid cell so point tests never scan the whole
// world. A rectangle is bucketed under every cell it overlaps; placed
// objects sit at arbitrary positions and tile geometry may spill past
// its cell. Mutated only during the build pass, read-only afterwards.
type CollisionIndex struct {
	catalog    *Catalog
	layerRects []geom.Rect
	rects      []geom.Rect               // every tile-sourced rect, once
	tileRects  map[TileCoord][]geom.Rect // world-space, keyed by overlapped cell
	cellSize   float64                   // world units per tile (tileSize x scale)
}

// NewCollisionIndex creates an empty index. cellSize is the world-space
// edge length of one tile.
func NewCollisionIndex(catalog *Catalog, cellSize float64) *CollisionIndex {
	return &CollisionIndex{
		catalog:   catalog,
		tileRects: make(map[TileCoord][]geom.Rect),
		cellSize:  cellSize,
	}
}

// AddLayerRect appends a world-space obstacle rectangle from an explicit
// collision layer. Zero-area rectangles are kept but never match.
func (c *CollisionIndex) AddLayerRect(r geom.Rect) {
	if r.W < 0 || r.H < 0 {
		return
	}
	c.layerRects = append(c.layerRects, r)
}

// AddTileCollision resolves the tile's collision rectangles into world
// space at the placement origin and buckets each one under every cell it
// overlaps. Returns the resolved rectangles so callers can track the
// geometry of specific layers.
func (c *CollisionIndex) AddTileCollision(originX, originY float64, gid int, scale float64) []geom.Rect {
	rects := c.worldRects(originX, originY, gid, scale)
	for _, r := range rects {
		c.insert(r)
	}
	return rects
}

// worldRects resolves a tile's collision geometry, scaled and translated
// to the placement origin. Nil when the tile declares nothing.
func (c *CollisionIndex) worldRects(originX, originY float64, gid int, scale float64) []geom.Rect {
	def := c.catalog.Resolve(gid)
	if def == nil {
		return nil
	}
	local := def.Collision
	if len(local) == 0 && def.Bool(PropBlocking) {
		// Blocking tile with no declared geometry blocks the whole tile.
		local = []geom.Rect{{W: c.cellSize / scale, H: c.cellSize / scale}}
	}
	if len(local) == 0 {
		return nil
	}
	out := make([]geom.Rect, 0, len(local))
	for _, r := range local {
		out = append(out, r.Scale(scale).Translate(originX, originY))
	}
	return out
}

func (c *CollisionIndex) insert(r geom.Rect) {
	c.rects = append(c.rects, r)
	x0 := int(fastFloorDiv(r.X, c.cellSize))
	y0 := int(fastFloorDiv(r.Y, c.cellSize))
	x1 := int(fastFloorDiv(r.X+r.W, c.cellSize))
	y1 := int(fastFloorDiv(r.Y+r.H, c.cellSize))
	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			key := TileCoord{X: tx, Y: ty}
			c.tileRects[key] = append(c.tileRects[key], r)
		}
	}
}

// TestPoint reports whether the point lies inside any stored rectangle.
// The bucket for the point's own cell holds every tile-sourced rect that
// can contain it; the layer-rect list is the broad-obstacle fallback.
func (c *CollisionIndex) TestPoint(x, y float64) bool {
	for _, r := range c.tileRects[c.tileAt(x, y)] {
		if r.Contains(x, y) {
			return true
		}
	}
	for _, r := range c.layerRects {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}

// RectsAt returns the world-space rectangles overlapping a cell. A rect
// spanning several cells appears in each of their buckets. The returned
// slice must not be modified.
func (c *CollisionIndex) RectsAt(tc TileCoord) []geom.Rect {
	return c.tileRects[tc]
}

// Rects returns every tile-sourced rectangle exactly once. Must not be
// modified.
func (c *CollisionIndex) Rects() []geom.Rect {
	return c.rects
}

// LayerRects returns the broad-obstacle list. Must not be modified.
func (c *CollisionIndex) LayerRects() []geom.Rect {
	return c.layerRects
}

// RectCount returns the total number of distinct stored rectangles.
func (c *CollisionIndex) RectCount() int {
	return len(c.layerRects) + len(c.rects)
}

func (c *CollisionIndex) tileAt(x, y float64) TileCoord {
	return TileCoord{X: int(fastFloorDiv(x, c.cellSize)), Y: int(fastFloorDiv(y, c.cellSize))}
}

// fastFloorDiv is floor(v/size) that stays correct for negative v.
func fastFloorDiv(v, size float64) float64 {
	q := v / size
	f := float64(int(q))
	if q < 0 && q != f {
		f--
	}
	return f
}
