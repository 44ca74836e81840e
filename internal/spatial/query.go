package spatial

import (
	"math"

	"github.com/driftline/worldindex/internal/geom"
)

// IsCollisionAt reports whether the world point hits blocking geometry.
// Out-of-grid points are never collisions.
func (e *Engine) IsCollisionAt(x, y float64) bool {
	tc := e.tileAt(x, y)
	if !e.inBounds(tc) {
		return false
	}
	return e.collision.TestPoint(x, y)
}

// IsFishableAt reports whether the world point lies on a fishable tile.
func (e *Engine) IsFishableAt(x, y float64) bool {
	return e.WaterTypeAt(x, y) != WaterNone
}

// WaterTypeAt returns the water type of the tile under the world point,
// WaterNone for dry or out-of-grid points.
func (e *Engine) WaterTypeAt(x, y float64) WaterType {
	tc := e.tileAt(x, y)
	if !e.inBounds(tc) {
		return WaterNone
	}
	return e.cells[tc]
}

// RegionAt returns the region owning the tile under the world point.
func (e *Engine) RegionAt(x, y float64) (Region, bool) {
	tc := e.tileAt(x, y)
	if !e.inBounds(tc) {
		return Region{}, false
	}
	id, ok := e.regionByCell[tc]
	if !ok {
		return Region{}, false
	}
	return e.regions[id], true
}

// IsInsideWaterCollisionArea reports whether the point is on a fishable
// tile AND inside that tile's own collision rectangle. A fishable tile
// that declares no collision geometry counts as water in its entirety.
func (e *Engine) IsInsideWaterCollisionArea(x, y float64) bool {
	tc := e.tileAt(x, y)
	if !e.inBounds(tc) {
		return false
	}
	if e.cells[tc] == WaterNone {
		return false
	}
	rects := e.waterGeom[tc]
	if len(rects) == 0 {
		return true
	}
	for _, r := range rects {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}

// WaterHit identifies the water body found by a proximity query.
type WaterHit struct {
	Type     WaterType
	RegionID int
}

// NearestWaterInRange finds the closest fishable water whose collision
// rectangle, expanded by buffer, contains the point — excluding points
// already inside the water itself ("cast in from the bank": inside is
// inside, not nearby). The search visits only tiles within
// ceil((buffer+cellSize)/cellSize) tiles of the point, independent of
// grid size.
func (e *Engine) NearestWaterInRange(x, y, buffer float64) (WaterHit, bool) {
	if e.IsInsideWaterCollisionArea(x, y) {
		return WaterHit{}, false
	}

	var best WaterHit
	bestDist := math.Inf(1)
	found := false

	center := e.tileAt(x, y)
	radius := int(math.Ceil((buffer + e.cellSize) / e.cellSize))
	visitRange(center.X, center.Y, radius, e.width, e.height, func(tx, ty int) bool {
		tc := TileCoord{X: tx, Y: ty}
		t, ok := e.cells[tc]
		if !ok {
			return true
		}
		for _, r := range e.waterRects(tc) {
			if !r.Expand(buffer).Contains(x, y) || r.Contains(x, y) {
				continue
			}
			if d := r.DistSq(x, y); d < bestDist {
				bestDist = d
				best = WaterHit{Type: t, RegionID: e.regionByCell[tc]}
				found = true
			}
		}
		return true
	})
	return best, found
}

// IsAnyWaterInRange reports whether any fishable water is within buffer
// of the point. Same scan as NearestWaterInRange, existence-only.
func (e *Engine) IsAnyWaterInRange(x, y, buffer float64) bool {
	if e.IsInsideWaterCollisionArea(x, y) {
		return false
	}

	found := false
	center := e.tileAt(x, y)
	radius := int(math.Ceil((buffer + e.cellSize) / e.cellSize))
	visitRange(center.X, center.Y, radius, e.width, e.height, func(tx, ty int) bool {
		tc := TileCoord{X: tx, Y: ty}
		if _, ok := e.cells[tc]; !ok {
			return true
		}
		for _, r := range e.waterRects(tc) {
			if r.Expand(buffer).Contains(x, y) && !r.Contains(x, y) {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

// waterRects returns the world-space water rectangles of a fishable
// tile: its own collision geometry, or the whole tile when it declares
// none. Geometry from other layers on the same cell never counts as
// water.
func (e *Engine) waterRects(tc TileCoord) []geom.Rect {
	if rects := e.waterGeom[tc]; len(rects) > 0 {
		return rects
	}
	return []geom.Rect{{
		X: float64(tc.X) * e.cellSize,
		Y: float64(tc.Y) * e.cellSize,
		W: e.cellSize,
		H: e.cellSize,
	}}
}

// visitRange calls visit for every tile within radius tiles of (tx, ty),
// clamped to the grid. visit returning false stops the scan. Split out
// so tests can count tile visits directly: per-query cost must stay
// proportional to the radius, never to grid area.
func visitRange(tx, ty, radius, width, height int, visit func(x, y int) bool) {
	minX := max(tx-radius, 0)
	maxX := min(tx+radius, width-1)
	minY := max(ty-radius, 0)
	maxY := min(ty+radius, height-1)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if !visit(x, y) {
				return
			}
		}
	}
}

func (e *Engine) tileAt(x, y float64) TileCoord {
	return TileCoord{
		X: int(fastFloorDiv(x, e.cellSize)),
		Y: int(fastFloorDiv(y, e.cellSize)),
	}
}

func (e *Engine) inBounds(tc TileCoord) bool {
	return tc.X >= 0 && tc.X < e.width && tc.Y >= 0 && tc.Y < e.height
}
