package spatial

import (
	"github.com/driftline/worldindex/internal/data"
	"github.com/driftline/worldindex/internal/geom"
)

// Well-known tile property names.
const (
	PropFishable    = "fishable"
	PropBlocking    = "blocking"
	PropSpawnMarker = "spawn_marker"
	PropWaterType   = "water_type"
)

// TileDefinition is the resolved metadata for one global tile id:
// collision rectangles in tile-local unscaled coordinates plus the
// tile's declared properties.
type TileDefinition struct {
	Collision []geom.Rect
	props     map[string]any
}

// Bool returns a boolean property, false when absent or not a bool.
func (d *TileDefinition) Bool(name string) bool {
	v, _ := d.props[name].(bool)
	return v
}

// Int returns an integer property and whether it was present.
func (d *TileDefinition) Int(name string) (int, bool) {
	v, ok := d.props[name].(int)
	return v, ok
}

// Str returns a string property and whether it was present.
func (d *TileDefinition) Str(name string) (string, bool) {
	v, ok := d.props[name].(string)
	return v, ok
}

// Catalog resolves global tile identifiers to their definitions.
// Built once from tileset declarations, read-only afterwards.
type Catalog struct {
	defs map[int]*TileDefinition
}

// NewCatalog builds a catalog from tileset declarations. Only tiles with
// declared collision geometry or properties get an entry; every other id
// resolves to absent, which callers treat as an ordinary empty tile.
func NewCatalog(tilesets []data.Tileset) *Catalog {
	c := &Catalog{defs: make(map[int]*TileDefinition)}
	for _, ts := range tilesets {
		for _, t := range ts.Tiles {
			if t.ID < 0 || t.ID >= ts.TileCount {
				continue // outside the tileset's declared range
			}
			if len(t.Collision) == 0 && len(t.Properties) == 0 {
				continue // nothing declared, resolves to absent
			}
			def := &TileDefinition{props: t.Properties}
			for _, r := range t.Collision {
				def.Collision = append(def.Collision, geom.Rect{
					X: r.X, Y: r.Y, W: r.Width, H: r.Height,
				})
			}
			c.defs[ts.FirstGID+t.ID] = def
		}
	}
	return c
}

// Resolve returns the definition for a global tile id, or nil when the
// id is 0, outside every declared range, or simply has no metadata.
// Absent is never an error.
func (c *Catalog) Resolve(gid int) *TileDefinition {
	if gid <= 0 {
		return nil
	}
	return c.defs[gid]
}

// Count returns the number of tiles carrying metadata.
func (c *Catalog) Count() int {
	return len(c.defs)
}
