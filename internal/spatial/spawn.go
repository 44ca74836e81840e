package spatial

import "github.com/driftline/worldindex/internal/data"

// resolveSpawn scans the logic layer in row-major order and returns the
// world-space centroid of the first cell whose tile carries the
// spawn_marker property. First match wins: the scan policy is explicit
// rather than an accident of iteration order, so duplicate markers are
// stable across rebuilds. Returns marked=false when the layer is absent
// or carries no marker.
func resolveSpawn(layer *data.TileLayer, catalog *Catalog, cellSize float64) (x, y float64, marked bool) {
	if layer == nil {
		return 0, 0, false
	}
	for ty := 0; ty < layer.Height; ty++ {
		for tx := 0; tx < layer.Width; tx++ {
			gid := layer.GID(tx, ty)
			if gid == 0 {
				continue
			}
			def := catalog.Resolve(gid)
			if def == nil || !def.Bool(PropSpawnMarker) {
				continue
			}
			return (float64(tx) + 0.5) * cellSize, (float64(ty) + 0.5) * cellSize, true
		}
	}
	return 0, 0, false
}
