package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/driftline/worldindex/internal/data"
)

func TestSpawnFirstMarkerWins(t *testing.T) {
	m := data.NewWorldMap(6, 6, 16)
	logic := make([]int, 36)
	logic[1*6+3] = gidSpawn // (3,1) comes first in row-major order
	logic[2*6+1] = gidSpawn
	m.SetTileLayer("logic", logic)

	x, y, marked := resolveSpawn(m.TileLayer("logic"), testCatalog(), 16)
	assert.True(t, marked)
	assert.Equal(t, 56.0, x) // (3 + 0.5) * 16
	assert.Equal(t, 24.0, y)
}

func TestSpawnIgnoresNonMarkerTiles(t *testing.T) {
	m := data.NewWorldMap(4, 4, 16)
	logic := make([]int, 16)
	logic[0] = gidGrass
	logic[5] = gidStill
	m.SetTileLayer("logic", logic)

	_, _, marked := resolveSpawn(m.TileLayer("logic"), testCatalog(), 16)
	assert.False(t, marked)
}

func TestSpawnNilLayer(t *testing.T) {
	_, _, marked := resolveSpawn(nil, testCatalog(), 16)
	assert.False(t, marked)
}

func TestEngineSpawnPoint(t *testing.T) {
	e := newTestEngine()

	x, y, marked := e.SpawnPoint()
	assert.True(t, marked)
	assert.Equal(t, 72.0, x) // marker on tile (4,1)
	assert.Equal(t, 24.0, y)
}

func TestEngineSpawnFallbackIsMapCenter(t *testing.T) {
	m := data.NewWorldMap(4, 4, 16)
	e := Build(m, testCatalog(), BuildParams{LogicLayer: "logic"})

	x, y, marked := e.SpawnPoint()
	assert.False(t, marked)
	assert.Equal(t, 32.0, x)
	assert.Equal(t, 32.0, y)
}
