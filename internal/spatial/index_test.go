package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/worldindex/internal/data"
)

func TestBuildAppliesScale(t *testing.T) {
	m := data.NewWorldMap(4, 4, 16)
	terrain := make([]int, 16)
	terrain[0] = gidTree
	m.SetTileLayer("terrain", terrain)
	m.SetObjectLayer("collision", []data.PlacedObject{
		{Name: "wall", X: 30, Y: 30, Width: 5, Height: 5},
		{Name: "crate", GID: gidBoulder, X: 50, Y: 50},
	})

	e := Build(m, testCatalog(), BuildParams{
		Scale:          2,
		CollisionLayer: "collision",
	})

	assert.Equal(t, 32.0, e.CellSize())

	// Blocking tile fills the scaled cell.
	assert.True(t, e.IsCollisionAt(31, 31))
	assert.False(t, e.IsCollisionAt(33, 33))

	// Plain collision rect scales to (60,60,10,10).
	assert.True(t, e.IsCollisionAt(65, 65))
	assert.False(t, e.IsCollisionAt(71, 65))

	// Crate origin scales to (100,100); its box resolves to (108,108,16,16).
	assert.True(t, e.IsCollisionAt(110, 110))
	assert.False(t, e.IsCollisionAt(105, 105))
}

func TestBuildUnalignedObjectIsHittable(t *testing.T) {
	// The crate's box (114,34,8,8) lies wholly outside the tile holding
	// its placement origin (110,30). Collision symmetry: a stored rect
	// must be hittable wherever it actually is.
	m := data.NewWorldMap(8, 8, 16)
	m.SetObjectLayer("props", []data.PlacedObject{
		{Name: "crate", GID: gidBoulder, X: 110, Y: 30},
	})

	e := Build(m, testCatalog(), BuildParams{})

	assert.Equal(t, 1, e.Collision().RectCount())
	assert.True(t, e.IsCollisionAt(115, 35))
	assert.False(t, e.IsCollisionAt(113, 35))
}

func TestBuildMissingLayersMeanEmpty(t *testing.T) {
	m := data.NewWorldMap(4, 4, 16)

	e := Build(m, testCatalog(), BuildParams{
		WaterLayer:     "water",
		CollisionLayer: "collision",
		LogicLayer:     "logic",
	})

	assert.Empty(t, e.Regions())
	assert.Empty(t, e.FishableCells())
	assert.Equal(t, 0, e.Collision().RectCount())
	assert.False(t, e.IsCollisionAt(8, 8))
	assert.False(t, e.IsFishableAt(8, 8))
}

func TestBuildCustomClassifier(t *testing.T) {
	g := make([]int, 16)
	g[5] = gidStill
	m := waterWorld(4, g)

	e := Build(m, testCatalog(), BuildParams{
		WaterLayer: "water",
		Classify: func(ClassifyContext) WaterType {
			return WaterRiver
		},
	})

	require.Len(t, e.Regions(), 1)
	assert.Equal(t, WaterRiver, e.Regions()[0].Type)
}

func TestBuildNonCollisionObjectLayerIgnored(t *testing.T) {
	m := data.NewWorldMap(4, 4, 16)
	m.SetObjectLayer("decor", []data.PlacedObject{
		{Name: "sign", X: 10, Y: 10, Width: 5, Height: 5},
	})

	e := Build(m, testCatalog(), BuildParams{CollisionLayer: "collision"})
	assert.Equal(t, 0, e.Collision().RectCount())
}

func TestFishableCellsReturnsCopy(t *testing.T) {
	e := newTestEngine()

	cells := e.FishableCells()
	require.NotEmpty(t, cells)
	for k := range cells {
		delete(cells, k)
	}
	assert.NotEmpty(t, e.FishableCells())
}

func TestBuildBounds(t *testing.T) {
	e := newTestEngine()
	w, h := e.Bounds()
	assert.Equal(t, 8, w)
	assert.Equal(t, 8, h)
	assert.Equal(t, 16.0, e.CellSize())
}
