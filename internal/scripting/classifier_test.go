package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/worldindex/internal/spatial"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "classifier.lua")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func pondFallback(spatial.ClassifyContext) spatial.WaterType {
	return spatial.WaterPond
}

func TestNoScriptUsesFallback(t *testing.T) {
	c, err := NewClassifier("", pondFallback, nil)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, spatial.WaterPond, c.Classify(spatial.ClassifyContext{GID: 9}))
}

func TestMissingScriptFileIsNotAnError(t *testing.T) {
	c, err := NewClassifier(filepath.Join(t.TempDir(), "nope.lua"), pondFallback, nil)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, spatial.WaterPond, c.Classify(spatial.ClassifyContext{GID: 9}))
}

func TestScriptClassifies(t *testing.T) {
	path := writeScript(t, `
function classify_water(ctx)
    if ctx.water_type ~= "" then
        return ctx.water_type
    end
    if ctx.tile_y >= ctx.grid_height / 2 then
        return "ocean"
    end
    if ctx.gid == 12 then
        return "river"
    end
    return "pond"
end
`)
	c, err := NewClassifier(path, pondFallback, nil)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, spatial.WaterOcean, c.Classify(spatial.ClassifyContext{GID: 9, TileY: 6, GridHeight: 8}))
	assert.Equal(t, spatial.WaterRiver, c.Classify(spatial.ClassifyContext{GID: 12, TileY: 1, GridHeight: 8}))
	assert.Equal(t, spatial.WaterPond, c.Classify(spatial.ClassifyContext{GID: 9, TileY: 1, GridHeight: 8}))
	assert.Equal(t, spatial.WaterRiver, c.Classify(spatial.ClassifyContext{GID: 9, TileY: 1, GridHeight: 8, DeclaredType: "river"}))
}

func TestScriptUnknownResultFallsBack(t *testing.T) {
	path := writeScript(t, `
function classify_water(ctx)
    return "lava"
end
`)
	c, err := NewClassifier(path, pondFallback, nil)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, spatial.WaterPond, c.Classify(spatial.ClassifyContext{GID: 9}))
}

func TestScriptErrorFallsBack(t *testing.T) {
	path := writeScript(t, `
function classify_water(ctx)
    error("boom")
end
`)
	c, err := NewClassifier(path, pondFallback, nil)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, spatial.WaterPond, c.Classify(spatial.ClassifyContext{GID: 9}))
}

func TestScriptWithoutFunctionFails(t *testing.T) {
	path := writeScript(t, `x = 1`)
	_, err := NewClassifier(path, pondFallback, nil)
	assert.Error(t, err)
}

func TestBrokenScriptFails(t *testing.T) {
	path := writeScript(t, `function classify_water(`)
	_, err := NewClassifier(path, pondFallback, nil)
	assert.Error(t, err)
}
