package scripting

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/driftline/worldindex/internal/spatial"
)

// Classifier wraps a gopher-lua VM running a per-world classifier
// script. The script defines classify_water(ctx) and returns one of
// "pond", "river", "ocean", or nil/"" to defer to the fallback rule
// table. Called only from the single-threaded build pass; the result
// must be deterministic because region identity depends on it.
type Classifier struct {
	vm       *lua.LState
	fallback spatial.ClassifyFunc
	log      *zap.Logger
}

// NewClassifier loads a classifier script. A missing script file is not
// an error: the classifier then runs on the fallback alone.
func NewClassifier(scriptPath string, fallback spatial.ClassifyFunc, log *zap.Logger) (*Classifier, error) {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Classifier{fallback: fallback, log: log}

	if scriptPath == "" {
		return c, nil
	}
	if _, err := os.Stat(scriptPath); os.IsNotExist(err) {
		log.Debug("no classifier script, using rule table", zap.String("path", scriptPath))
		return c, nil
	}

	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	if err := vm.DoFile(scriptPath); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load classifier %s: %w", scriptPath, err)
	}
	if vm.GetGlobal("classify_water") == lua.LNil {
		vm.Close()
		return nil, fmt.Errorf("classifier %s: classify_water not defined", scriptPath)
	}
	c.vm = vm
	log.Debug("classifier script loaded", zap.String("path", scriptPath))
	return c, nil
}

// Classify calls Lua classify_water(ctx). Script errors and unknown
// return values fall through to the rule table.
func (c *Classifier) Classify(ctx spatial.ClassifyContext) spatial.WaterType {
	if c.vm == nil {
		return c.fallback(ctx)
	}

	fn := c.vm.GetGlobal("classify_water")

	t := c.vm.NewTable()
	t.RawSetString("gid", lua.LNumber(ctx.GID))
	t.RawSetString("tile_x", lua.LNumber(ctx.TileX))
	t.RawSetString("tile_y", lua.LNumber(ctx.TileY))
	t.RawSetString("grid_width", lua.LNumber(ctx.GridWidth))
	t.RawSetString("grid_height", lua.LNumber(ctx.GridHeight))
	t.RawSetString("water_type", lua.LString(ctx.DeclaredType))

	if err := c.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		c.log.Error("lua classify_water error", zap.Error(err), zap.Int("gid", ctx.GID))
		return c.fallback(ctx)
	}

	result := c.vm.Get(-1)
	c.vm.Pop(1)

	if w := spatial.ParseWaterType(lua.LVAsString(result)); w != spatial.WaterNone {
		return w
	}
	return c.fallback(ctx)
}

// Close shuts down the Lua VM, if one was loaded.
func (c *Classifier) Close() {
	if c.vm != nil {
		c.vm.Close()
	}
}
