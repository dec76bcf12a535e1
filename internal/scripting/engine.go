package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for game logic execution.
// Single-goroutine access only (frame loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"core", "spawn"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// HasFunction reports whether a global Lua function is defined.
func (e *Engine) HasFunction(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// SpawnContext is the state handed to next_spawn.
type SpawnContext struct {
	Elapsed  float64 // seconds since the simulation started
	Wave     int     // spawn rounds so far
	Alive    int     // enemies currently alive
	MaxAlive int
	PlayerX  float64
	PlayerY  float64
}

// SpawnPlan is what next_spawn returns. Interval 0 keeps the current one.
type SpawnPlan struct {
	Count    int
	Template string
	Interval float64 // seconds
}

// NextSpawn calls the Lua next_spawn function.
func (e *Engine) NextSpawn(ctx SpawnContext) (SpawnPlan, error) {
	fn := e.vm.GetGlobal("next_spawn")
	if fn == lua.LNil {
		return SpawnPlan{}, fmt.Errorf("lua function next_spawn not found")
	}

	t := e.vm.NewTable()
	t.RawSetString("elapsed", lua.LNumber(ctx.Elapsed))
	t.RawSetString("wave", lua.LNumber(ctx.Wave))
	t.RawSetString("alive", lua.LNumber(ctx.Alive))
	t.RawSetString("max_alive", lua.LNumber(ctx.MaxAlive))

	player := e.vm.NewTable()
	player.RawSetString("x", lua.LNumber(ctx.PlayerX))
	player.RawSetString("y", lua.LNumber(ctx.PlayerY))
	t.RawSetString("player", player)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		return SpawnPlan{}, fmt.Errorf("lua next_spawn: %w", err)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return SpawnPlan{}, fmt.Errorf("lua next_spawn returned %s, want table", result.Type())
	}
	return SpawnPlan{
		Count:    lInt(rt, "count"),
		Template: lStr(rt, "template"),
		Interval: float64(lua.LVAsNumber(rt.RawGetString("interval"))),
	}, nil
}

// --- Lua helpers ---

// lInt reads an integer field from a Lua table.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

// lStr reads a string field from a Lua table.
func lStr(t *lua.LTable, key string) string {
	return lua.LVAsString(t.RawGetString(key))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
