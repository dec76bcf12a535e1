package scripting

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func newEngine(t *testing.T, script string) *Engine {
	t.Helper()
	dir := t.TempDir()
	if script != "" {
		spawn := filepath.Join(dir, "spawn")
		if err := os.MkdirAll(spawn, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(spawn, "policy.lua"), []byte(script), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	e, err := NewEngine(dir, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestNextSpawnCallsScript(t *testing.T) {
	e := newEngine(t, `
function next_spawn(ctx)
  return { count = ctx.wave + ctx.alive, template = "ghoul", interval = ctx.player.x }
end
`)
	if !e.HasFunction("next_spawn") {
		t.Fatal("next_spawn not loaded")
	}
	plan, err := e.NextSpawn(SpawnContext{Wave: 2, Alive: 1, PlayerX: 1.5})
	if err != nil {
		t.Fatal(err)
	}
	if plan.Count != 3 || plan.Template != "ghoul" || plan.Interval != 1.5 {
		t.Errorf("plan = %+v", plan)
	}
}

func TestNextSpawnMissingFunction(t *testing.T) {
	e := newEngine(t, "")
	if e.HasFunction("next_spawn") {
		t.Fatal("unexpected next_spawn")
	}
	if _, err := e.NextSpawn(SpawnContext{}); err == nil {
		t.Error("NextSpawn succeeded without a script")
	}
}

func TestNextSpawnRuntimeErrorIsReturned(t *testing.T) {
	e := newEngine(t, `function next_spawn(ctx) error("boom") end`)
	_, err := e.NextSpawn(SpawnContext{})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("err = %v, want script error", err)
	}
}

func TestNextSpawnRejectsNonTable(t *testing.T) {
	e := newEngine(t, `function next_spawn(ctx) return 4 end`)
	if _, err := e.NextSpawn(SpawnContext{}); err == nil {
		t.Error("non-table result accepted")
	}
}

func TestLoadSyntaxErrorFails(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "spawn"), 0o755)
	os.WriteFile(filepath.Join(dir, "spawn", "bad.lua"), []byte("function ("), 0o644)
	if _, err := NewEngine(dir, zaptest.NewLogger(t)); err == nil {
		t.Error("syntax error not reported")
	}
}

func TestShippedWavePolicy(t *testing.T) {
	e, err := NewEngine("../../scripts", zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	plan, err := e.NextSpawn(SpawnContext{Wave: 0, Alive: 0, MaxAlive: 32})
	if err != nil {
		t.Fatal(err)
	}
	if plan.Count != 1 || plan.Template != "zombie" || plan.Interval != 2 {
		t.Errorf("first wave = %+v", plan)
	}
	plan, _ = e.NextSpawn(SpawnContext{Wave: 100, Alive: 31, MaxAlive: 32})
	if plan.Count != 1 || plan.Interval != 0.75 {
		t.Errorf("late wave = %+v, want capped count and minimum interval", plan)
	}
}
