package system

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap/zaptest"

	"github.com/isoarena/game/internal/component"
	"github.com/isoarena/game/internal/config"
	"github.com/isoarena/game/internal/core/ecs"
	"github.com/isoarena/game/internal/data"
	"github.com/isoarena/game/internal/render"
	"github.com/isoarena/game/internal/render/rendertest"
	"github.com/isoarena/game/internal/world"
)

const frameDT = 100 * time.Millisecond

type harness struct {
	cfg     *config.Config
	state   *world.State
	factory *Factory
	rec     *rendertest.Recorder
	rm      *render.ResourceManager
	frame   *Frame
}

func actorSequences() map[string]data.SequenceEntry {
	return map[string]data.SequenceEntry{
		"idle":   {Frames: []uint8{0, 1}, Duration: 0.2},
		"walk":   {Frames: []uint8{0, 1, 2, 3}, Duration: 0.1},
		"attack": {Frames: []uint8{4, 5}, Duration: 0.1},
	}
}

func testAtlases(t *testing.T) *data.AtlasTable {
	t.Helper()
	atlases, err := data.NewAtlasTable([]data.AtlasEntry{
		{Name: "tiles", UVWidth: 0.25, UVHeight: 0.25},
		{Name: "player", UVWidth: 0.125, UVHeight: 0.125, Sequences: actorSequences()},
		{Name: "enemy/zombie", UVWidth: 0.125, UVHeight: 0.125, Sequences: actorSequences()},
		{Name: "projectiles", UVWidth: 0.125, UVHeight: 0.333333},
	})
	if err != nil {
		t.Fatal(err)
	}
	return atlases
}

// newHarness wires a full frame pipeline against a recording backend.
// Enemy spawning is off unless mutate turns it on.
func newHarness(t *testing.T, mutate func(*config.Config)) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.Simulation.Seed = 7
	cfg.Enemy.SpawnInterval = time.Hour
	cfg.TileMap.MapChunks = 6
	cfg.TileMap.Atlas = "tiles"
	cfg.Player.Atlas = "player"
	cfg.Combat.Atlas = "projectiles"
	cfg.Enemy.DefaultTemplate = "zombie"
	if mutate != nil {
		mutate(cfg)
	}

	log := zaptest.NewLogger(t)
	cam, err := world.NewCamera(cfg.Camera, 1280, 720)
	if err != nil {
		t.Fatal(err)
	}
	rng := world.NewRand(cfg.Simulation.Seed)
	state := world.NewState(log, rng, cam, world.NewTileMapStorage(cfg.TileMap, rng))

	atlases := testAtlases(t)
	enemies, err := data.NewEnemyTable([]data.EnemyTemplate{
		{Name: "zombie", Atlas: "enemy/zombie", Speed: 2, Width: 4, Height: 4},
	}, atlases)
	if err != nil {
		t.Fatal(err)
	}
	factory, err := NewFactory(state, atlases, enemies, cfg)
	if err != nil {
		t.Fatal(err)
	}

	rec := rendertest.New()
	rm := render.NewResourceManager(rec, state.Bus, log)
	if err := RegisterAtlases(rm, atlases); err != nil {
		t.Fatal(err)
	}
	frame, err := NewFrame(FrameDeps{
		State:     state,
		Factory:   factory,
		Resources: rm,
		Renderer:  render.NewRenderer(rec, rm, log),
		Config:    cfg,
		Log:       log,
	})
	if err != nil {
		t.Fatal(err)
	}
	return &harness{cfg: cfg, state: state, factory: factory, rec: rec, rm: rm, frame: frame}
}

func (h *harness) spawnPlayer(t *testing.T, x, y float32) ecs.EntityID {
	t.Helper()
	id, err := h.factory.SpawnPlayer(mgl32.Vec2{x, y})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func (h *harness) spawnEnemy(t *testing.T, x, y float32) ecs.EntityID {
	t.Helper()
	id, err := h.factory.SpawnEnemy("zombie", mgl32.Vec2{x, y})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func (h *harness) tick(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := h.frame.Tick(frameDT); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
}

func (h *harness) transform(t *testing.T, id ecs.EntityID) *component.Transform {
	t.Helper()
	tr, ok := h.state.Transforms.Get(id)
	if !ok {
		t.Fatalf("entity %v has no transform", id)
	}
	return tr
}

func approx(a, b float32) bool {
	d := a - b
	return d < 1e-4 && d > -1e-4
}
