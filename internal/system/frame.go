package system

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/isoarena/game/internal/config"
	"github.com/isoarena/game/internal/core/event"
	coresys "github.com/isoarena/game/internal/core/system"
	"github.com/isoarena/game/internal/render"
	"github.com/isoarena/game/internal/world"
)

// FrameDeps bundles what NewFrame wires together.
type FrameDeps struct {
	State     *world.State
	Factory   *Factory
	Policy    SpawnPolicy
	Resources *render.ResourceManager
	Renderer  *render.Renderer
	Config    *config.Config
	Log       *zap.Logger
}

// Stats are counters fed by bus events. Events emitted in a frame are
// counted at the start of the next one.
type Stats struct {
	Frames          uint64
	Entities        int
	Enemies         int
	Projectiles     int
	Expired         int
	EnemiesSpawned  int
	BehaviorChanges int
	Reallocations   int
}

// Frame drives one tick: latch delta time, deliver last frame's events,
// run every system in dependency order and report fatal render errors.
type Frame struct {
	state    *world.State
	runner   *coresys.Runner
	renderer *render.Renderer
	render   *RenderSystem
	spawn    *SpawnSystem
	maxDelta time.Duration
	log      *zap.Logger

	stats Stats
}

func NewFrame(d FrameDeps) (*Frame, error) {
	mode, err := coresys.ParseMode(d.Config.Dispatch.Mode)
	if err != nil {
		return nil, err
	}
	policy := d.Policy
	if policy == nil {
		policy = DefaultSpawnPolicy{
			Template: d.Config.Enemy.DefaultTemplate,
			Interval: d.Config.Enemy.SpawnInterval.Seconds(),
		}
	}

	f := &Frame{
		state:    d.State,
		runner:   coresys.NewRunner(mode, d.Config.Dispatch.Workers),
		renderer: d.Renderer,
		render:   NewRenderSystem(d.State, d.Renderer),
		spawn:    NewSpawnSystem(d.State, d.Factory, policy, d.Config.Enemy, d.Log),
		maxDelta: d.Config.Simulation.MaxDelta,
		log:      d.Log,
	}

	f.runner.Register(f.spawn)
	f.runner.Register(NewAnimationSystem(d.State))
	f.runner.Register(NewCombatSystem(d.State, d.Factory, d.Log))
	f.runner.Register(NewPlayerSystem(d.State))
	f.runner.Register(NewEnemySystem(d.State, d.Config.Enemy, d.Log))
	f.runner.Register(NewAttackSystem(d.State))
	f.runner.Register(NewPhysicsSystem(d.State, d.Config.Physics.Damping))
	f.runner.Register(NewCameraSystem(d.State))
	f.runner.Register(NewMeshSystem(d.State, d.Resources, d.Config.TileMap.Atlas))
	f.runner.Register(f.render)
	if err := f.runner.Build(); err != nil {
		return nil, fmt.Errorf("build system graph: %w", err)
	}

	f.subscribe()
	d.Log.Info("frame pipeline ready",
		zap.Stringer("mode", mode),
		zap.Strings("order", f.runner.Order()))
	return f, nil
}

func (f *Frame) subscribe() {
	bus := f.state.Bus
	event.Subscribe(bus, func(event.AttackSpawned) { f.stats.Projectiles++ })
	event.Subscribe(bus, func(event.AttackExpired) { f.stats.Expired++ })
	event.Subscribe(bus, func(event.EnemySpawned) { f.stats.EnemiesSpawned++ })
	event.Subscribe(bus, func(event.EnemyBehaviorChanged) { f.stats.BehaviorChanges++ })
	event.Subscribe(bus, func(event.MeshReallocated) { f.stats.Reallocations++ })
}

// Tick advances the world by dt, clamped to the configured maximum.
// Only unrecoverable render failures are returned.
func (f *Frame) Tick(dt time.Duration) error {
	if dt < 0 {
		dt = 0
	}
	if f.maxDelta > 0 && dt > f.maxDelta {
		dt = f.maxDelta
	}
	st := f.state
	st.Delta.Set(dt)
	st.Bus.SwapBuffers()
	st.Bus.DispatchAll()

	f.runner.Tick(dt)
	f.stats.Frames++

	if err := f.render.TakeErr(); err != nil {
		f.log.Error("render failed", zap.Error(err))
		return err
	}
	return nil
}

// HandleKey latches a key transition for the next tick.
func (f *Frame) HandleKey(k world.Key, pressed bool) {
	f.state.Input.Apply(k, pressed)
}

func (f *Frame) HandleCursor(x, y float32) {
	f.state.Input.Cursor[0], f.state.Input.Cursor[1] = x, y
}

// Resize updates the camera aspect and reconfigures the surface before
// the next camera computation.
func (f *Frame) Resize(width, height int) {
	f.state.Camera.SetViewport(width, height)
	f.renderer.Resize(width, height)
}

func (f *Frame) Stats() Stats {
	s := f.stats
	s.Entities = f.state.EntityCount()
	s.Enemies = f.state.Enemies.Len()
	return s
}

// Order returns the sequential system order.
func (f *Frame) Order() []string { return f.runner.Order() }

// Batches returns the parallel plan.
func (f *Frame) Batches() [][]string { return f.runner.Batches() }

func (f *Frame) Waves() int { return f.spawn.Waves() }
