package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/isoarena/game/internal/config"
	"github.com/isoarena/game/internal/core/event"
	coresys "github.com/isoarena/game/internal/core/system"
	"github.com/isoarena/game/internal/scripting"
	"github.com/isoarena/game/internal/world"
)

// SpawnSystem creates enemy waves on a timer. Wave size, template and the
// next interval come from the SpawnPolicy; positions are drawn from the
// shared seeded generator around the configured spawn center.
type SpawnSystem struct {
	state   *world.State
	factory *Factory
	policy  SpawnPolicy
	cfg     config.EnemyConfig
	log     *zap.Logger

	timer    float32
	interval float32
	elapsed  float64
	wave     int
}

func NewSpawnSystem(state *world.State, factory *Factory, policy SpawnPolicy, cfg config.EnemyConfig, log *zap.Logger) *SpawnSystem {
	return &SpawnSystem{
		state:    state,
		factory:  factory,
		policy:   policy,
		cfg:      cfg,
		log:      log,
		interval: float32(cfg.SpawnInterval.Seconds()),
	}
}

func (s *SpawnSystem) Name() string    { return NameSpawn }
func (s *SpawnSystem) After() []string { return nil }

func (s *SpawnSystem) Access() coresys.Access {
	return coresys.Access{
		Reads:  []string{resPlayer},
		Writes: []string{resEntities, resTransform, resTile, resAnimation, resCollider, resEnemy, resRand},
	}
}

// Waves reports how many spawn rounds have run.
func (s *SpawnSystem) Waves() int { return s.wave }

func (s *SpawnSystem) Update(_ time.Duration) {
	dt := s.state.Delta.Seconds()
	s.elapsed += float64(dt)
	s.timer += dt
	if s.timer < s.interval {
		return
	}
	s.timer = 0

	alive := s.state.Enemies.Len()
	room := s.cfg.MaxAlive - alive
	if room <= 0 {
		return
	}

	ctx := scripting.SpawnContext{
		Elapsed:  s.elapsed,
		Wave:     s.wave,
		Alive:    alive,
		MaxAlive: s.cfg.MaxAlive,
	}
	if p, ok := s.state.PlayerPosition(); ok {
		ctx.PlayerX, ctx.PlayerY = float64(p[0]), float64(p[1])
	}
	plan := s.policy.NextSpawn(ctx)
	s.wave++
	if plan.Interval > 0 {
		s.interval = float32(plan.Interval)
	}

	count := min(plan.Count, room)
	for i := 0; i < count; i++ {
		pos := s.randomPosition()
		id, err := s.factory.SpawnEnemy(plan.Template, pos)
		if err != nil {
			s.log.Error("enemy spawn failed", zap.String("template", plan.Template), zap.Error(err))
			return
		}
		event.Emit(s.state.Bus, event.EnemySpawned{Entity: id, Template: plan.Template})
		s.log.Debug("enemy spawned",
			zap.Stringer("entity", id),
			zap.String("template", plan.Template),
			zap.Float32("x", pos[0]),
			zap.Float32("y", pos[1]))
	}
}

func (s *SpawnSystem) randomPosition() mgl32.Vec2 {
	r := s.state.Rand
	spread := s.cfg.SpawnSpread
	return mgl32.Vec2{
		s.cfg.SpawnCenterX + (r.Float32()*2-1)*spread,
		s.cfg.SpawnCenterY + (r.Float32()*2-1)*spread,
	}
}
