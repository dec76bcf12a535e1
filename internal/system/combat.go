package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/isoarena/game/internal/component"
	"github.com/isoarena/game/internal/core/ecs"
	"github.com/isoarena/game/internal/core/event"
	coresys "github.com/isoarena/game/internal/core/system"
	"github.com/isoarena/game/internal/world"
)

type fireRequest struct {
	owner  ecs.EntityID
	pos    mgl32.Vec2
	facing component.Direction
}

// CombatSystem turns set AttackMaker latches into projectiles. Requests are
// collected first and entities created after the scan, so no store is
// grown while it is being iterated.
type CombatSystem struct {
	state   *world.State
	factory *Factory
	log     *zap.Logger

	pending []fireRequest
}

func NewCombatSystem(state *world.State, factory *Factory, log *zap.Logger) *CombatSystem {
	return &CombatSystem{state: state, factory: factory, log: log}
}

func (s *CombatSystem) Name() string    { return NameCombat }
func (s *CombatSystem) After() []string { return []string{NameSpawn} }

func (s *CombatSystem) Access() coresys.Access {
	return coresys.Access{
		Writes: []string{resAttackMaker, resEntities, resTransform, resTile, resAttack, resCollider},
	}
}

func (s *CombatSystem) Update(_ time.Duration) {
	s.pending = s.pending[:0]
	ecs.Each2(s.state.AttackMakers, s.state.Transforms, func(id ecs.EntityID, maker *component.AttackMaker, tr *component.Transform) {
		if !maker.Fire {
			return
		}
		maker.Fire = false
		if tr.Facing == component.None {
			return
		}
		s.pending = append(s.pending, fireRequest{owner: id, pos: tr.XY(), facing: tr.Facing})
	})

	for _, req := range s.pending {
		id := s.factory.SpawnProjectile(req.owner, req.pos, req.facing)
		event.Emit(s.state.Bus, event.AttackSpawned{Entity: id, Owner: req.owner, Facing: int(req.facing)})
		s.log.Debug("projectile spawned",
			zap.Stringer("entity", id),
			zap.Stringer("owner", req.owner),
			zap.Stringer("facing", req.facing))
	}
}
