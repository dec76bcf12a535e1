package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/isoarena/game/internal/component"
	"github.com/isoarena/game/internal/config"
	"github.com/isoarena/game/internal/core/ecs"
	"github.com/isoarena/game/internal/core/event"
	coresys "github.com/isoarena/game/internal/core/system"
	"github.com/isoarena/game/internal/world"
)

// EnemySystem runs the distance-gated AI. Each enemy re-evaluates only
// when its retarget timer passes 1/speed seconds; in between it keeps its
// last velocity and facing.
type EnemySystem struct {
	state  *world.State
	melee2 float32
	aggro2 float32
	log    *zap.Logger
}

func NewEnemySystem(state *world.State, cfg config.EnemyConfig, log *zap.Logger) *EnemySystem {
	return &EnemySystem{
		state:  state,
		melee2: cfg.MeleeRange2,
		aggro2: cfg.AggroRange2,
		log:    log,
	}
}

func (s *EnemySystem) Name() string    { return NameEnemy }
func (s *EnemySystem) After() []string { return []string{NamePlayer} }

func (s *EnemySystem) Access() coresys.Access {
	return coresys.Access{
		Reads:  []string{resPlayer},
		Writes: []string{resEnemy, resTransform, resAnimation, resCollider},
	}
}

func (s *EnemySystem) Update(_ time.Duration) {
	st := s.state
	target, ok := st.PlayerPosition()
	if !ok {
		return
	}
	dt := st.Delta.Seconds()

	ecs.Each2(st.Enemies, st.Transforms, func(id ecs.EntityID, e *component.Enemy, tr *component.Transform) {
		anim, ok := st.Animations.Get(id)
		if !ok || anim.Locked {
			return
		}
		col, ok := st.Colliders.Get(id)
		if !ok {
			return
		}

		e.RetargetTimer += dt
		if e.Speed <= 0 || e.RetargetTimer < 1/e.Speed {
			return
		}
		e.RetargetTimer = 0

		self := tr.XY()
		d2 := target.Sub(self).LenSqr()
		prev := e.Behavior

		switch {
		case d2 < s.melee2:
			e.Behavior = component.Melee
			col.Velocity = col.Velocity.Mul(0)
			anim.ChangeSequence(seqAttack, true)
		case d2 < s.aggro2:
			dir := component.ComputeDirection(self, target)
			if dir != tr.Facing || prev != component.Chase {
				e.Behavior = component.Chase
				tr.Facing = dir
				col.Velocity = dir.IsoVelocity(e.Speed)
				anim.ChangeFacing(dir)
				anim.ChangeSequence(seqWalk, false)
			}
		default:
			e.Behavior = component.Idle
			col.Velocity = col.Velocity.Mul(0)
			anim.ChangeSequence(seqIdle, false)
		}

		if e.Behavior != prev {
			event.Emit(st.Bus, event.EnemyBehaviorChanged{Entity: id, From: prev.String(), To: e.Behavior.String()})
			s.log.Debug("enemy behavior changed",
				zap.Stringer("entity", id),
				zap.Stringer("from", prev),
				zap.Stringer("to", e.Behavior))
		}
	})
}
