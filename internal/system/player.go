package system

import (
	"time"

	"github.com/isoarena/game/internal/component"
	"github.com/isoarena/game/internal/core/ecs"
	coresys "github.com/isoarena/game/internal/core/system"
	"github.com/isoarena/game/internal/world"
)

// PlayerSystem applies the latched input to the player: velocity, facing,
// animation and the fire latch. Nothing changes while a one-shot
// animation is playing.
type PlayerSystem struct {
	state *world.State
}

func NewPlayerSystem(state *world.State) *PlayerSystem {
	return &PlayerSystem{state: state}
}

func (s *PlayerSystem) Name() string    { return NamePlayer }
func (s *PlayerSystem) After() []string { return []string{NameCombat} }

func (s *PlayerSystem) Access() coresys.Access {
	return coresys.Access{
		Reads:  []string{resInput, resPlayer},
		Writes: []string{resTransform, resAnimation, resCollider, resAttackMaker},
	}
}

func (s *PlayerSystem) Update(_ time.Duration) {
	st := s.state
	in := &st.Input
	ecs.Each2(st.Players, st.Transforms, func(id ecs.EntityID, p *component.Player, tr *component.Transform) {
		anim, ok := st.Animations.Get(id)
		if !ok || anim.Locked {
			return
		}
		col, ok := st.Colliders.Get(id)
		if !ok {
			return
		}

		if in.Attack {
			col.Velocity = col.Velocity.Mul(0)
			anim.ChangeSequence(seqAttack, true)
			if maker, ok := st.AttackMakers.Get(id); ok {
				maker.Fire = true
			}
			return
		}

		dir := component.DirectionOf(in.Axis())
		if dir == component.None {
			col.Velocity = col.Velocity.Mul(0)
			anim.ChangeSequence(seqIdle, false)
			return
		}
		col.Velocity = dir.IsoVelocity(p.Speed)
		tr.Facing = dir
		anim.ChangeFacing(dir)
		anim.ChangeSequence(seqWalk, false)
	})
}
