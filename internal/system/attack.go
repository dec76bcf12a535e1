package system

import (
	"time"

	"github.com/isoarena/game/internal/component"
	"github.com/isoarena/game/internal/core/ecs"
	"github.com/isoarena/game/internal/core/event"
	coresys "github.com/isoarena/game/internal/core/system"
	"github.com/isoarena/game/internal/world"
)

// expiryEpsilon absorbs float32 drift from summing per-frame deltas.
const expiryEpsilon = 1e-5

// AttackSystem moves live projectiles and retires expired ones. Expired
// entities are queued during the scan and destroyed once it ends.
type AttackSystem struct {
	state *world.State
}

func NewAttackSystem(state *world.State) *AttackSystem {
	return &AttackSystem{state: state}
}

func (s *AttackSystem) Name() string    { return NameAttack }
func (s *AttackSystem) After() []string { return []string{NameCombat} }

func (s *AttackSystem) Access() coresys.Access {
	return coresys.Access{Writes: []string{resEntities, resAttack, resTransform}}
}

func (s *AttackSystem) Update(_ time.Duration) {
	st := s.state
	dt := st.Delta.Seconds()
	ecs.Each2(st.Attacks, st.Transforms, func(id ecs.EntityID, a *component.Attack, tr *component.Transform) {
		a.Elapsed += dt
		if a.Elapsed >= a.Duration-expiryEpsilon {
			st.World.MarkForDestruction(id)
			event.Emit(st.Bus, event.AttackExpired{Entity: id})
			return
		}
		tr.Translate(a.Movement.Mul(dt))
	})
	st.World.FlushDestroyQueue()
}
