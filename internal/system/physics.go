package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/isoarena/game/internal/component"
	"github.com/isoarena/game/internal/core/ecs"
	coresys "github.com/isoarena/game/internal/core/system"
	"github.com/isoarena/game/internal/world"
)

// Body is the resolver's view of one collider for a frame.
type Body struct {
	ID       ecs.EntityID
	Bounds   component.AABB
	Velocity mgl32.Vec2
	Trigger  bool
	Kind     component.BodyKind
}

func (b *Body) solid() bool { return !b.Trigger }

// ResolveVelocity returns the velocity self may actually move with this
// frame. Bodies already overlapping a solid neighbor are pushed out along
// the axis of least penetration, damped; otherwise each axis whose step
// alone would enter a solid neighbor is zeroed so the body slides.
// Static bodies never move and triggers are never blocked.
func ResolveVelocity(self Body, others []Body, dt, damping float32) mgl32.Vec2 {
	if self.Kind == component.Static || dt <= 0 {
		return mgl32.Vec2{}
	}
	if self.Trigger {
		return self.Velocity
	}

	for i := range others {
		o := &others[i]
		if o.ID == self.ID || !o.solid() || !self.Bounds.Overlaps(o.Bounds) {
			continue
		}
		return penetrationPush(self, o, dt, damping)
	}

	v := self.Velocity
	dx, dy := v[0]*dt, v[1]*dt
	for i := range others {
		o := &others[i]
		if o.ID == self.ID || !o.solid() {
			continue
		}
		if v[0] != 0 && self.Bounds.Translate(dx, 0).Overlaps(o.Bounds) {
			v[0] = 0
		}
		if v[1] != 0 && self.Bounds.Translate(0, dy).Overlaps(o.Bounds) {
			v[1] = 0
		}
		if v[0] == 0 && v[1] == 0 {
			break
		}
	}
	return v
}

// penetrationPush moves self away from o's center. Ties go to the X axis;
// coincident centers are split by entity id.
func penetrationPush(self Body, o *Body, dt, damping float32) mgl32.Vec2 {
	ox, oy := self.Bounds.Overlap(o.Bounds)
	sc, oc := self.Bounds.Center(), o.Bounds.Center()
	if ox <= oy {
		return mgl32.Vec2{pushSign(sc[0]-oc[0], self.ID, o.ID) * ox * damping / dt, 0}
	}
	return mgl32.Vec2{0, pushSign(sc[1]-oc[1], self.ID, o.ID) * oy * damping / dt}
}

func pushSign(d float32, self, other ecs.EntityID) float32 {
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	case self < other:
		return -1
	}
	return 1
}

// PhysicsSystem resolves every body in entity id order and applies the
// resolved step to its Transform. Later bodies see earlier bodies at
// their resolved positions. The collider keeps its requested velocity.
type PhysicsSystem struct {
	state   *world.State
	damping float32

	bodies []Body
	ids    []ecs.EntityID
}

func NewPhysicsSystem(state *world.State, damping float32) *PhysicsSystem {
	return &PhysicsSystem{state: state, damping: damping}
}

func (s *PhysicsSystem) Name() string    { return NamePhysics }
func (s *PhysicsSystem) After() []string { return []string{NamePlayer, NameEnemy} }

func (s *PhysicsSystem) Access() coresys.Access {
	return coresys.Access{
		Reads:  []string{resCollider},
		Writes: []string{resTransform},
	}
}

func (s *PhysicsSystem) Update(_ time.Duration) {
	st := s.state
	dt := st.Delta.Seconds()

	s.ids = s.ids[:0]
	ecs.Each2(st.Colliders, st.Transforms, func(id ecs.EntityID, _ *component.Collider, _ *component.Transform) {
		s.ids = append(s.ids, id)
	})
	ecs.SortIDs(s.ids)

	s.bodies = s.bodies[:0]
	for _, id := range s.ids {
		col, _ := st.Colliders.Get(id)
		tr, _ := st.Transforms.Get(id)
		s.bodies = append(s.bodies, Body{
			ID:       id,
			Bounds:   col.Bounds(tr.Position),
			Velocity: col.Velocity,
			Trigger:  col.Trigger,
			Kind:     col.Body,
		})
	}

	for i := range s.bodies {
		b := &s.bodies[i]
		v := ResolveVelocity(*b, s.bodies, dt, s.damping)
		if v[0] == 0 && v[1] == 0 {
			continue
		}
		step := v.Mul(dt)
		tr, _ := st.Transforms.Get(b.ID)
		tr.Translate(step)
		b.Bounds = b.Bounds.Translate(step[0], step[1])
	}
}
