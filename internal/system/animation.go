package system

import (
	"time"

	"github.com/isoarena/game/internal/component"
	"github.com/isoarena/game/internal/core/ecs"
	coresys "github.com/isoarena/game/internal/core/system"
	"github.com/isoarena/game/internal/world"
)

// AnimationSystem advances every animation and writes the resulting atlas
// cell into the entity's Tile.
type AnimationSystem struct {
	state *world.State
}

func NewAnimationSystem(state *world.State) *AnimationSystem {
	return &AnimationSystem{state: state}
}

func (s *AnimationSystem) Name() string    { return NameAnimation }
func (s *AnimationSystem) After() []string { return []string{NameSpawn} }

func (s *AnimationSystem) Access() coresys.Access {
	return coresys.Access{Writes: []string{resAnimation, resTile}}
}

func (s *AnimationSystem) Update(_ time.Duration) {
	dt := s.state.Delta.Seconds()
	ecs.Each2(s.state.Animations, s.state.Tiles, func(_ ecs.EntityID, anim *component.Animation, tile *component.Tile) {
		anim.Advance(dt)
		tile.FrameIndex = anim.FrameIndex()
	})
}
