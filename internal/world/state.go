package world

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/isoarena/game/internal/component"
	"github.com/isoarena/game/internal/core/ecs"
	"github.com/isoarena/game/internal/core/event"
)

// State is the explicit world context handed to every system. It owns the
// ECS world and its component stores together with the per-frame
// resources. Constructed once at startup.
type State struct {
	World *ecs.World
	Bus   *event.Bus
	Rand  *rand.Rand
	Log   *zap.Logger

	Delta   DeltaTime
	Input   Input
	Camera  *Camera
	TileMap *TileMapStorage

	Transforms   *ecs.Store[component.Transform]
	Tiles        *ecs.Store[component.Tile]
	Animations   *ecs.Store[component.Animation]
	Colliders    *ecs.Store[component.Collider]
	Attacks      *ecs.Store[component.Attack]
	AttackMakers *ecs.Store[component.AttackMaker]
	Players      *ecs.Store[component.Player]
	Enemies      *ecs.Store[component.Enemy]
}

// NewRand returns the seeded generator shared by systems that need
// randomness. The same seed always yields the same world.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func NewState(log *zap.Logger, rng *rand.Rand, cam *Camera, tiles *TileMapStorage) *State {
	w := ecs.NewWorld()
	return &State{
		World:   w,
		Bus:     event.NewBus(),
		Rand:    rng,
		Log:     log,
		Camera:  cam,
		TileMap: tiles,

		Transforms:   ecs.Register(w, ecs.NewStore[component.Transform]()),
		Tiles:        ecs.Register(w, ecs.NewStore[component.Tile]()),
		Animations:   ecs.Register(w, ecs.NewStore[component.Animation]()),
		Colliders:    ecs.Register(w, ecs.NewStore[component.Collider]()),
		Attacks:      ecs.Register(w, ecs.NewStore[component.Attack]()),
		AttackMakers: ecs.Register(w, ecs.NewStore[component.AttackMaker]()),
		Players:      ecs.Register(w, ecs.NewStore[component.Player]()),
		Enemies:      ecs.Register(w, ecs.NewStore[component.Enemy]()),
	}
}

// PlayerEntity returns the controllable entity, if one exists.
func (s *State) PlayerEntity() (ecs.EntityID, bool) {
	var found ecs.EntityID
	s.Players.Each(func(id ecs.EntityID, _ *component.Player) {
		if found == 0 {
			found = id
		}
	})
	return found, found != 0
}

// PlayerPosition returns the ground-plane position of the player.
func (s *State) PlayerPosition() (mgl32.Vec2, bool) {
	id, ok := s.PlayerEntity()
	if !ok {
		return mgl32.Vec2{}, false
	}
	tr, ok := s.Transforms.Get(id)
	if !ok {
		return mgl32.Vec2{}, false
	}
	return tr.XY(), true
}

// EntityCount reports live entities.
func (s *State) EntityCount() int {
	return s.World.Pool().Len()
}
