package component

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/isoarena/game/internal/core/ecs"
)

// Player marks the controllable entity.
type Player struct {
	Speed float32
}

// Behavior is the AI tier an enemy is currently in.
type Behavior uint8

const (
	Idle Behavior = iota
	Chase
	Melee
)

func (b Behavior) String() string {
	switch b {
	case Idle:
		return "idle"
	case Chase:
		return "chase"
	case Melee:
		return "attack"
	}
	return "unknown"
}

// Enemy holds AI state. RetargetTimer accumulates seconds; the enemy
// re-evaluates its target once the timer reaches 1/Speed.
type Enemy struct {
	Template      string
	Speed         float32
	RetargetTimer float32
	Behavior      Behavior
}

// AttackMaker is a fire-intent latch. Logic sets Fire; the combat spawner
// clears it when it creates the projectile.
type AttackMaker struct {
	Fire bool
}

// Attack is a live projectile.
type Attack struct {
	Owner    ecs.EntityID
	Duration float32
	Elapsed  float32
	Movement mgl32.Vec2 // world units per second
}
