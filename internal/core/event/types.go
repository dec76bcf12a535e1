package event

import "github.com/isoarena/game/internal/core/ecs"

// AttackSpawned is emitted when the combat spawner creates a projectile.
type AttackSpawned struct {
	Entity ecs.EntityID
	Owner  ecs.EntityID
	Facing int
}

// AttackExpired is emitted when a projectile outlives its duration.
type AttackExpired struct {
	Entity ecs.EntityID
}

type EnemySpawned struct {
	Entity   ecs.EntityID
	Template string
}

// EnemyBehaviorChanged is emitted when an enemy switches AI tier.
type EnemyBehaviorChanged struct {
	Entity ecs.EntityID
	From   string
	To     string
}

// MeshReallocated is emitted when an atlas instance buffer is recreated
// because its instance count changed.
type MeshReallocated struct {
	Atlas  string
	Before int
	After  int
}
