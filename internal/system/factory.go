package system

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/isoarena/game/internal/component"
	"github.com/isoarena/game/internal/config"
	"github.com/isoarena/game/internal/core/ecs"
	"github.com/isoarena/game/internal/data"
	"github.com/isoarena/game/internal/world"
)

// Actor footprint shared by the player and default enemies.
var actorSize = mgl32.Vec2{4, 4}

// enemyRetargetPrimed makes a fresh enemy pick a target on its first frame.
const enemyRetargetPrimed = 99

// Factory assembles the component sets for every entity kind.
type Factory struct {
	state   *world.State
	atlases *data.AtlasTable
	enemies *data.EnemyTable
	player  config.PlayerConfig
	combat  config.CombatConfig
}

func NewFactory(state *world.State, atlases *data.AtlasTable, enemies *data.EnemyTable, cfg *config.Config) (*Factory, error) {
	if err := atlases.RequireSequences(cfg.Player.Atlas, data.ActorSequences...); err != nil {
		return nil, fmt.Errorf("player atlas: %w", err)
	}
	if atlases.Get(cfg.Combat.Atlas) == nil {
		return nil, fmt.Errorf("unknown projectile atlas %q", cfg.Combat.Atlas)
	}
	return &Factory{
		state:   state,
		atlases: atlases,
		enemies: enemies,
		player:  cfg.Player,
		combat:  cfg.Combat,
	}, nil
}

func (f *Factory) actorTile(atlas string) *component.Tile {
	e := f.atlases.Get(atlas)
	return &component.Tile{
		UVSize: mgl32.Vec2{e.UVWidth, e.UVHeight},
		Atlas:  atlas,
	}
}

// SpawnPlayer creates the controllable entity at pos facing down, idle.
func (f *Factory) SpawnPlayer(pos mgl32.Vec2) (ecs.EntityID, error) {
	anim, err := component.NewAnimation(f.atlases.Animation(f.player.Atlas), seqIdle, component.Down)
	if err != nil {
		return 0, err
	}
	s := f.state
	id := s.World.CreateEntity()
	tr := component.NewTransform(pos[0], pos[1], actorSize, component.Down)
	col := component.DefaultCollider()
	tile := f.actorTile(f.player.Atlas)
	tile.FrameIndex = anim.FrameIndex()

	s.Players.Set(id, &component.Player{Speed: f.player.Speed})
	s.AttackMakers.Set(id, &component.AttackMaker{})
	s.Colliders.Set(id, &col)
	s.Tiles.Set(id, tile)
	s.Transforms.Set(id, &tr)
	s.Animations.Set(id, anim)
	return id, nil
}

// SpawnEnemy creates an enemy from a template.
func (f *Factory) SpawnEnemy(template string, pos mgl32.Vec2) (ecs.EntityID, error) {
	tmpl := f.enemies.Get(template)
	if tmpl == nil {
		return 0, fmt.Errorf("unknown enemy template %q", template)
	}
	anim, err := component.NewAnimation(f.atlases.Animation(tmpl.Atlas), seqIdle, component.Down)
	if err != nil {
		return 0, err
	}
	s := f.state
	id := s.World.CreateEntity()
	tr := component.NewTransform(pos[0], pos[1], mgl32.Vec2{tmpl.Width, tmpl.Height}, component.Down)
	col := component.DefaultCollider()
	if tmpl.Collider != nil {
		col.Offset = *tmpl.Collider
	}
	tile := f.actorTile(tmpl.Atlas)
	tile.FrameIndex = anim.FrameIndex()

	s.Enemies.Set(id, &component.Enemy{
		Template:      tmpl.Name,
		Speed:         tmpl.Speed,
		RetargetTimer: enemyRetargetPrimed,
	})
	s.Colliders.Set(id, &col)
	s.Tiles.Set(id, tile)
	s.Transforms.Set(id, &tr)
	s.Animations.Set(id, anim)
	return id, nil
}

// SpawnProjectile creates a projectile at pos flying toward facing. The
// horizontal speed is doubled to match the isometric projection.
func (f *Factory) SpawnProjectile(owner ecs.EntityID, pos mgl32.Vec2, facing component.Direction) ecs.EntityID {
	s := f.state
	id := s.World.CreateEntity()
	v := facing.Vector()
	speed := f.combat.ProjectileSpeed
	tr := component.NewTransform(pos[0], pos[1], mgl32.Vec2{1, 1}, facing)

	s.Transforms.Set(id, &tr)
	s.Tiles.Set(id, &component.Tile{
		FrameIndex: [2]uint8{uint8(facing), 0},
		UVSize:     mgl32.Vec2{f.combat.UVWidth, f.combat.UVHeight},
		Atlas:      f.combat.Atlas,
	})
	s.Attacks.Set(id, &component.Attack{
		Owner:    owner,
		Duration: f.combat.Duration,
		Movement: mgl32.Vec2{v[0] * 2 * speed, v[1] * speed},
	})
	s.Colliders.Set(id, &component.Collider{
		Offset:  [4]float32{-0.25, 0.25, -0.25, 0.25},
		Trigger: true,
		Body:    component.Dynamic,
	})
	return id
}
