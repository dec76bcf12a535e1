package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/isoarena/game/internal/core/ecs"
	coresys "github.com/isoarena/game/internal/core/system"
	"github.com/isoarena/game/internal/data"
	"github.com/isoarena/game/internal/render"
	"github.com/isoarena/game/internal/world"
)

// RegisterAtlases adds one mesh per atlas in table order.
func RegisterAtlases(rm *render.ResourceManager, atlases *data.AtlasTable) error {
	for _, name := range atlases.Names() {
		e := atlases.Get(name)
		if err := rm.AddAtlas(name, mgl32.Vec2{e.UVWidth, e.UVHeight}); err != nil {
			return err
		}
	}
	return nil
}

// MeshSystem rebuilds the per-atlas instance rows from Tile and Transform
// and hands them to the resource manager. Sprite atlases are refreshed
// every frame, including atlases whose last sprite just died; the tile
// atlas only when the visible chunk set changed.
type MeshSystem struct {
	state     *world.State
	resources *render.ResourceManager
	tileAtlas string

	ids  []ecs.EntityID
	rows map[string][]render.InstanceRaw
}

func NewMeshSystem(state *world.State, resources *render.ResourceManager, tileAtlas string) *MeshSystem {
	return &MeshSystem{
		state:     state,
		resources: resources,
		tileAtlas: tileAtlas,
		rows:      make(map[string][]render.InstanceRaw),
	}
}

func (s *MeshSystem) Name() string { return NameMesh }

func (s *MeshSystem) After() []string {
	return []string{NameAnimation, NameCombat, NamePlayer, NameEnemy, NameAttack, NamePhysics, NameCamera}
}

func (s *MeshSystem) Access() coresys.Access {
	return coresys.Access{
		Reads:  []string{resTile, resTransform},
		Writes: []string{resTileMap, resGPU},
	}
}

func (s *MeshSystem) Update(_ time.Duration) {
	st := s.state
	for atlas, rows := range s.rows {
		s.rows[atlas] = rows[:0]
	}

	s.ids = append(s.ids[:0], st.Tiles.IDs()...)
	ecs.SortIDs(s.ids)
	for _, id := range s.ids {
		tile, _ := st.Tiles.Get(id)
		tr, ok := st.Transforms.Get(id)
		if !ok {
			continue
		}
		s.rows[tile.Atlas] = append(s.rows[tile.Atlas], render.NewInstance(tile.UV(), tr.Matrix()))
	}

	for _, mesh := range s.resources.Meshes() {
		if mesh.Atlas == s.tileAtlas {
			continue
		}
		s.resources.UpdateMeshInstance(mesh.Atlas, s.rows[mesh.Atlas])
	}
	if st.TileMap.TakeDirty() {
		s.resources.UpdateMeshInstance(s.tileAtlas, st.TileMap.Instances())
	}
}
