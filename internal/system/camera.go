package system

import (
	"time"

	coresys "github.com/isoarena/game/internal/core/system"
	"github.com/isoarena/game/internal/world"
)

// CameraSystem moves the camera onto the player's resolved position,
// applies pending zoom steps and streams tile chunks.
type CameraSystem struct {
	state *world.State
}

func NewCameraSystem(state *world.State) *CameraSystem {
	return &CameraSystem{state: state}
}

func (s *CameraSystem) Name() string    { return NameCamera }
func (s *CameraSystem) After() []string { return []string{NamePhysics} }

func (s *CameraSystem) Access() coresys.Access {
	return coresys.Access{
		Reads:  []string{resTransform, resPlayer, resInput},
		Writes: []string{resCamera, resTileMap},
	}
}

func (s *CameraSystem) Update(_ time.Duration) {
	st := s.state
	cam := st.Camera
	if p, ok := st.PlayerPosition(); ok {
		cam.Move(p.Sub(cam.Position()))
	}
	cam.ZoomBy(st.Input.TakeZoom())
	cam.Update(st.Delta.Seconds())
	st.TileMap.UpdateTileGrid(cam.Position())
}
