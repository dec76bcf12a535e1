package system

import (
	"time"

	coresys "github.com/isoarena/game/internal/core/system"
	"github.com/isoarena/game/internal/render"
	"github.com/isoarena/game/internal/world"
)

// RenderSystem submits the frame. A fatal backend error is kept for the
// frame driver to report.
type RenderSystem struct {
	state    *world.State
	renderer *render.Renderer
	err      error
}

func NewRenderSystem(state *world.State, renderer *render.Renderer) *RenderSystem {
	return &RenderSystem{state: state, renderer: renderer}
}

func (s *RenderSystem) Name() string    { return NameRender }
func (s *RenderSystem) After() []string { return []string{NameMesh, NameCamera} }

func (s *RenderSystem) Access() coresys.Access {
	return coresys.Access{Reads: []string{resCamera}, Writes: []string{resGPU}}
}

func (s *RenderSystem) Update(_ time.Duration) {
	s.err = s.renderer.Render(s.state.Camera.ViewProjection())
}

// TakeErr returns and clears the last fatal render error.
func (s *RenderSystem) TakeErr() error {
	err := s.err
	s.err = nil
	return err
}
