package render

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Renderer submits one draw pass per frame from the ResourceManager state.
type Renderer struct {
	backend   Backend
	resources *ResourceManager
	log       *zap.Logger

	width, height int
	frames        uint64
	skipped       uint64
}

func NewRenderer(backend Backend, resources *ResourceManager, log *zap.Logger) *Renderer {
	return &Renderer{backend: backend, resources: resources, log: log}
}

func (r *Renderer) Resources() *ResourceManager { return r.resources }

// Resize records the surface size and reconfigures the backend.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	r.backend.Resize(width, height)
}

// Render uploads the camera and draws every atlas with instances.
// Recoverable surface errors skip the frame and return nil; out of memory
// and unknown errors are returned.
func (r *Renderer) Render(viewProj mgl32.Mat4) error {
	r.resources.WriteCamera(viewProj)

	pass, err := r.backend.BeginRenderPass()
	if err != nil {
		return r.surfaceError(err)
	}
	pass.SetBindGroup(SlotCamera, r.resources.CameraBindGroup())
	for _, mesh := range r.resources.Meshes() {
		if mesh.NumInstances == 0 {
			continue
		}
		pass.SetBindGroup(SlotTexture, mesh.BindGroup)
		pass.SetVertexBuffer(SlotVertex, mesh.Vertex)
		pass.SetVertexBuffer(SlotInstance, mesh.Instance)
		pass.SetIndexBuffer(mesh.Index)
		pass.DrawIndexed(Range{0, mesh.IndexCount}, Range{0, uint32(mesh.NumInstances)})
	}
	pass.End()

	if err := r.backend.Present(); err != nil {
		return r.surfaceError(err)
	}
	r.frames++
	return nil
}

func (r *Renderer) surfaceError(err error) error {
	switch {
	case errors.Is(err, ErrSurfaceLost), errors.Is(err, ErrSurfaceOutdated):
		r.skipped++
		r.log.Debug("surface needs reconfigure, frame skipped", zap.Error(err))
		r.backend.Resize(r.width, r.height)
		return nil
	case errors.Is(err, ErrSurfaceTimeout):
		r.skipped++
		r.log.Warn("surface timeout, frame skipped")
		return nil
	}
	// ErrOutOfMemory and anything unrecognized end the loop.
	return fmt.Errorf("render frame: %w", err)
}

// Frames counts presented frames.
func (r *Renderer) Frames() uint64 { return r.frames }

// Skipped counts frames dropped on recoverable surface errors.
func (r *Renderer) Skipped() uint64 { return r.skipped }
