package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/isoarena/game/internal/config"
)

type Projection uint8

const (
	Orthographic Projection = iota
	Perspective
)

func ParseProjection(s string) (Projection, error) {
	switch s {
	case "", "orthographic":
		return Orthographic, nil
	case "perspective":
		return Perspective, nil
	}
	return Orthographic, fmt.Errorf("unknown projection %q", s)
}

// Camera tracks a ground-plane position and produces the view-projection
// matrix. Matrices are rebuilt on every call, never cached across frames.
type Camera struct {
	position mgl32.Vec2
	eyeY     float32
	eyeZ     float32

	projection Projection
	orthoHalf  float32
	fov        float32 // degrees
	near, far  float32
	aspect     float32

	zoom         float32
	zoomTarget   float32
	zoomTween    *gween.Tween
	zoomStep     float32
	zoomDuration float32 // seconds
	minZoom      float32
	maxZoom      float32
}

func NewCamera(cfg config.CameraConfig, width, height int) (*Camera, error) {
	proj, err := ParseProjection(cfg.Projection)
	if err != nil {
		return nil, err
	}
	c := &Camera{
		eyeY:         cfg.EyeY,
		eyeZ:         cfg.EyeZ,
		projection:   proj,
		orthoHalf:    cfg.OrthoHalfHeight,
		fov:          cfg.FOV,
		near:         cfg.Near,
		far:          cfg.Far,
		zoom:         1,
		zoomTarget:   1,
		zoomStep:     cfg.ZoomStep,
		zoomDuration: float32(cfg.ZoomDuration.Seconds()),
		minZoom:      cfg.MinZoom,
		maxZoom:      cfg.MaxZoom,
	}
	c.SetViewport(width, height)
	return c, nil
}

// Position returns the tracked ground-plane position.
func (c *Camera) Position() mgl32.Vec2 { return c.position }

// Move accumulates delta into the tracked position and returns the result.
func (c *Camera) Move(delta mgl32.Vec2) mgl32.Vec2 {
	c.position = c.position.Add(delta)
	return c.position
}

// SetViewport updates the aspect ratio. Non-positive sizes (minimized
// window) keep the previous aspect.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float32(width) / float32(height)
}

func (c *Camera) Aspect() float32 { return c.aspect }

func (c *Camera) Zoom() float32 { return c.zoom }

// ZoomBy starts a tween toward the current target zoom plus steps*zoomStep,
// clamped to the configured bounds.
func (c *Camera) ZoomBy(steps int) {
	if steps == 0 {
		return
	}
	target := mgl32.Clamp(c.zoomTarget+float32(steps)*c.zoomStep, c.minZoom, c.maxZoom)
	if target == c.zoomTarget {
		return
	}
	c.zoomTarget = target
	if c.zoomDuration <= 0 {
		c.zoom = target
		c.zoomTween = nil
		return
	}
	c.zoomTween = gween.New(c.zoom, target, c.zoomDuration, ease.OutQuad)
}

// Update advances the zoom tween by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.zoomTween == nil {
		return
	}
	z, done := c.zoomTween.Update(dt)
	c.zoom = z
	if done {
		c.zoom = c.zoomTarget
		c.zoomTween = nil
	}
}

// View looks down at the tracked position from the configured eye offset.
func (c *Camera) View() mgl32.Mat4 {
	x, y := c.position[0], c.position[1]
	eye := mgl32.Vec3{x, y + c.eyeY, c.eyeZ}
	center := mgl32.Vec3{x, y, 0}
	return mgl32.LookAtV(eye, center, mgl32.Vec3{0, 1, 0})
}

func (c *Camera) Projection() mgl32.Mat4 {
	if c.projection == Perspective {
		return mgl32.Perspective(mgl32.DegToRad(c.fov/c.zoom), c.aspect, c.near, c.far)
	}
	halfH := c.orthoHalf / c.zoom
	halfW := halfH * c.aspect
	return mgl32.Ortho(-halfW, halfW, -halfH, halfH, c.near, c.far)
}

func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}
