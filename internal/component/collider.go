package component

import "github.com/go-gl/mathgl/mgl32"

type BodyKind uint8

const (
	Static BodyKind = iota
	Kinematic
	Dynamic
)

func (k BodyKind) String() string {
	switch k {
	case Static:
		return "static"
	case Kinematic:
		return "kinematic"
	case Dynamic:
		return "dynamic"
	}
	return "unknown"
}

// Collider is an AABB body. Offset holds left, right, bottom and top edges
// relative to the owning Transform position. Velocity is in world units
// per second.
type Collider struct {
	Offset   [4]float32
	Velocity mgl32.Vec2
	Trigger  bool
	Body     BodyKind
}

// DefaultCollider is the body given to actors unless a template says otherwise.
func DefaultCollider() Collider {
	return Collider{
		Offset: [4]float32{-1, 0, -0.25, 0.25},
		Body:   Kinematic,
	}
}

// Bounds returns the world-space box for a body at pos.
func (c *Collider) Bounds(pos mgl32.Vec3) AABB {
	return AABB{
		MinX: pos[0] + c.Offset[0],
		MaxX: pos[0] + c.Offset[1],
		MinY: pos[1] + c.Offset[2],
		MaxY: pos[1] + c.Offset[3],
	}
}

type AABB struct {
	MinX, MaxX, MinY, MaxY float32
}

// Overlaps reports strict interior overlap; touching edges do not count.
func (a AABB) Overlaps(b AABB) bool {
	return a.MinX < b.MaxX && a.MaxX > b.MinX && a.MinY < b.MaxY && a.MaxY > b.MinY
}

func (a AABB) Translate(dx, dy float32) AABB {
	return AABB{a.MinX + dx, a.MaxX + dx, a.MinY + dy, a.MaxY + dy}
}

func (a AABB) Center() mgl32.Vec2 {
	return mgl32.Vec2{(a.MinX + a.MaxX) / 2, (a.MinY + a.MaxY) / 2}
}

// Overlap returns the penetration depth on each axis. Values are only
// meaningful when the boxes overlap.
func (a AABB) Overlap(b AABB) (float32, float32) {
	ox := min(a.MaxX, b.MaxX) - max(a.MinX, b.MinX)
	oy := min(a.MaxY, b.MaxY) - max(a.MinY, b.MinY)
	return ox, oy
}
