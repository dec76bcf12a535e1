package component

import "github.com/go-gl/mathgl/mgl32"

// DepthScale maps world Y to draw depth: z = 1 - y/DepthScale.
const DepthScale = 10000

// Transform places an entity in the world. Position.Z is always derived
// from Position.Y so sprites further back draw behind.
type Transform struct {
	Position mgl32.Vec3
	Size     mgl32.Vec2
	Facing   Direction
}

func NewTransform(x, y float32, size mgl32.Vec2, facing Direction) Transform {
	return Transform{
		Position: mgl32.Vec3{x, y, DepthOf(y)},
		Size:     size,
		Facing:   facing,
	}
}

func DepthOf(y float32) float32 {
	return 1 - y/DepthScale
}

// Translate moves the transform on the ground plane and refreshes depth.
func (t *Transform) Translate(d mgl32.Vec2) {
	t.SetXY(t.Position[0]+d[0], t.Position[1]+d[1])
}

func (t *Transform) SetXY(x, y float32) {
	t.Position = mgl32.Vec3{x, y, DepthOf(y)}
}

func (t *Transform) XY() mgl32.Vec2 {
	return t.Position.Vec2()
}

// Matrix builds the model matrix: translate to Position, scale by Size.
func (t *Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2]).
		Mul4(mgl32.Scale3D(t.Size[0], t.Size[1], 1))
}
