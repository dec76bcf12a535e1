package component

import "github.com/go-gl/mathgl/mgl32"

// Tile selects a cell of a texture atlas. Atlas must not change after spawn.
type Tile struct {
	FrameIndex [2]uint8
	UVSize     mgl32.Vec2
	Atlas      string
}

// UV returns the top-left texture coordinate of the selected cell.
func (t *Tile) UV() mgl32.Vec2 {
	return mgl32.Vec2{
		float32(t.FrameIndex[0]) * t.UVSize[0],
		float32(t.FrameIndex[1]) * t.UVSize[1],
	}
}

// UVRect returns the cell as (min, max) texture coordinates.
func (t *Tile) UVRect() (mgl32.Vec2, mgl32.Vec2) {
	min := t.UV()
	return min, min.Add(t.UVSize)
}
