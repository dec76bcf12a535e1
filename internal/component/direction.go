package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Direction is an 8-way compass heading. The numeric order walks the
// compass clockwise starting from Left, so rotating a vector 45° clockwise
// advances the direction by one step.
type Direction uint8

const (
	Left Direction = iota
	UpLeft
	Up
	UpRight
	Right
	DownRight
	Down
	DownLeft
	None
)

// Compass directions, excluding None.
const NumDirections = 8

const (
	tan22 = 0.41421356 // tan(22.5°)
	tan67 = 2.41421356 // tan(67.5°)

	isoDiagonal = 0.4472135955 // 1/sqrt(5)
)

var directionNames = [...]string{"left", "up_left", "up", "up_right", "right", "down_right", "down", "down_left", "none"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "invalid"
}

// Diagonal reports whether d is one of the four corner directions.
func (d Direction) Diagonal() bool {
	return d == UpLeft || d == UpRight || d == DownRight || d == DownLeft
}

// Vector returns the unnormalized sign vector of d (components in {-1,0,1}).
func (d Direction) Vector() mgl32.Vec2 {
	switch d {
	case Left:
		return mgl32.Vec2{-1, 0}
	case UpLeft:
		return mgl32.Vec2{-1, 1}
	case Up:
		return mgl32.Vec2{0, 1}
	case UpRight:
		return mgl32.Vec2{1, 1}
	case Right:
		return mgl32.Vec2{1, 0}
	case DownRight:
		return mgl32.Vec2{1, -1}
	case Down:
		return mgl32.Vec2{0, -1}
	case DownLeft:
		return mgl32.Vec2{-1, -1}
	}
	return mgl32.Vec2{}
}

// IsoVelocity converts a heading into a velocity on the isometric plane.
// Diagonals are flattened so a diagonal step covers the same screen distance
// as a straight one.
func (d Direction) IsoVelocity(speed float32) mgl32.Vec2 {
	v := d.Vector()
	if d.Diagonal() {
		v = mgl32.Vec2{v[0] * 2 * isoDiagonal, v[1] * isoDiagonal}
	}
	return v.Mul(speed)
}

// DirectionOf maps a sign vector such as held input keys to a Direction.
func DirectionOf(x, y int) Direction {
	switch {
	case x < 0 && y == 0:
		return Left
	case x < 0 && y > 0:
		return UpLeft
	case x == 0 && y > 0:
		return Up
	case x > 0 && y > 0:
		return UpRight
	case x > 0 && y == 0:
		return Right
	case x > 0 && y < 0:
		return DownRight
	case x == 0 && y < 0:
		return Down
	case x < 0 && y < 0:
		return DownLeft
	}
	return None
}

// ComputeDirection buckets the vector from self to target into one of the
// eight compass directions. Coincident points yield None.
func ComputeDirection(self, target mgl32.Vec2) Direction {
	dx := target[0] - self[0]
	dy := target[1] - self[1]
	if dx == 0 {
		switch {
		case dy > 0:
			return Up
		case dy < 0:
			return Down
		}
		return None
	}

	tan := float64(dy / dx)
	switch {
	case math.Abs(tan) >= tan67:
		if dy > 0 {
			return Up
		}
		return Down
	case tan >= tan22 && tan <= tan67:
		if dy > 0 {
			return UpRight
		}
		return DownLeft
	case tan >= -tan22 && tan <= tan22:
		if dx > 0 {
			return Right
		}
		return Left
	default:
		if dy < 0 {
			return DownRight
		}
		return UpLeft
	}
}
