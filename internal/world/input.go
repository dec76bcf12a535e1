package world

import "github.com/go-gl/mathgl/mgl32"

// Key is a logical game key. The window adapter maps physical keys onto it.
type Key uint8

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyAttack
	KeyZoomIn
	KeyZoomOut
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyAttack:
		return "attack"
	case KeyZoomIn:
		return "zoom_in"
	case KeyZoomOut:
		return "zoom_out"
	}
	return "unknown"
}

// Input holds latched key state. A flag stays set from its press event
// until its release event. Accessed only from the frame goroutine.
type Input struct {
	Up, Down, Left, Right bool
	Attack                bool
	Cursor                mgl32.Vec2

	zoom int // pending zoom steps, consumed by the camera system
}

// Apply records a key transition.
func (in *Input) Apply(k Key, pressed bool) {
	switch k {
	case KeyUp:
		in.Up = pressed
	case KeyDown:
		in.Down = pressed
	case KeyLeft:
		in.Left = pressed
	case KeyRight:
		in.Right = pressed
	case KeyAttack:
		in.Attack = pressed
	case KeyZoomIn:
		if pressed {
			in.zoom++
		}
	case KeyZoomOut:
		if pressed {
			in.zoom--
		}
	}
}

// Axis returns the held direction as a sign vector. Opposite keys cancel.
func (in *Input) Axis() (int, int) {
	x, y := 0, 0
	if in.Left {
		x--
	}
	if in.Right {
		x++
	}
	if in.Down {
		y--
	}
	if in.Up {
		y++
	}
	return x, y
}

// TakeZoom returns and clears the pending zoom steps.
func (in *Input) TakeZoom() int {
	z := in.zoom
	in.zoom = 0
	return z
}
