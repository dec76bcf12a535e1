package component

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestComputeDirectionTable(t *testing.T) {
	origin := mgl32.Vec2{}
	tests := []struct {
		target mgl32.Vec2
		want   Direction
	}{
		{mgl32.Vec2{1, 0}, Right},
		{mgl32.Vec2{-1, 0}, Left},
		{mgl32.Vec2{0, 1}, Up},
		{mgl32.Vec2{0, -1}, Down},
		{mgl32.Vec2{1, 1}, UpRight},
		{mgl32.Vec2{-1, -1}, DownLeft},
		{mgl32.Vec2{1, -1}, DownRight},
		{mgl32.Vec2{-1, 1}, UpLeft},
		{mgl32.Vec2{1, 0.4}, Right},
		{mgl32.Vec2{1, 0.5}, UpRight},
		{mgl32.Vec2{1, 2.5}, Up},
		{mgl32.Vec2{-3, 1}, Left},
		{mgl32.Vec2{0, 0}, None},
	}
	for _, tt := range tests {
		if got := ComputeDirection(origin, tt.target); got != tt.want {
			t.Errorf("ComputeDirection(0, %v) = %v, want %v", tt.target, got, tt.want)
		}
	}
}

func TestComputeDirectionRelativeToSelf(t *testing.T) {
	if got := ComputeDirection(mgl32.Vec2{5, 5}, mgl32.Vec2{5, 9}); got != Up {
		t.Errorf("vertical delta = %v, want up", got)
	}
}

func TestComputeDirectionTotalAndRotational(t *testing.T) {
	// Sample angles away from bucket edges; rotating the vector 45°
	// clockwise must advance the bucket by exactly one step.
	for base := 0.0; base < 360; base += 7.5 {
		if math.Mod(base-22.5, 45) == 0 {
			continue
		}
		for r := 0.5; r <= 50; r *= 10 {
			v := polar(base, r)
			d := ComputeDirection(mgl32.Vec2{}, v)
			if d >= NumDirections {
				t.Fatalf("angle %v: got %v, want a compass direction", base, d)
			}
			next := ComputeDirection(mgl32.Vec2{}, polar(base-45, r))
			if want := (d + 1) % NumDirections; next != want {
				t.Errorf("angle %v: rotated direction = %v, want %v (from %v)", base, next, want, d)
			}
		}
	}
}

func polar(deg, r float64) mgl32.Vec2 {
	rad := deg * math.Pi / 180
	return mgl32.Vec2{float32(r * math.Cos(rad)), float32(r * math.Sin(rad))}
}

func TestDirectionOfSignVector(t *testing.T) {
	for d := Direction(0); d < NumDirections; d++ {
		v := d.Vector()
		if got := DirectionOf(int(v[0]), int(v[1])); got != d {
			t.Errorf("DirectionOf(%v) = %v, want %v", v, got, d)
		}
	}
	if DirectionOf(0, 0) != None {
		t.Error("zero vector should map to None")
	}
}

func TestIsoVelocity(t *testing.T) {
	got := Right.IsoVelocity(5)
	if got != (mgl32.Vec2{5, 0}) {
		t.Errorf("Right = %v, want (5,0)", got)
	}
	got = UpRight.IsoVelocity(1)
	if !approx(got[0], 2*0.4472135955) || !approx(got[1], 0.4472135955) {
		t.Errorf("UpRight = %v", got)
	}
	if None.IsoVelocity(3) != (mgl32.Vec2{}) {
		t.Error("None should not move")
	}
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}
