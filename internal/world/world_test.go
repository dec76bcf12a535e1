package world

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/isoarena/game/internal/config"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func newTestCamera(t *testing.T, mutate func(*config.CameraConfig)) *Camera {
	t.Helper()
	cfg := config.Default().Camera
	if mutate != nil {
		mutate(&cfg)
	}
	cam, err := NewCamera(cfg, 800, 600)
	if err != nil {
		t.Fatal(err)
	}
	return cam
}

func TestCameraMove(t *testing.T) {
	cam := newTestCamera(t, nil)
	got := cam.Move(mgl32.Vec2{1, 2})
	got = cam.Move(mgl32.Vec2{0.5, -1})
	if got != (mgl32.Vec2{1.5, 1}) || cam.Position() != got {
		t.Errorf("Move result = %v, position %v", got, cam.Position())
	}
	cam.Move(mgl32.Vec2{-3, 4}.Sub(cam.Position()))
	if !approx(cam.Position()[0], -3) || !approx(cam.Position()[1], 4) {
		t.Errorf("position after delta move = %v", cam.Position())
	}
}

func TestCameraViewProjectionCentersTarget(t *testing.T) {
	for _, proj := range []string{"orthographic", "perspective"} {
		cam := newTestCamera(t, func(c *config.CameraConfig) {
			c.Projection = proj
			c.EyeY = 0
		})
		cam.Move(mgl32.Vec2{7, -2})
		p := cam.ViewProjection().Mul4x1(mgl32.Vec4{7, -2, 0, 1})
		ndcX, ndcY := p[0]/p[3], p[1]/p[3]
		if !approx(ndcX, 0) || !approx(ndcY, 0) {
			t.Errorf("%s: tracked point at NDC (%v,%v), want center", proj, ndcX, ndcY)
		}
	}
}

func TestCameraViewportChangesAspect(t *testing.T) {
	cam := newTestCamera(t, nil)
	if !approx(cam.Aspect(), 800.0/600.0) {
		t.Fatalf("aspect = %v", cam.Aspect())
	}
	cam.SetViewport(1000, 500)
	if cam.Aspect() != 2 {
		t.Errorf("aspect after resize = %v, want 2", cam.Aspect())
	}
	cam.SetViewport(0, 0)
	if cam.Aspect() != 2 {
		t.Errorf("minimized window changed aspect to %v", cam.Aspect())
	}
}

func TestCameraZoomTween(t *testing.T) {
	cam := newTestCamera(t, func(c *config.CameraConfig) {
		c.ZoomStep = 0.5
		c.ZoomDuration = 200 * time.Millisecond
		c.MaxZoom = 2
	})
	cam.ZoomBy(1)
	cam.Update(0.1)
	if z := cam.Zoom(); z <= 1 || z >= 1.5 {
		t.Errorf("mid-tween zoom = %v, want between 1 and 1.5", z)
	}
	cam.Update(0.2)
	if cam.Zoom() != 1.5 {
		t.Errorf("final zoom = %v, want 1.5", cam.Zoom())
	}
	cam.ZoomBy(5)
	cam.Update(1)
	if cam.Zoom() != 2 {
		t.Errorf("zoom = %v, want clamped to 2", cam.Zoom())
	}
}

func TestParseProjection(t *testing.T) {
	if _, err := ParseProjection("fisheye"); err == nil {
		t.Error("accepted unknown projection")
	}
}

func testTileMap() *TileMapStorage {
	cfg := config.Default().TileMap
	cfg.ChunkSize = 8
	cfg.MapChunks = 10
	cfg.VisibleRadius = 2
	return NewTileMapStorage(cfg, NewRand(1))
}

func TestTileMapGeneratesChunks(t *testing.T) {
	tm := testTileMap()
	if tm.ChunkCount() != 100 {
		t.Fatalf("ChunkCount = %d, want 100", tm.ChunkCount())
	}
	c, ok := tm.Chunk(ChunkKey{0, 0})
	if !ok || len(c.Instances) != 64 {
		t.Fatalf("origin chunk = %v, %d tiles", ok, len(c.Instances))
	}
	if c.Center != (mgl32.Vec2{}) {
		t.Errorf("origin chunk center = %v", c.Center)
	}
}

func TestTileMapDeterministicForSeed(t *testing.T) {
	a, b := testTileMap(), testTileMap()
	ca, _ := a.Chunk(ChunkKey{2, -3})
	cb, _ := b.Chunk(ChunkKey{2, -3})
	for i := range ca.Instances {
		if ca.Instances[i] != cb.Instances[i] {
			t.Fatalf("tile %d differs between runs with the same seed", i)
		}
	}
}

func TestTileMapVisibleSet(t *testing.T) {
	tm := testTileMap()
	if !tm.UpdateTileGrid(mgl32.Vec2{}) {
		t.Fatal("first update did not compute")
	}
	// radius 2 excludes chunks exactly 2 chunks away: 3x3 window
	if got := len(tm.Visible()); got != 9 {
		t.Errorf("visible chunks = %d, want 9", got)
	}
	if got := len(tm.Instances()); got != 9*64 {
		t.Errorf("instances = %d, want %d", got, 9*64)
	}
	if !tm.TakeDirty() || tm.TakeDirty() {
		t.Error("dirty flag should be set once per recompute")
	}
}

func TestTileMapHysteresis(t *testing.T) {
	tm := testTileMap()
	tm.UpdateTileGrid(mgl32.Vec2{})
	tm.TakeDirty()
	before := tm.Visible()

	for _, p := range []mgl32.Vec2{{3.9, 0}, {0, -3.9}, {2, 2}, {-2.5, 2.5}} {
		if tm.UpdateTileGrid(p) {
			t.Errorf("move to %v (< half chunk) triggered a recompute", p)
		}
	}
	if tm.TakeDirty() {
		t.Error("no-op updates marked the map dirty")
	}
	after := tm.Visible()
	if len(after) != len(before) {
		t.Fatalf("visible set changed on no-op: %v -> %v", before, after)
	}

	if !tm.UpdateTileGrid(mgl32.Vec2{4, 0}) {
		t.Error("move of exactly half a chunk did not recompute")
	}
	// the reference point moved with the recompute
	if tm.UpdateTileGrid(mgl32.Vec2{7.9, 0}) {
		t.Error("recompute did not reset the reference point")
	}
}

func TestTileMapEdgeOfWorld(t *testing.T) {
	tm := testTileMap()
	tm.UpdateTileGrid(mgl32.Vec2{1000, 1000})
	if len(tm.Visible()) != 0 || len(tm.Instances()) != 0 {
		t.Errorf("expected nothing visible far outside the map")
	}
}

func TestInputAxisAndLatch(t *testing.T) {
	var in Input
	in.Apply(KeyRight, true)
	in.Apply(KeyUp, true)
	if x, y := in.Axis(); x != 1 || y != 1 {
		t.Errorf("Axis = %d,%d want 1,1", x, y)
	}
	in.Apply(KeyLeft, true)
	if x, _ := in.Axis(); x != 0 {
		t.Errorf("opposite keys should cancel, x = %d", x)
	}
	in.Apply(KeyRight, false)
	if x, _ := in.Axis(); x != -1 {
		t.Errorf("x = %d after release, want -1", x)
	}
	in.Apply(KeyZoomIn, true)
	in.Apply(KeyZoomIn, false)
	in.Apply(KeyZoomIn, true)
	if z := in.TakeZoom(); z != 2 {
		t.Errorf("TakeZoom = %d, want 2", z)
	}
	if in.TakeZoom() != 0 {
		t.Error("zoom steps not cleared")
	}
}

func TestDeltaTimeSeconds(t *testing.T) {
	var dt DeltaTime
	dt.Set(250 * time.Millisecond)
	if dt.Seconds() != 0.25 {
		t.Errorf("Seconds = %v", dt.Seconds())
	}
}
