package world

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/isoarena/game/internal/config"
	"github.com/isoarena/game/internal/render"
)

// ChunkKey addresses a chunk by grid coordinate. Chunk (0,0) is centered on
// the world origin.
type ChunkKey struct {
	X, Y int32
}

// TileChunk is a block of ground tiles with precomputed instance rows.
// Generated once at startup and never mutated.
type TileChunk struct {
	Key       ChunkKey
	Center    mgl32.Vec2
	Instances []render.InstanceRaw
}

// TileMapStorage streams ground tiles around the camera. Only the visible
// set changes at runtime.
// Accessed only from the frame goroutine; no locks.
type TileMapStorage struct {
	chunkSize float32
	radius    int32
	chunks    map[ChunkKey]*TileChunk

	ref       mgl32.Vec2
	hasRef    bool
	visible   []ChunkKey
	instances []render.InstanceRaw
	dirty     bool
}

// NewTileMapStorage generates cfg.MapChunks² chunks around the origin.
// Tile variants come from rng so a fixed seed yields a fixed map.
func NewTileMapStorage(cfg config.TileMapConfig, rng *rand.Rand) *TileMapStorage {
	s := &TileMapStorage{
		chunkSize: cfg.ChunkSize,
		radius:    int32(cfg.VisibleRadius),
		chunks:    make(map[ChunkKey]*TileChunk, cfg.MapChunks*cfg.MapChunks),
	}
	lo := -int32(cfg.MapChunks / 2)
	hi := lo + int32(cfg.MapChunks)
	for cx := lo; cx < hi; cx++ {
		for cy := lo; cy < hi; cy++ {
			key := ChunkKey{cx, cy}
			s.chunks[key] = s.generate(key, cfg, rng)
		}
	}
	return s
}

func (s *TileMapStorage) generate(key ChunkKey, cfg config.TileMapConfig, rng *rand.Rand) *TileChunk {
	center := mgl32.Vec2{float32(key.X) * s.chunkSize, float32(key.Y) * s.chunkSize}
	side := int(s.chunkSize)
	half := float32(side) / 2
	c := &TileChunk{
		Key:       key,
		Center:    center,
		Instances: make([]render.InstanceRaw, 0, side*side),
	}
	for ix := 0; ix < side; ix++ {
		for iy := 0; iy < side; iy++ {
			x := center[0] - half + float32(ix)
			y := center[1] - half + float32(iy)
			variant := rng.IntN(cfg.Variants)
			uv := mgl32.Vec2{float32(variant) * cfg.UVWidth, 0}
			// ground sits at z=0, behind every sprite
			model := mgl32.Translate3D(x, y, 0)
			c.Instances = append(c.Instances, render.NewInstance(uv, model))
		}
	}
	return c
}

// toChunkCoord maps a world coordinate to the chunk containing it.
func (s *TileMapStorage) toChunkCoord(v float32) int32 {
	return int32(math.Floor(float64(v/s.chunkSize + 0.5)))
}

// UpdateTileGrid recomputes the visible set when the camera has moved at
// least half a chunk from the last recompute. Reports whether it did.
func (s *TileMapStorage) UpdateTileGrid(cam mgl32.Vec2) bool {
	if s.hasRef && cam.Sub(s.ref).Len() < s.chunkSize/2 {
		return false
	}
	s.ref = cam
	s.hasRef = true

	cx, cy := s.toChunkCoord(cam[0]), s.toChunkCoord(cam[1])
	limit := float32(s.radius) * s.chunkSize
	s.visible = s.visible[:0]
	for dx := -s.radius; dx <= s.radius; dx++ {
		for dy := -s.radius; dy <= s.radius; dy++ {
			c, ok := s.chunks[ChunkKey{cx + dx, cy + dy}]
			if !ok {
				continue
			}
			d := c.Center.Sub(cam)
			if abs32(d[0]) < limit && abs32(d[1]) < limit {
				s.visible = append(s.visible, c.Key)
			}
		}
	}
	sort.Slice(s.visible, func(i, j int) bool {
		a, b := s.visible[i], s.visible[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	s.instances = s.instances[:0]
	for _, k := range s.visible {
		s.instances = append(s.instances, s.chunks[k].Instances...)
	}
	s.dirty = true
	return true
}

// Instances returns the flattened rows of every visible chunk.
func (s *TileMapStorage) Instances() []render.InstanceRaw { return s.instances }

// Visible returns the visible chunk keys in row-major order.
func (s *TileMapStorage) Visible() []ChunkKey {
	return append([]ChunkKey(nil), s.visible...)
}

// TakeDirty reports whether the visible set changed since the last call.
func (s *TileMapStorage) TakeDirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}

func (s *TileMapStorage) ChunkCount() int { return len(s.chunks) }

func (s *TileMapStorage) Chunk(k ChunkKey) (*TileChunk, bool) {
	c, ok := s.chunks[k]
	return c, ok
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
