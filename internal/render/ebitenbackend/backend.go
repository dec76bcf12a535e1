// Package ebitenbackend implements render.Backend on top of ebiten. Buffers
// live in CPU memory; a render pass projects every instance on the CPU and
// submits depth-sorted quads through DrawTriangles.
package ebitenbackend

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/isoarena/game/internal/render"
)

// maxVerticesPerDraw is the uint16 index limit of one DrawTriangles call.
const maxVerticesPerDraw = 65535

// TextureSource resolves an atlas name to its image.
type TextureSource interface {
	Image(atlas string) *ebiten.Image
}

type Backend struct {
	textures TextureSource
	log      *zap.Logger

	buffers    map[render.BufferID][]byte
	groups     map[render.BindGroupID]render.BindGroupDesc
	nextBuffer render.BufferID
	nextGroup  render.BindGroupID

	target        *ebiten.Image
	width, height int

	quads []quad
	verts []ebiten.Vertex
	inds  []uint16
}

func New(textures TextureSource, log *zap.Logger) *Backend {
	return &Backend{
		textures: textures,
		log:      log,
		buffers:  make(map[render.BufferID][]byte),
		groups:   make(map[render.BindGroupID]render.BindGroupDesc),
	}
}

// SetTarget sets the image the next pass draws into. The window adapter
// calls it with the screen at the start of every Draw.
func (b *Backend) SetTarget(img *ebiten.Image) {
	b.target = img
}

func (b *Backend) CreateBuffer(data []byte, usage render.BufferUsage) render.BufferID {
	b.nextBuffer++
	b.buffers[b.nextBuffer] = append([]byte(nil), data...)
	return b.nextBuffer
}

func (b *Backend) WriteBuffer(buf render.BufferID, offset int, data []byte) {
	dst, ok := b.buffers[buf]
	if !ok || offset+len(data) > len(dst) {
		panic(fmt.Sprintf("ebitenbackend: write of %d bytes at %d to buffer %d out of range", len(data), offset, buf))
	}
	copy(dst[offset:], data)
}

func (b *Backend) DestroyBuffer(buf render.BufferID) {
	delete(b.buffers, buf)
}

func (b *Backend) CreateBindGroup(desc render.BindGroupDesc) render.BindGroupID {
	b.nextGroup++
	b.groups[b.nextGroup] = desc
	return b.nextGroup
}

// BeginRenderPass fails with ErrSurfaceOutdated until a target is set.
func (b *Backend) BeginRenderPass() (render.RenderPass, error) {
	if b.target == nil {
		return nil, render.ErrSurfaceOutdated
	}
	size := b.target.Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		return nil, render.ErrSurfaceLost
	}
	b.quads = b.quads[:0]
	return &pass{b: b}, nil
}

// Present releases the target; ebiten flips the screen itself.
func (b *Backend) Present() error {
	b.target = nil
	return nil
}

func (b *Backend) Resize(width, height int) {
	b.width, b.height = width, height
}

// quad is one projected instance waiting for the depth sort.
type quad struct {
	image *ebiten.Image
	depth float32
	seq   int
	verts []ebiten.Vertex
	inds  []uint16
}

type pass struct {
	b        *Backend
	groups   [2]render.BindGroupID
	vertex   render.BufferID
	instance render.BufferID
	index    render.BufferID
}

func (p *pass) SetBindGroup(slot int, group render.BindGroupID) {
	if slot >= 0 && slot < len(p.groups) {
		p.groups[slot] = group
	}
}

func (p *pass) SetVertexBuffer(slot int, buf render.BufferID) {
	switch slot {
	case render.SlotVertex:
		p.vertex = buf
	case render.SlotInstance:
		p.instance = buf
	}
}

func (p *pass) SetIndexBuffer(buf render.BufferID) {
	p.index = buf
}

func (p *pass) DrawIndexed(indices, instances render.Range) {
	b := p.b
	cam := b.groups[p.groups[render.SlotCamera]]
	tex := b.groups[p.groups[render.SlotTexture]]
	img := b.textures.Image(tex.Texture)
	if img == nil {
		b.log.Warn("missing texture", zap.String("atlas", tex.Texture))
		return
	}

	viewProj := render.DecodeMatrix(b.buffers[cam.Uniform])
	vertices := render.DecodeVertices(b.buffers[p.vertex])
	idx := render.DecodeIndices(b.buffers[p.index])
	if int(indices.End) > len(idx) {
		return
	}
	idx = idx[indices.Start:indices.End]
	rows := render.DecodeInstances(b.buffers[p.instance])
	if int(instances.End) < len(rows) {
		rows = rows[:instances.End]
	}

	texSize := img.Bounds().Size()
	screen := b.target.Bounds().Size()
	for i := int(instances.Start); i < len(rows); i++ {
		q := quad{
			image: img,
			depth: rows[i].Model[14],
			seq:   len(b.quads),
			verts: make([]ebiten.Vertex, len(vertices)),
			inds:  idx,
		}
		mvp := viewProj.Mul4(rows[i].Model)
		for j, v := range vertices {
			x, y := Project(mvp, v.Position, screen.X, screen.Y)
			uv := rows[i].UV.Add(v.UV)
			q.verts[j] = ebiten.Vertex{
				DstX:   x,
				DstY:   y,
				SrcX:   uv[0] * float32(texSize.X),
				SrcY:   uv[1] * float32(texSize.Y),
				ColorR: 1,
				ColorG: 1,
				ColorB: 1,
				ColorA: 1,
			}
		}
		b.quads = append(b.quads, q)
	}
}

// End sorts the pass back to front and flushes it in batches that share
// a texture.
func (p *pass) End() {
	b := p.b
	sort.SliceStable(b.quads, func(i, j int) bool {
		if b.quads[i].depth != b.quads[j].depth {
			return b.quads[i].depth < b.quads[j].depth
		}
		return b.quads[i].seq < b.quads[j].seq
	})

	var current *ebiten.Image
	for _, q := range b.quads {
		if q.image != current || len(b.verts)+len(q.verts) > maxVerticesPerDraw {
			b.flush(current)
			current = q.image
		}
		base := uint16(len(b.verts))
		b.verts = append(b.verts, q.verts...)
		for _, i := range q.inds {
			b.inds = append(b.inds, base+i)
		}
	}
	b.flush(current)
}

func (b *Backend) flush(img *ebiten.Image) {
	if len(b.verts) == 0 || img == nil {
		b.verts = b.verts[:0]
		b.inds = b.inds[:0]
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.Filter = ebiten.FilterNearest
	b.target.DrawTriangles(b.verts, b.inds, img, &op)
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

// Project maps a model-space point through mvp to screen pixels with the
// origin at the top-left corner.
func Project(mvp mgl32.Mat4, p mgl32.Vec3, width, height int) (float32, float32) {
	clip := mvp.Mul4x1(p.Vec4(1))
	w := clip[3]
	if w == 0 {
		w = 1
	}
	ndcX, ndcY := clip[0]/w, clip[1]/w
	return (ndcX + 1) / 2 * float32(width), (1 - ndcY) / 2 * float32(height)
}
