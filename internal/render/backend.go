package render

import "errors"

// Surface outcomes reported by BeginRenderPass and Present.
var (
	ErrSurfaceLost     = errors.New("render: surface lost")
	ErrSurfaceOutdated = errors.New("render: surface outdated")
	ErrSurfaceTimeout  = errors.New("render: surface timeout")
	ErrOutOfMemory     = errors.New("render: out of memory")
)

type BufferID uint32
type BindGroupID uint32

type BufferUsage uint8

const (
	UsageVertex BufferUsage = iota
	UsageIndex
	UsageInstance
	UsageUniform
)

func (u BufferUsage) String() string {
	switch u {
	case UsageVertex:
		return "vertex"
	case UsageIndex:
		return "index"
	case UsageInstance:
		return "instance"
	case UsageUniform:
		return "uniform"
	}
	return "unknown"
}

// BindGroupDesc describes a bind group: either an atlas texture or a
// uniform buffer.
type BindGroupDesc struct {
	Label   string
	Texture string // atlas name; empty for uniform groups
	Uniform BufferID
}

// Range is a half-open [Start, End) span of indices or instances.
type Range struct {
	Start, End uint32
}

func (r Range) Len() uint32 { return r.End - r.Start }

// Backend is the GPU device seen by the core. Buffer writes are queued and
// become visible at the next submit.
type Backend interface {
	CreateBuffer(data []byte, usage BufferUsage) BufferID
	WriteBuffer(buf BufferID, offset int, data []byte)
	// DestroyBuffer releases buf. The handle must not be used again.
	DestroyBuffer(buf BufferID)
	CreateBindGroup(desc BindGroupDesc) BindGroupID
	BeginRenderPass() (RenderPass, error)
	Present() error
	// Resize reconfigures the surface for a new window size.
	Resize(width, height int)
}

// RenderPass records draw commands for one frame.
type RenderPass interface {
	SetBindGroup(slot int, group BindGroupID)
	SetVertexBuffer(slot int, buf BufferID)
	SetIndexBuffer(buf BufferID)
	DrawIndexed(indices, instances Range)
	End()
}

// Bind slots shared by the renderer and backends.
const (
	SlotCamera  = 0
	SlotTexture = 1

	SlotVertex   = 0
	SlotInstance = 1
)
