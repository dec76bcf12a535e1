package render

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// VertexSize is the byte size of one quad vertex: position xyz, uv.
const VertexSize = 4 * 5

// QuadIndices draws a quad as two triangles.
var QuadIndices = []uint16{0, 1, 2, 2, 3, 0}

// Vertex is one corner of the unit quad every sprite is drawn with.
type Vertex struct {
	Position mgl32.Vec3
	UV       mgl32.Vec2
}

// QuadVertices returns a unit quad centered on the origin whose texture
// coordinates span one atlas cell of uvSize.
func QuadVertices(uvSize mgl32.Vec2) []Vertex {
	const h = 0.5
	return []Vertex{
		{mgl32.Vec3{-h, -h, 0}, mgl32.Vec2{0, uvSize[1]}},
		{mgl32.Vec3{h, -h, 0}, mgl32.Vec2{uvSize[0], uvSize[1]}},
		{mgl32.Vec3{h, h, 0}, mgl32.Vec2{uvSize[0], 0}},
		{mgl32.Vec3{-h, h, 0}, mgl32.Vec2{0, 0}},
	}
}

func EncodeVertices(vs []Vertex) []byte {
	buf := make([]byte, 0, len(vs)*VertexSize)
	for _, v := range vs {
		for _, f := range v.Position {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
		for _, f := range v.UV {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}
	return buf
}

func DecodeVertices(buf []byte) []Vertex {
	vs := make([]Vertex, len(buf)/VertexSize)
	for i := range vs {
		off := i * VertexSize
		for j := 0; j < 3; j++ {
			vs[i].Position[j] = readFloat(buf, off+4*j)
		}
		for j := 0; j < 2; j++ {
			vs[i].UV[j] = readFloat(buf, off+12+4*j)
		}
	}
	return vs
}

func EncodeIndices(idx []uint16) []byte {
	buf := make([]byte, 0, len(idx)*2)
	for _, i := range idx {
		buf = binary.LittleEndian.AppendUint16(buf, i)
	}
	return buf
}

func DecodeIndices(buf []byte) []uint16 {
	idx := make([]uint16, len(buf)/2)
	for i := range idx {
		idx[i] = binary.LittleEndian.Uint16(buf[2*i:])
	}
	return idx
}

// EncodeMatrix packs a column-major matrix for a uniform buffer.
func EncodeMatrix(m mgl32.Mat4) []byte {
	buf := make([]byte, 0, 64)
	for _, f := range m {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return buf
}

func DecodeMatrix(buf []byte) mgl32.Mat4 {
	var m mgl32.Mat4
	if len(buf) < 64 {
		return m
	}
	for i := range m {
		m[i] = readFloat(buf, 4*i)
	}
	return m
}

// Mesh is the GPU state for one atlas: a shared quad plus an instance
// buffer. NumInstances is the draw count; Allocated is the instance
// buffer's capacity in rows.
type Mesh struct {
	Atlas        string
	Vertex       BufferID
	Index        BufferID
	IndexCount   uint32
	Instance     BufferID
	NumInstances int
	Allocated    int
	BindGroup    BindGroupID
}
