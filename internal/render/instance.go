package render

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// InstanceSize is the byte size of one InstanceRaw row.
const InstanceSize = 4 * (2 + 16)

// InstanceRaw is the per-instance row uploaded to the GPU: the atlas cell
// origin followed by the column-major model matrix.
type InstanceRaw struct {
	UV    mgl32.Vec2
	Model mgl32.Mat4
}

func NewInstance(uv mgl32.Vec2, model mgl32.Mat4) InstanceRaw {
	return InstanceRaw{UV: uv, Model: model}
}

// AppendBytes encodes r little-endian onto dst.
func (r *InstanceRaw) AppendBytes(dst []byte) []byte {
	for _, f := range r.UV {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	for _, f := range r.Model {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}

// EncodeInstances packs rows into one contiguous buffer.
func EncodeInstances(rows []InstanceRaw) []byte {
	buf := make([]byte, 0, len(rows)*InstanceSize)
	for i := range rows {
		buf = rows[i].AppendBytes(buf)
	}
	return buf
}

// DecodeInstances is the inverse of EncodeInstances. Trailing bytes that
// do not form a full row are ignored.
func DecodeInstances(buf []byte) []InstanceRaw {
	n := len(buf) / InstanceSize
	rows := make([]InstanceRaw, n)
	for i := range rows {
		off := i * InstanceSize
		for j := 0; j < 2; j++ {
			rows[i].UV[j] = readFloat(buf, off+4*j)
		}
		for j := 0; j < 16; j++ {
			rows[i].Model[j] = readFloat(buf, off+8+4*j)
		}
	}
	return rows
}

func readFloat(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}
