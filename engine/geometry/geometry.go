// package geometry holds the CPU-side vertex data a compiled pass's draw
// call needs: the unit quad every draw pass rasterizes against, and the
// byte layout describing it to a vertex buffer. It opens no GPU device and
// holds no live buffer handles; MarshalQuad returns the raw bytes a caller
// uploads however it likes.
package geometry

import (
	"encoding/binary"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
)

// Vertex is one corner of the unit quad: position in the range [-0.5, 0.5]
// on each axis (matching the vertex stage's
// "in.position * params.scale * params.geometry_size" placement rule) and
// a [0, 1] uv.
type Vertex struct {
	Position [2]float32
	UV [2]float32
}

// Size returns the byte size of one Vertex: 16 bytes (4 floats, no padding).
func (v Vertex) Size() int {
	return 16
}

// Marshal serializes v into a 16-byte little-endian buffer.
func (v Vertex) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.UV[0]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.UV[1]))
	return buf
}

// FullscreenQuad returns the six vertices (two CCW triangles, no index
// buffer) of the unit quad every draw pass rasterizes against, regardless
// of whether the pass is a fullscreen fallback or a directly-connected
// Rect2DGeometry: both cases place the same unit quad, just at different
// resolved sizes and centers (the resolver's job, not this package's).
func FullscreenQuad() []Vertex {
	return []Vertex{
		{Position: [2]float32{-0.5, -0.5}, UV: [2]float32{0, 0}},
		{Position: [2]float32{0.5, -0.5}, UV: [2]float32{1, 0}},
		{Position: [2]float32{0.5, 0.5}, UV: [2]float32{1, 1}},
		{Position: [2]float32{-0.5, -0.5}, UV: [2]float32{0, 0}},
		{Position: [2]float32{0.5, 0.5}, UV: [2]float32{1, 1}},
		{Position: [2]float32{-0.5, 0.5}, UV: [2]float32{0, 1}},
	}
}

// MarshalQuad concatenates FullscreenQuad's six vertices into one buffer,
// ready for upload as a non-indexed vertex buffer.
func MarshalQuad() []byte {
	verts := FullscreenQuad()
	buf := make([]byte, 0, len(verts)*16)
	for _, v := range verts {
		buf = append(buf, v.Marshal()...)
	}
	return buf
}

// VertexCount is the number of vertices FullscreenQuad emits per draw call
// (non-instanced path), or per instance (instanced path).
const VertexCount = 6

// VertexBufferLayout describes the non-instanced vertex buffer: stride 16,
// two float32x2 attributes (position at location 0, uv at location 1),
// matching assembleVertex's VertexInput struct exactly.
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 16,
		StepMode: wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
		},
	}
}
