// package instancing bakes per-instance placement data for an instanced draw
// pass. Unlike the teacher's animator, there is no per-frame update: a scene
// document names a fixed instance list once, and this package bakes it into
// GPU-ready bytes exactly once, at compile time.
package instancing

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-shade/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Placement is one instance's 2D affine transform, in the same (pos, rotZ,
// scale) terms common.Build2DTransform expects.
type Placement struct {
	PosX, PosY float32
	RotZ float32
	ScaleX, ScaleY float32
}

// Transform is the baked GPU-aligned representation of one instance: a
// 4x4 matrix built from its Placement. Size: 64 bytes, matching the
// teacher's GPUInstanceData layout.
type Transform struct {
	Model [16]float32
}

// Bake builds one Transform per placement, composing each with
// common.Build2DTransform.
func Bake(placements []Placement) []Transform {
	out := make([]Transform, len(placements))
	for i, p := range placements {
		common.Build2DTransform(out[i].Model[:], p.PosX, p.PosY, p.RotZ, p.ScaleX, p.ScaleY)
	}
	return out
}

// Size returns the byte size of one Transform: 64 bytes.
func (t Transform) Size() int {
	return 64
}

// Marshal serializes t into a 64-byte little-endian buffer, column by
// column, matching the teacher's GPUInstanceData.Marshal loop.
func (t Transform) Marshal() []byte {
	buf := make([]byte, 64)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(t.Model[i]))
	}
	return buf
}

// MarshalStorageBuffer concatenates every baked Transform into the byte
// layout the `instances: array<mat4x4<f32>>` storage binding expects.
func MarshalStorageBuffer(transforms []Transform) []byte {
	buf := make([]byte, 0, len(transforms)*64)
	for _, t := range transforms {
		buf = append(buf, t.Marshal()...)
	}
	return buf
}

// MarshalVertexBuffer lays out the same baked transforms as a per-instance
// vertex buffer: each Transform contributes its four columns as four
// consecutive vec4s (column-major, byte-identical to MarshalStorageBuffer),
// matching VertexInput's instance_row0..instance_row3 attributes, which the
// vertex stage passes to mat4x4f as its four columns.
func MarshalVertexBuffer(transforms []Transform) []byte {
	buf := make([]byte, 0, len(transforms)*64)
	for _, t := range transforms {
		buf = append(buf, t.Marshal()...)
	}
	return buf
}

// VertexBufferLayout describes the per-instance vertex buffer: stride 64,
// four float32x4 attributes at locations 2-5 (instance_row0..row3),
// step mode Instance so the same four attributes advance once per
// instance rather than once per vertex.
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 64,
		StepMode: wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 3},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 4},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 5},
		},
	}
}
