// package shader assembles per-pass WGSL modules: the group-0 Params
// uniform, vertex and fragment stages, the Gaussian blur mip chain, MSAA
// sample-count negotiation, and the static structural validator that
// catches emitter bugs before a compiled module ever reaches a GPU driver.
package shader

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-shade/common"
)

// paramsWGSLSource is the canonical WGSL definition of the Params struct.
// Field order here must match Params and Params.Marshal exactly: this
// layout is a compatibility surface, not an implementation detail.
const paramsWGSLSource = `struct Params {
    target_size: vec2f,
    geometry_size: vec2f,
    center: vec2f,
    translate: vec2f,
    scale: vec2f,
    time: f32,
    color: vec4f,
    camera: mat4x4<f32>,
}`

// Params is the group-0 binding-0 uniform every pass receives, laid out in
// the declared order (target size, geometry size, center, translate, scale,
// time, color, camera). The camera field is carried for shader-layout
// parity with passes that expect it; the compiler always writes the
// identity matrix into it, since there is no live camera here.
type Params struct {
	TargetSize [2]float32
	GeometrySize [2]float32
	Center [2]float32
	Translate [2]float32
	Scale [2]float32
	Time float32
	Color [4]float32
	Camera [16]float32
}

// ParamsSize is the byte size of the marshaled Params uniform: five vec2
// fields (40 bytes) plus time (4) padded to the 16-byte alignment vec4
// requires (48), plus color (16) and camera (64).
const ParamsSize = 128

// Size returns the marshaled byte size of the Params uniform.
func (p *Params) Size() int { return ParamsSize }

// Marshal serializes Params into a GPU-upload-ready buffer using the exact
// field offsets implied by WGSL uniform-address-space alignment rules
// (vec2 aligns to 8, vec4 and mat4x4 align to 16).
func (p *Params) Marshal() []byte {
	buf := make([]byte, ParamsSize)
	putVec2(buf, 0, p.TargetSize)
	putVec2(buf, 8, p.GeometrySize)
	putVec2(buf, 16, p.Center)
	putVec2(buf, 24, p.Translate)
	putVec2(buf, 32, p.Scale)
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(p.Time))
	// bytes 44:48 are alignment padding ahead of the vec4 color field.
	putVec4(buf, 48, p.Color)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[64+i*4:68+i*4], math.Float32bits(p.Camera[i]))
	}
	return buf
}

func putVec2(buf []byte, offset int, v [2]float32) {
	binary.LittleEndian.PutUint32(buf[offset:offset+4], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(buf[offset+4:offset+8], math.Float32bits(v[1]))
}

func putVec4(buf []byte, offset int, v [4]float32) {
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint32(buf[offset+i*4:offset+i*4+4], math.Float32bits(v[i]))
	}
}

// ParamsFor builds the compile-time-known snapshot of a pass's Params: the
// domain and geometry size/center the resolver already computed, plus the
// scene-authored translate/scale/color a draw-pass node carries as
// parameters. Time is left at zero and Camera at identity — both are
// genuinely per-frame runtime values with no compile-time value to bake,
// so a host overwrites them before the first real frame rather than
// trusting this snapshot for either.
func ParamsFor(domainWidth, domainHeight, geometryWidth, geometryHeight, centerX, centerY float32, translate, scale [2]float32, color [4]float32) Params {
	p := Params{
		TargetSize: [2]float32{domainWidth, domainHeight},
		GeometrySize: [2]float32{geometryWidth, geometryHeight},
		Center: [2]float32{centerX, centerY},
		Translate: translate,
		Scale: scale,
		Color: color,
	}
	common.Identity(p.Camera[:])
	return p
}
