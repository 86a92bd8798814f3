// Package pipeline describes per-pass render pipeline metadata: the
// descriptor values draw-time pipeline creation would need (topology, cull
// mode, blend state, write mask, sample count), with no live GPU pipeline
// object. A compiler pass never opens a device, so this package only
// carries the decisions the shader-space assembly already made into a
// shape the caller's own pipeline cache can key and build against.
package pipeline

import "github.com/cogentcore/webgpu/wgpu"

// pipeline is the unexported implementation of Descriptor.
type pipeline struct {
	passID      string
	sampleCount int

	blendEnabled bool
	cullMode     wgpu.CullMode
	topology     wgpu.PrimitiveTopology
	frontFace    wgpu.FrontFace
	writeMask    wgpu.ColorWriteMask
	blendState   *wgpu.BlendState
}

// Descriptor is the read-only view of a compiled pass's pipeline metadata.
// Every compositor pass draws a fullscreen (or instanced) quad with no
// depth buffer, so unlike a general 3D pipeline there is no depth-test or
// depth-bias state to carry.
type Descriptor interface {
	// PassID returns the pass this descriptor was built for.
	PassID() string

	// SampleCount returns the (possibly downgraded) MSAA sample count.
	SampleCount() int

	// BlendEnabled reports whether the fragment output blends against the
	// existing target contents.
	BlendEnabled() bool

	// CullMode returns the configured cull mode.
	CullMode() wgpu.CullMode

	// Topology returns the configured primitive topology.
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the configured front-face winding order.
	FrontFace() wgpu.FrontFace

	// WriteMask returns the configured color write mask.
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the configured blend state, or nil when
	// BlendEnabled is false.
	BlendState() *wgpu.BlendState
}

var _ Descriptor = &pipeline{}

// DescriptorOption configures a Descriptor during construction.
type DescriptorOption func(*pipeline)

// NewDescriptor builds pipeline metadata for one pass. Defaults match a 2D
// compositor pass: no culling, triangle-list topology, CCW front face, full
// write mask, blending disabled.
func NewDescriptor(passID string, opts ...DescriptorOption) Descriptor {
	p := &pipeline{
		passID:      passID,
		sampleCount: 1,
		blendEnabled: false,
		cullMode:     wgpu.CullModeNone,
		topology:     wgpu.PrimitiveTopologyTriangleList,
		frontFace:    wgpu.FrontFaceCCW,
		writeMask:    wgpu.ColorWriteMaskAll,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PassID() string                       { return p.passID }
func (p *pipeline) SampleCount() int                      { return p.sampleCount }
func (p *pipeline) BlendEnabled() bool                    { return p.blendEnabled }
func (p *pipeline) CullMode() wgpu.CullMode               { return p.cullMode }
func (p *pipeline) Topology() wgpu.PrimitiveTopology      { return p.topology }
func (p *pipeline) FrontFace() wgpu.FrontFace             { return p.frontFace }
func (p *pipeline) WriteMask() wgpu.ColorWriteMask        { return p.writeMask }
func (p *pipeline) BlendState() *wgpu.BlendState          { return p.blendState }

// WithSampleCount sets the MSAA sample count.
func WithSampleCount(n int) DescriptorOption {
	return func(p *pipeline) { p.sampleCount = n }
}

// WithCullMode sets the cull mode.
func WithCullMode(mode wgpu.CullMode) DescriptorOption {
	return func(p *pipeline) { p.cullMode = mode }
}

// WithTopology sets the primitive topology.
func WithTopology(topology wgpu.PrimitiveTopology) DescriptorOption {
	return func(p *pipeline) { p.topology = topology }
}

// WithBlendState enables blending and sets the blend state.
func WithBlendState(blendState *wgpu.BlendState) DescriptorOption {
	return func(p *pipeline) {
		p.blendEnabled = true
		p.blendState = blendState
	}
}
