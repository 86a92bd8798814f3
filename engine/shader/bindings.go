package shader

import "github.com/Carmen-Shannon/oxy-shade/material"

// BlendPreset names a fixed fragment-output blend/clamp treatment. The set
// is closed; assembly never invents a new one per pass.
type BlendPreset string

const (
	BlendOpaque BlendPreset = "opaque"
	BlendAlpha BlendPreset = "alpha"
	BlendAdd BlendPreset = "add"
)

// TextureSlot is one group-1 resource the fragment shader samples:
// `var tex_N: texture_2d<f32>` plus `var samp_N: sampler`, named after the
// source it was registered against.
type TextureSlot struct {
	Slot int
	Name string
}

// GraphInputSlot is one entry in the group-0 graph-inputs uniform: the
// `graph_inputs.v<Index>` slot a live-editable literal node reads from,
// identified by the original scene-authored node id (never a synthesized
// "sys.wrap.*" passthrough's own id), so a host can match a slot back to
// the node an editor shows.
type GraphInputSlot struct {
	Index int
	NodeID string
}

// Bindings is the pass bindings metadata half of a Bundle ("WGSL shader
// bundle"): the group-0 layout shape (always Params at binding 0, an
// optional instance storage buffer at binding 1, an optional graph-inputs
// uniform at binding 2) and the group-1 texture/sampler slots in
// assigned order.
type Bindings struct {
	HasInstanceBuffer bool
	HasGraphInputs bool
	GraphInputCount int
	GraphInputs []GraphInputSlot
	Textures []TextureSlot
}

// bindingsFromContext converts a material compile context's accumulated
// bind entries into pass bindings metadata, assigning slots in first-use
// order exactly as the context recorded them.
func bindingsFromContext(ctx *material.Context, instanced bool) Bindings {
	textures := make([]TextureSlot, 0, len(ctx.ImageBindings())+len(ctx.PassBindings()))
	for _, b := range ctx.ImageBindings() {
		textures = append(textures, TextureSlot{Slot: b.Slot, Name: b.NodeID})
	}
	base := len(ctx.ImageBindings())
	for _, b := range ctx.PassBindings() {
		textures = append(textures, TextureSlot{Slot: base + b.Slot, Name: b.NodeID})
	}

	graphInputEntries := ctx.GraphInputs()
	graphInputs := make([]GraphInputSlot, len(graphInputEntries))
	for i, g := range graphInputEntries {
		graphInputs[i] = GraphInputSlot{Index: i, NodeID: g.NodeID}
	}

	return Bindings{
		HasInstanceBuffer: instanced,
		HasGraphInputs: len(graphInputEntries) > 0,
		GraphInputCount: len(graphInputEntries),
		GraphInputs: graphInputs,
		Textures: textures,
	}
}
