package shader

import (
	"strconv"

	"github.com/Carmen-Shannon/oxy-shade/material"
	"github.com/Carmen-Shannon/oxy-shade/porttype"
)

// AssembleCompose builds the WGSL bundle for an implicit compose pass: a
// fullscreen blit sampling one upstream texture (a draw pass's output or
// one composite's target) straight through the alpha treatment into
// another composite's target. The shader-space assembly stage synthesizes
// one of these wherever the scene graph itself names no shader, so the
// bundle it builds never goes through the node-graph compiler — sourceName
// is registered directly as a pass-texture binding instead of being
// dispatched from a scene node.
func AssembleCompose(passID string, domainWidth, domainHeight float32, sourceName string) *Bundle {
	ctx := material.NewContext()
	slot := ctx.RegisterPassBinding(sourceName, "out")

	out := material.TypedExpression{
		Text: uvSampleText(slot),
		Type: porttype.Vec4,
	}

	bindings := bindingsFromContext(ctx, false)

	vertex := assembleVertex(bindings, false)
	fragment := assembleFragment(out, ctx, bindings, BlendAlpha, true)
	fragmentBody := assembleFragment(out, ctx, bindings, BlendAlpha, false)
	module := vertex + "\n\n" + fragmentBody

	return &Bundle{
		PassID: passID,
		VertexWGSL: vertex,
		FragmentWGSL: fragment,
		ModuleWGSL: module,
		Bindings: bindings,
		BlendPreset: BlendAlpha,
		SampleCount: 1,
		DomainWidth: domainWidth,
		DomainHeight: domainHeight,
	}
}

// uvSampleText emits a plain textureSample against the compose pass's
// single pass-texture slot, at the same Y-flipped uv that emitAttribute
// emits for Attribute.uv.
func uvSampleText(slot int) string {
	s := strconv.Itoa(slot)
	return "textureSample(tex_" + s + ", samp_" + s + ", vec2f(in.uv.x, 1.0 - in.uv.y))"
}
