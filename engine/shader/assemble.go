package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-shade/material"
	"github.com/Carmen-Shannon/oxy-shade/resolve"
)

// Bundle is the per-pass compiled artifact ("WGSL shader bundle"):
// the vertex module, the fragment module, the two concatenated into one
// combined module (the shape most consumers want), the pass bindings
// metadata, the blend preset, the MSAA request, the coordinate domain, and
// the resolved geometry footprint.
type Bundle struct {
	PassID string
	VertexWGSL string
	FragmentWGSL string
	ModuleWGSL string
	Bindings Bindings
	BlendPreset BlendPreset
	SampleCount int
	DomainWidth float32
	DomainHeight float32
	Geometry resolve.Geometry
	// InstanceData is the marshaled per-instance transform vertex buffer
	// (engine/instancing.MarshalVertexBuffer's output) for an instanced
	// pass, nil otherwise. Assemble never populates this itself — it only
	// knows whether the pass is instanced (Bindings.HasInstanceBuffer), not
	// the placement list a caller resolved off the scene graph, so the
	// caller attaches it after Assemble returns.
	InstanceData []byte
}

// AssembleOptions carries the per-pass choices assembly needs beyond the
// material context and draw context: whether the pass is instanced (and so
// receives the four extra transform attributes) and the requested
// blend/MSAA treatment.
type AssembleOptions struct {
	Instanced bool
	BlendPreset BlendPreset
	SampleCount int
}

// Assemble builds the complete WGSL bundle for one draw pass: a vertex
// stage emitting VSOut (clip position, uv, bottom-left frag_coord_gl,
// geometry-local pixel coordinate, geometry size), and a fragment stage
// substituting the compiled output expression and applying the blend
// preset's premultiply/clamp treatment.
func Assemble(passID string, draw resolve.DrawContext, out material.TypedExpression, ctx *material.Context, opts AssembleOptions) *Bundle {
	bindings := bindingsFromContext(ctx, opts.Instanced)

	vertex := assembleVertex(bindings, opts.Instanced)
	fragment := assembleFragment(out, ctx, bindings, opts.BlendPreset, true)
	// The combined module shares one declaration of VSOut (vertex's copy);
	// the fragment-only half contributes just its own bindings, helpers,
	// and entry point, so re-declaring a struct already in scope doesn't
	// make the combined module invalid WGSL.
	fragmentBody := assembleFragment(out, ctx, bindings, opts.BlendPreset, false)
	module := vertex + "\n\n" + fragmentBody

	return &Bundle{
		PassID: passID,
		VertexWGSL: vertex,
		FragmentWGSL: fragment,
		ModuleWGSL: module,
		Bindings: bindings,
		BlendPreset: opts.BlendPreset,
		SampleCount: opts.SampleCount,
		DomainWidth: draw.DomainWidth,
		DomainHeight: draw.DomainHeight,
		Geometry: draw.Geometry,
	}
}

// assembleVertex emits the group-0 Params binding, the optional group-0
// instance storage buffer, the vertex input struct (position + uv,
// optionally widened with the four instanced-transform attributes), the
// VSOut struct, and the vertex entry point. A non-instanced pass places the
// unit quad from params.scale, params.translate and params.center; an
// instanced pass applies its per-instance matrix (baked CPU-side through
// common.Build2DTransform), read from the instance_row0..3 vertex
// attributes, followed by params.center.
func assembleVertex(bindings Bindings, instanced bool) string {
	var b strings.Builder

	b.WriteString(paramsWGSLSource)
	b.WriteString("\n\n")
	b.WriteString("@group(0) @binding(0) var<uniform> params: Params;\n")
	if bindings.HasInstanceBuffer {
		b.WriteString("@group(0) @binding(1) var<storage, read> instances: array<mat4x4<f32>>;\n")
	}
	if bindings.HasGraphInputs {
		fmt.Fprintf(&b, "struct GraphInputs {\n v: array<vec4f, %d>,\n}\n", bindings.GraphInputCount)
		b.WriteString("@group(0) @binding(2) var<uniform> graph_inputs: GraphInputs;\n")
	}
	b.WriteString("\n")

	b.WriteString("struct VertexInput {\n")
	b.WriteString("    @location(0) position: vec2f,\n")
	b.WriteString("    @location(1) uv: vec2f,\n")
	if instanced {
		b.WriteString("    @location(2) instance_row0: vec4f,\n")
		b.WriteString("    @location(3) instance_row1: vec4f,\n")
		b.WriteString("    @location(4) instance_row2: vec4f,\n")
		b.WriteString("    @location(5) instance_row3: vec4f,\n")
	}
	b.WriteString("}\n\n")

	b.WriteString("struct VSOut {\n")
	b.WriteString("    @builtin(position) clip_position: vec4f,\n")
	b.WriteString("    @location(0) uv: vec2f,\n")
	b.WriteString("    @location(1) frag_coord_gl: vec2f,\n")
	b.WriteString("    @location(2) local_px: vec2f,\n")
	b.WriteString("    @location(3) geometry_size: vec2f,\n")
	b.WriteString("}\n\n")

	b.WriteString("@vertex\n")
	b.WriteString("fn vs_main(in: VertexInput) -> VSOut {\n")
	b.WriteString("    var out: VSOut;\n")
	if instanced {
		b.WriteString("    let instance_transform = mat4x4f(in.instance_row0, in.instance_row1, in.instance_row2, in.instance_row3);\n")
		b.WriteString("    let local = vec4f(in.position * params.geometry_size, 0.0, 1.0);\n")
		b.WriteString("    let world_px = (instance_transform * local).xy + params.center;\n")
	} else {
		b.WriteString("    let scaled = in.position * params.scale * params.geometry_size;\n")
		b.WriteString("    let world_px = scaled + params.translate + params.center;\n")
	}
	b.WriteString("    let ndc = (world_px / params.target_size) * 2.0 - vec2f(1.0, 1.0);\n")
	b.WriteString("    out.clip_position = vec4f(ndc.x, -ndc.y, 0.0, 1.0);\n")
	b.WriteString("    out.uv = in.uv;\n")
	b.WriteString("    out.frag_coord_gl = vec2f(world_px.x, params.target_size.y - world_px.y);\n")
	b.WriteString("    out.local_px = in.position * params.geometry_size;\n")
	b.WriteString("    out.geometry_size = params.geometry_size;\n")
	b.WriteString("    return out;\n")
	b.WriteString("}\n")

	return b.String()
}

// assembleFragment emits the group-1 texture/sampler declarations, any
// deduplicated helper functions the material compiler registered, and the
// fragment entry point substituting the compiled output expression,
// applying the blend preset's premultiply/clamp treatment. declareVSOut is
// false when the caller already has a VSOut declaration in scope (building
// the combined module right after the vertex half).
func assembleFragment(out material.TypedExpression, ctx *material.Context, bindings Bindings, preset BlendPreset, declareVSOut bool) string {
	var b strings.Builder

	for _, tex := range bindings.Textures {
		fmt.Fprintf(&b, "@group(1) @binding(%d) var tex_%d: texture_2d<f32>;\n", tex.Slot*2, tex.Slot)
		fmt.Fprintf(&b, "@group(1) @binding(%d) var samp_%d: sampler;\n", tex.Slot*2+1, tex.Slot)
	}
	if len(bindings.Textures) > 0 {
		b.WriteString("\n")
	}

	for _, decl := range ctx.HelperDecls() {
		b.WriteString(decl)
		b.WriteString("\n\n")
	}

	if declareVSOut {
		b.WriteString("struct VSOut {\n")
		b.WriteString("    @builtin(position) clip_position: vec4f,\n")
		b.WriteString("    @location(0) uv: vec2f,\n")
		b.WriteString("    @location(1) frag_coord_gl: vec2f,\n")
		b.WriteString("    @location(2) local_px: vec2f,\n")
		b.WriteString("    @location(3) geometry_size: vec2f,\n")
		b.WriteString("}\n\n")
	}

	b.WriteString("@fragment\n")
	b.WriteString("fn fs_main(in: VSOut) -> @location(0) vec4f {\n")
	fmt.Fprintf(&b, "    var color = %s;\n", vec4Text(out))
	switch preset {
	case BlendAlpha:
		b.WriteString("    color = vec4f(color.rgb * color.a, color.a);\n")
	case BlendAdd:
		b.WriteString("    color = vec4f(color.rgb * color.a, color.a);\n")
	case BlendOpaque:
		b.WriteString("    color = vec4f(color.rgb, 1.0);\n")
	}
	b.WriteString("    return clamp(color, vec4f(0.0), vec4f(1.0));\n")
	b.WriteString("}\n")

	return b.String()
}

// vec4Text widens a typed expression's text to vec4, for fragment outputs
// the material compiler produced at a narrower type (a bare f32 Time
// passthrough, for instance, would never survive real validation, but
// assembly does not assume the compiler only ever hands it vec4 — it
// coerces defensively at the seam).
func vec4Text(e material.TypedExpression) string {
	switch e.Type {
	case "vec4":
		return e.Text
	case "vec3":
		return fmt.Sprintf("vec4f(%s, 1.0)", e.Text)
	case "vec2":
		return fmt.Sprintf("vec4f(%s, 0.0, 1.0)", e.Text)
	default:
		return fmt.Sprintf("vec4f(%s, %s, %s, 1.0)", e.Text, e.Text, e.Text)
	}
}
