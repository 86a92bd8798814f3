// package compiler is the top-level entry point: it runs the seven compile
// stages in order over one scene document and schema catalog, and produces
// the assembled ShaderSpace a host runtime executes. The compiler core is
// single-threaded and purely functional per call; Pool is the only place
// concurrency enters this package, and only to arbitrate between
// successive calls, never within one.
package compiler

import (
	"github.com/Carmen-Shannon/oxy-shade/compileerr"
	"github.com/Carmen-Shannon/oxy-shade/engine/instancing"
	"github.com/Carmen-Shannon/oxy-shade/engine/profiler"
	"github.com/Carmen-Shannon/oxy-shade/engine/shader"
	"github.com/Carmen-Shannon/oxy-shade/engine/shaderspace"
	"github.com/Carmen-Shannon/oxy-shade/material"
	"github.com/Carmen-Shannon/oxy-shade/resolve"
	"github.com/Carmen-Shannon/oxy-shade/scene"
	"github.com/Carmen-Shannon/oxy-shade/sceneprep"
)

// colorOutputPort is the input port every draw-pass node type feeds its
// final material expression through. It is fixed across the closed
// draw-pass vocabulary, not schema-configurable.
const colorOutputPort = "color"

// supportedSampleCounts is the closed set of MSAA counts this compiler
// targets; passAssembleOptions downgrades any requested count outside it
// via shader.DowngradeSampleCount.
var supportedSampleCounts = map[int]bool{1: true, 2: true, 4: true, 8: true}

// Compile runs normalization, preparation, geometry/coordinate resolution,
// per-pass material compilation, per-pass WGSL assembly, static WGSL
// validation, and shader-space assembly, in that order, over one scene
// document. A failure at any stage aborts the remaining stages and returns
// immediately; warnings collected up to that point are still returned
// alongside the error so a host can surface them.
func Compile(doc scene.Document, catalog scene.Catalog) (shaderspace.ShaderSpace, []compileerr.Warning, error) {
	prof := profiler.NewProfiler()
	defer prof.Report()

	prof.Start("normalize")
	sc, err := scene.Normalize(doc, catalog)
	if err != nil {
		return nil, nil, err
	}

	prof.Start("prepare")
	prepared, err := sceneprep.Prepare(sc, catalog)
	if err != nil {
		return nil, nil, err
	}

	prof.Start("resolve")
	graph, err := resolve.Resolve(prepared)
	if err != nil {
		return nil, nil, err
	}

	prof.Start("material")
	var warnings []compileerr.Warning
	bundles := make(map[string]*shader.Bundle, len(graph.DrawPassOrder))
	for _, passID := range graph.DrawPassOrder {
		n, ok := prepared.Node(passID)
		if !ok {
			return nil, warnings, compileerr.NewCompileError(passID, "draw pass not found in prepared scene")
		}

		ctx := material.NewContext()
		out, err := material.Compile(prepared, ctx, passID, colorOutputPort)
		if err != nil {
			return nil, warnings, err
		}

		opts, warn := passAssembleOptions(passID, n)
		if warn != nil {
			warnings = append(warnings, *warn)
		}

		placements := instancePlacements(n)
		opts.Instanced = len(placements) > 0

		bundle := shader.Assemble(passID, graph.DrawContexts[passID], out, ctx, opts)
		if len(placements) > 0 {
			bundle.InstanceData = instancing.MarshalVertexBuffer(instancing.Bake(placements))
		}
		bundles[passID] = bundle
	}

	prof.Start("validate")
	for _, passID := range graph.DrawPassOrder {
		if err := shader.Validate(passID, bundles[passID].ModuleWGSL, shader.ShaderKindModule); err != nil {
			return nil, warnings, err
		}
	}

	prof.Start("assemble")
	space, err := shaderspace.Assemble(prepared, graph, bundles)
	if err != nil {
		return nil, warnings, err
	}

	for _, p := range space.Passes() {
		if err := shader.Validate(p.PassID, p.Bundle.ModuleWGSL, shader.ShaderKindModule); err != nil {
			return nil, warnings, err
		}
	}

	return space, warnings, nil
}

// passAssembleOptions reads a draw-pass node's blend/MSAA parameters,
// falling back to the closed defaults (alpha blend, no MSAA, not
// instanced) when a parameter is absent. A requested MSAA count outside
// supportedSampleCounts is downgraded via shader.DowngradeSampleCount,
// returning a warning naming passID when it differs from what was asked
// for. Instanced is left at its zero value here; Compile's per-pass loop
// sets it separately once instancePlacements has read the node's own
// "instances" parameter, since that decision needs the parsed placement
// list, not just a bool.
func passAssembleOptions(passID string, n *scene.Node) (shader.AssembleOptions, *compileerr.Warning) {
	opts := shader.AssembleOptions{
		BlendPreset: shader.BlendAlpha,
		SampleCount: 1,
	}

	if v, ok := n.Param("blend"); ok && v.Str != "" {
		switch v.Str {
		case string(shader.BlendOpaque):
			opts.BlendPreset = shader.BlendOpaque
		case string(shader.BlendAdd):
			opts.BlendPreset = shader.BlendAdd
		case string(shader.BlendAlpha):
			opts.BlendPreset = shader.BlendAlpha
		}
	}

	var warn *compileerr.Warning
	if v, ok := n.Param("msaa"); ok && v.Int != 0 {
		opts.SampleCount, warn = shader.DowngradeSampleCount(passID, int(v.Int), supportedSampleCounts)
	}

	return opts, warn
}

// instancePlacements reads a draw pass's optional "instances" parameter: a
// flat ValueKindFloatArray list, five values per instance (PosX, PosY,
// RotZ, ScaleX, ScaleY, matching engine/instancing.Placement's field
// order), and decodes it into placements. No schema declares this
// parameter's shape beyond its kind, so a trailing partial group (not a
// multiple of five) is silently dropped rather than padded or rejected.
func instancePlacements(n *scene.Node) []instancing.Placement {
	v, ok := n.Param("instances")
	if !ok || len(v.Floats) < 5 {
		return nil
	}

	count := len(v.Floats) / 5
	out := make([]instancing.Placement, count)
	for i := range out {
		f := v.Floats[i*5 : i*5+5]
		out[i] = instancing.Placement{PosX: f[0], PosY: f[1], RotZ: f[2], ScaleX: f[3], ScaleY: f[4]}
	}
	return out
}
