package shaderspace

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-shade/compileerr"
	"github.com/Carmen-Shannon/oxy-shade/engine/bindlayout"
	"github.com/Carmen-Shannon/oxy-shade/engine/geometry"
	"github.com/Carmen-Shannon/oxy-shade/engine/instancing"
	"github.com/Carmen-Shannon/oxy-shade/engine/pipeline"
	"github.com/Carmen-Shannon/oxy-shade/engine/shader"
	"github.com/Carmen-Shannon/oxy-shade/resolve"
	"github.com/Carmen-Shannon/oxy-shade/scene"
	"github.com/Carmen-Shannon/oxy-shade/sceneprep"
)

// blurChainTypes is the set of draw-pass node types that expand into a
// mip-like chain of Gaussian blur passes instead of registering as a
// single ordinary pass.
var blurChainTypes = map[scene.NodeType]bool{
	scene.NodeGuassianBlurPass: true,
	scene.NodeDownsample: true,
	scene.NodeGradientBlur: true,
}

// Assemble builds the final ShaderSpace from the resolver's graph and one
// already-compiled shader.Bundle per live draw pass. It declares every
// pass's own geometry, uniform buffer, and output texture; declares one
// target texture per Composite (the one feeding RenderTarget suffixed
// .present.sdr.srgb, every other one a plain intermediate render target);
// and synthesizes the implicit fullscreen compose passes a scene author
// never draws explicitly: one blitting each draw pass's output into its
// composition's target, and one more for every composite consumed as a
// layer by another composite.
//
// bundles must carry one entry per id in graph.DrawPassOrder; a missing
// entry is a caller contract violation, not a malformed scene, so Assemble
// panics rather than returning an error for it.
func Assemble(prepared *sceneprep.PreparedScene, graph *resolve.Graph, bundles map[string]*shader.Bundle) (ShaderSpace, error) {
	finalComposite, err := findFinalComposite(prepared)
	if err != nil {
		return nil, err
	}

	ss := New()
	targetNames := make(map[string]string, len(graph.Compositions))

	for _, compositeID := range compositeOrder(graph) {
		comp := graph.Compositions[compositeID]

		name := compositeTargetName(compositeID)
		kind := TextureRenderTarget
		if compositeID == finalComposite {
			name = presentTargetName(compositeID)
			kind = TexturePresent
		}
		targetNames[compositeID] = name

		ss.DeclareTexture(TextureDecl{Name: name, Kind: kind, Width: comp.Width, Height: comp.Height})
	}

	for _, passID := range graph.DrawPassOrder {
		bundle, ok := bundles[passID]
		if !ok {
			panic("shaderspace: no shader bundle supplied for draw pass " + passID)
		}
		dc := graph.DrawContexts[passID]

		outputTextureName := registerDrawPass(ss, prepared, passID, dc, bundle)
		registerComposeInto(ss, passID, outputTextureName, dc.CompositionID, graph.Compositions[dc.CompositionID], targetNames)
	}

	for _, compositeID := range compositeOrder(graph) {
		outer := graph.Compositions[compositeID]
		for _, layerID := range outer.Layers {
			if _, isComposite := graph.Compositions[layerID]; !isComposite {
				continue
			}
			registerComposeInto(ss, layerID, targetNames[layerID], compositeID, outer, targetNames)
		}
	}

	return ss, nil
}

// findFinalComposite locates the single Composite feeding the scene's
// RenderTarget node.
func findFinalComposite(prepared *sceneprep.PreparedScene) (string, error) {
	conn, ok := prepared.IncomingConnection(prepared.RenderTargetID, "pass")
	if !ok {
		return "", compileerr.NewResolverError(prepared.RenderTargetID, "RenderTarget has no pass input connected")
	}
	return conn.From.NodeID, nil
}

// compositeOrder returns graph's composite ids in first-reached order
// (walking graph.DrawPassOrder's CompositionID, then layer chains), so
// declaration order stays deterministic across runs; composites reached in
// the same sweep over the layer chains, and any never reached, are taken in
// id order.
func compositeOrder(graph *resolve.Graph) []string {
	seen := make(map[string]bool, len(graph.Compositions))
	var order []string
	add := func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		order = append(order, id)
	}
	ids := make([]string, 0, len(graph.Compositions))
	for id := range graph.Compositions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, passID := range graph.DrawPassOrder {
		add(graph.DrawContexts[passID].CompositionID)
	}
	for len(order) < len(graph.Compositions) {
		progressed := false
		for _, id := range ids {
			if seen[id] {
				continue
			}
			for _, layerID := range graph.Compositions[id].Layers {
				if seen[layerID] {
					add(id)
					progressed = true
					break
				}
			}
		}
		if !progressed {
			for _, id := range ids {
				if !seen[id] {
					add(id)
				}
			}
			break
		}
	}
	return order
}

// passParamsData builds and marshals the compile-time-known Params
// snapshot for one pass: domain/geometry size and center come from the
// resolved draw context (or the fullscreen domain, for a synthesized
// blur-chain or compose pass), translate/scale/color come from the pass's
// own scene node when one exists, falling back to the identity
// placement/opaque-white defaults a synthesized pass (n == nil) always
// uses.
func passParamsData(n *scene.Node, domainWidth, domainHeight, geoWidth, geoHeight, centerX, centerY float32) []byte {
	translate := [2]float32{0, 0}
	scale := [2]float32{1, 1}
	color := [4]float32{1, 1, 1, 1}

	if n != nil {
		if v, ok := n.Param("translate"); ok {
			translate = [2]float32{v.Vec2.X, v.Vec2.Y}
		}
		if v, ok := n.Param("scale"); ok {
			scale = [2]float32{v.Vec2.X, v.Vec2.Y}
		}
		if v, ok := n.Param("color"); ok {
			color = [4]float32{v.Vec4.X, v.Vec4.Y, v.Vec4.Z, v.Vec4.W}
		}
	}

	params := shader.ParamsFor(domainWidth, domainHeight, geoWidth, geoHeight, centerX, centerY, translate, scale, color)
	return params.Marshal()
}

// quadGeometryDecl builds the GeometryDecl every pass shares: the fullscreen
// unit quad's marshaled vertex bytes and buffer layout (engine/geometry),
// widened with bundle's baked per-instance transform buffer and layout
// (engine/instancing) when bundle is an instanced pass.
func quadGeometryDecl(name string, width, height float32, bundle *shader.Bundle) GeometryDecl {
	decl := GeometryDecl{
		Name: name,
		Width: width,
		Height: height,
		Vertices: geometry.MarshalQuad(),
		Layout: geometry.VertexBufferLayout(),
	}
	if bundle != nil && bundle.Bindings.HasInstanceBuffer && len(bundle.InstanceData) > 0 {
		decl.InstanceVertices = bundle.InstanceData
		layout := instancing.VertexBufferLayout()
		decl.InstanceLayout = &layout
	}
	return decl
}

// registerDrawPass declares passID's geometry, uniform buffer, and output
// texture, registers its pipeline, and for a GuassianBlurPass/Downsample/
// GradientBlur node expands the rest of its mip chain. Returns the name of
// the texture downstream composition should actually sample: passID's own
// output for an ordinary pass, or the most-blurred mip level's output for
// a chain.
func registerDrawPass(ss ShaderSpace, prepared *sceneprep.PreparedScene, passID string, dc resolve.DrawContext, bundle *shader.Bundle) string {
	n, _ := prepared.Node(passID)
	chained := n != nil && blurChainTypes[n.Type]

	geoName := passGeometryName(passID)
	uniName := passUniformName(passID)
	outName := passOutputName(passID)
	if chained {
		outName = blurMipTextureName(passID, 0)
	}

	paramsData := passParamsData(n, dc.DomainWidth, dc.DomainHeight, dc.Geometry.Width, dc.Geometry.Height, dc.Geometry.CenterX, dc.Geometry.CenterY)

	ss.DeclareGeometry(quadGeometryDecl(geoName, dc.Geometry.Width, dc.Geometry.Height, bundle))
	ss.DeclareUniformBuffer(UniformBufferDecl{Name: uniName, PassID: passID, Data: paramsData})
	ss.DeclareTexture(TextureDecl{Name: outName, Kind: TextureIntermediate, Width: dc.DomainWidth, Height: dc.DomainHeight})

	ss.RegisterPass(PassEntry{
		Name: outName,
		PassID: passID,
		Bundle: bundle,
		Layout: bindlayout.FromBindings(passID, bundle.Bindings),
		Pipeline: pipeline.FromBundle(bundle),
		GeometryName: geoName,
		UniformName: uniName,
		OutputTextureName: outName,
	})

	if !chained {
		return outName
	}
	return registerBlurChain(ss, n, passID, dc, outName)
}

// registerBlurChain synthesizes every mip level beyond level 0 (already
// registered by the caller as blurMipTextureName(passID, 0)): each level
// resamples the previous level's texture through its own residual-sigma
// Gaussian kernel, per BuildBlurChain. Returns the final level's texture
// name, the one a downstream Composite actually samples; mixing adjacent
// levels by a runtime blur factor is left to the consuming runtime, which
// has every level's texture available to do it.
func registerBlurChain(ss ShaderSpace, n *scene.Node, passID string, dc resolve.DrawContext, level0Name string) string {
	var sigma float32
	if v, ok := n.Param("sigma"); ok {
		sigma = v.Float
	}

	chain := shader.BuildBlurChain(sigma)
	prevName := level0Name
	for _, lvl := range chain {
		if lvl.Level == 0 {
			continue
		}

		blurPass := blurPassName(passID, lvl.Level)
		geoName := blurGeometryName(blurPass)
		uniName := blurUniformName(blurPass)
		texName := blurMipTextureName(passID, lvl.Level)

		bundle := shader.AssembleBlurLevel(blurPass, dc.DomainWidth, dc.DomainHeight, prevName, lvl)
		paramsData := passParamsData(nil, dc.DomainWidth, dc.DomainHeight, dc.DomainWidth, dc.DomainHeight, dc.DomainWidth/2, dc.DomainHeight/2)

		ss.DeclareGeometry(quadGeometryDecl(geoName, dc.DomainWidth, dc.DomainHeight, bundle))
		ss.DeclareUniformBuffer(UniformBufferDecl{Name: uniName, PassID: blurPass, Data: paramsData})
		ss.DeclareTexture(TextureDecl{Name: texName, Kind: TextureIntermediate, Width: dc.DomainWidth, Height: dc.DomainHeight})

		ss.RegisterPass(PassEntry{
			Name: texName,
			PassID: blurPass,
			Bundle: bundle,
			Layout: bindlayout.FromBindings(blurPass, bundle.Bindings),
			Pipeline: pipeline.FromBundle(bundle),
			GeometryName: geoName,
			UniformName: uniName,
			OutputTextureName: texName,
		})

		prevName = texName
	}

	return prevName
}

// registerComposeInto synthesizes and registers the fullscreen blit pass
// that samples sourceTextureName and writes into intoCompositeID's target.
// sourceLabel names the upstream draw pass or composite in the synthesized
// pass's own name (sys.compose.<sourceLabel>.into.<intoCompositeID>.pass);
// sourceTextureName is the texture it actually samples, which for a
// composite source is that composite's own target texture.
func registerComposeInto(ss ShaderSpace, sourceLabel, sourceTextureName, intoCompositeID string, composite resolve.Composition, targetNames map[string]string) {
	composeBase := composePassName(sourceLabel, intoCompositeID)
	passName := composePassPassName(composeBase)
	geoName := composeGeometryName(composeBase)
	uniName := composeUniformName(composeBase)
	outName := targetNames[intoCompositeID]

	bundle := shader.AssembleCompose(passName, composite.Width, composite.Height, sourceTextureName)
	paramsData := passParamsData(nil, composite.Width, composite.Height, composite.Width, composite.Height, composite.Width/2, composite.Height/2)

	ss.DeclareGeometry(quadGeometryDecl(geoName, composite.Width, composite.Height, bundle))
	ss.DeclareUniformBuffer(UniformBufferDecl{Name: uniName, PassID: passName, Data: paramsData})

	ss.RegisterPass(PassEntry{
		Name: passName,
		PassID: passName,
		Bundle: bundle,
		Layout: bindlayout.FromBindings(passName, bundle.Bindings),
		Pipeline: pipeline.FromBundle(bundle),
		GeometryName: geoName,
		UniformName: uniName,
		OutputTextureName: outName,
	})
}
