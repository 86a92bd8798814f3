package compiler

import (
	"encoding/binary"
	"math"
	"strconv"
	"testing"

	"github.com/Carmen-Shannon/oxy-shade/common"
	"github.com/Carmen-Shannon/oxy-shade/engine/shader"
	"github.com/Carmen-Shannon/oxy-shade/engine/shaderspace"
	"github.com/Carmen-Shannon/oxy-shade/porttype"
	"github.com/Carmen-Shannon/oxy-shade/scene"
)

// fullscreenImageCatalog declares just enough schema to run the
// "single fullscreen image" scene: ImageTexture -> RenderPass -> Composite
// (target=RenderTexture 800x600) -> RenderTarget.
func fullscreenImageCatalog() scene.Catalog {
	return scene.Catalog{
		string(scene.NodeAttribute): {
			Outputs: []scene.PortDecl{{ID: "out", Family: porttype.Vec2}},
			DefaultParams: map[string]common.Value{
				"name": common.StringValue("uv"),
			},
		},
		string(scene.NodeImageTexture): {
			Inputs: []scene.PortDecl{{ID: "uv", Family: porttype.Vec2}},
			Outputs: []scene.PortDecl{{ID: "out", Family: porttype.Texture}},
		},
		string(scene.NodeRenderPass): {
			// A RenderPass fed directly by an ImageTexture carries its
			// texture straight through; declaring "color" as Texture here
			// matches that case. A RenderPass fed by a material expression
			// instead would need a Color-family catalog entry, not this one.
			Inputs: []scene.PortDecl{{ID: "color", Family: porttype.Texture}},
			Outputs: []scene.PortDecl{{ID: "out", Family: porttype.Pass}},
		},
		string(scene.NodeRenderTexture): {
			Outputs: []scene.PortDecl{{ID: "out", Family: porttype.Texture}},
			DefaultParams: map[string]common.Value{
				"size": common.Vec2Value(common.Vec2{X: 800, Y: 600}),
			},
		},
		string(scene.NodeComposite): {
			Inputs: []scene.PortDecl{
				{ID: "target", Family: porttype.Texture},
				{ID: "layer0", Family: porttype.Pass},
			},
			Outputs: []scene.PortDecl{{ID: "out", Family: porttype.Pass}},
		},
		string(scene.NodeRenderTarget): {
			Inputs: []scene.PortDecl{{ID: "pass", Family: porttype.Pass}},
		},
	}
}

func fullscreenImageDocument() scene.Document {
	return scene.Document{
		Version: "1",
		Nodes: map[string]scene.RawNode{
			"attrUV": {Type: string(scene.NodeAttribute)},
			"img1": {Type: string(scene.NodeImageTexture)},
			"p": {Type: string(scene.NodeRenderPass)},
			"rt": {Type: string(scene.NodeRenderTexture)},
			"c": {Type: string(scene.NodeComposite)},
			"target": {Type: string(scene.NodeRenderTarget)},
		},
		Connections: []scene.RawConnection{
			{ID: "e1", From: scene.PortRef{NodeID: "attrUV", PortID: "out"}, To: scene.PortRef{NodeID: "img1", PortID: "uv"}},
			{ID: "e2", From: scene.PortRef{NodeID: "img1", PortID: "out"}, To: scene.PortRef{NodeID: "p", PortID: "color"}},
			{ID: "e3", From: scene.PortRef{NodeID: "rt", PortID: "out"}, To: scene.PortRef{NodeID: "c", PortID: "target"}},
			{ID: "e4", From: scene.PortRef{NodeID: "p", PortID: "out"}, To: scene.PortRef{NodeID: "c", PortID: "layer0"}},
			{ID: "e5", From: scene.PortRef{NodeID: "c", PortID: "out"}, To: scene.PortRef{NodeID: "target", PortID: "pass"}},
		},
	}
}

func TestCompileSingleFullscreenImage(t *testing.T) {
	space, warnings, err := Compile(fullscreenImageDocument(), fullscreenImageCatalog())
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	// Every draw pass gets a synthesized compose pass blitting its output
	// into its composition's target, so this scene assembles two passes:
	// the draw pass itself and the compose blit into "c".
	passes := space.Passes()
	if len(passes) != 2 {
		t.Fatalf("got %d passes, want 2 (draw pass + its compose-into-composite blit)", len(passes))
	}
	drawPass, ok := space.Pass("p.draw.pass")
	if !ok {
		t.Fatalf("expected draw pass registered under its output texture name %q", "p.draw.pass")
	}
	if drawPass.PassID != "p" {
		t.Fatalf("got pass id %q, want %q", drawPass.PassID, "p")
	}
	if drawPass.OutputTextureName != "p.draw.pass" {
		t.Fatalf("got output texture name %q, want %q", drawPass.OutputTextureName, "p.draw.pass")
	}

	present, ok := space.Texture("c.present.sdr.srgb")
	if !ok {
		t.Fatalf("expected final composite target declared as c.present.sdr.srgb")
	}
	if present.Width != 800 || present.Height != 600 {
		t.Fatalf("got present target size %vx%v, want 800x600", present.Width, present.Height)
	}

	if _, ok := space.Pass("sys.compose.p.into.c.pass"); !ok {
		t.Fatalf("expected compose pass registered under its synthesized name %q", "sys.compose.p.into.c.pass")
	}
}

// fullscreenBlurCatalog extends fullscreenImageCatalog with a
// GuassianBlurPass entry (same port shape as RenderPass, plus a "sigma"
// default), for exercising mip-chain expansion end to end.
func fullscreenBlurCatalog() scene.Catalog {
	cat := fullscreenImageCatalog()
	cat[string(scene.NodeGuassianBlurPass)] = scene.NodeSchema{
		Inputs: []scene.PortDecl{{ID: "color", Family: porttype.Texture}},
		Outputs: []scene.PortDecl{{ID: "out", Family: porttype.Pass}},
		DefaultParams: map[string]common.Value{
			"sigma": common.FloatValue(12),
		},
	}
	return cat
}

func fullscreenBlurDocument() scene.Document {
	doc := fullscreenImageDocument()
	doc.Nodes["p"] = scene.RawNode{Type: string(scene.NodeGuassianBlurPass)}
	return doc
}

func TestCompileGaussianBlurPassExpandsMipChain(t *testing.T) {
	space, _, err := Compile(fullscreenBlurDocument(), fullscreenBlurCatalog())
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}

	depth := shader.MipLevel(12)
	for level := 0; level <= depth; level++ {
		name := "p.mip" + strconv.Itoa(level)
		if _, ok := space.Texture(name); !ok {
			t.Fatalf("expected mip texture %q declared", name)
		}
		if _, ok := space.Pass(name); !ok {
			t.Fatalf("expected a pass registered under mip texture name %q", name)
		}
	}

	lastMip := "p.mip" + strconv.Itoa(depth)
	composeInto, ok := space.Pass("sys.compose.p.into.c.pass")
	if !ok {
		t.Fatalf("expected final compose pass registered")
	}
	found := false
	for _, slot := range composeInto.Bundle.Bindings.Textures {
		if slot.Name == lastMip {
			found = true
		}
	}
	if !found {
		t.Fatalf("final compose pass does not sample the chain's last mip level %q, bindings: %+v", lastMip, composeInto.Bundle.Bindings.Textures)
	}
}

func TestCompileInstancedPassBakesVertexBuffer(t *testing.T) {
	cat := fullscreenImageCatalog()
	schema := cat[string(scene.NodeRenderPass)]
	schema.DefaultParams = map[string]common.Value{
		"instances": common.FloatArrayValue([]float32{
			0, 0, 0, 1, 1,
			50, 25, 0.5, 2, 2,
		}),
	}
	cat[string(scene.NodeRenderPass)] = schema

	space, _, err := Compile(fullscreenImageDocument(), cat)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}

	drawPass, ok := space.Pass("p.draw.pass")
	if !ok {
		t.Fatalf("expected draw pass registered")
	}
	if !drawPass.Bundle.Bindings.HasInstanceBuffer {
		t.Fatalf("expected HasInstanceBuffer true for an instanced pass")
	}
	if len(drawPass.Bundle.InstanceData) != 2*64 {
		t.Fatalf("got %d bytes of instance data, want %d (2 instances x 64 bytes)", len(drawPass.Bundle.InstanceData), 2*64)
	}

	var geo shaderspace.GeometryDecl
	found := false
	for _, g := range space.Geometries() {
		if g.Name == drawPass.GeometryName {
			geo, found = g, true
			break
		}
	}
	if !found {
		t.Fatalf("expected geometry %q declared", drawPass.GeometryName)
	}
	if geo.InstanceLayout == nil {
		t.Fatalf("expected InstanceLayout set on the instanced pass's geometry")
	}
	if len(geo.InstanceVertices) != len(drawPass.Bundle.InstanceData) {
		t.Fatalf("geometry InstanceVertices (%d bytes) doesn't match bundle InstanceData (%d bytes)", len(geo.InstanceVertices), len(drawPass.Bundle.InstanceData))
	}
	if len(geo.Vertices) == 0 {
		t.Fatalf("expected the shared fullscreen quad's own vertex bytes still populated")
	}
}

func TestCompileUniformBuffersCarryMarshaledParams(t *testing.T) {
	space, _, err := Compile(fullscreenImageDocument(), fullscreenImageCatalog())
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}

	drawPass, ok := space.Pass("p.draw.pass")
	if !ok {
		t.Fatalf("expected draw pass registered")
	}

	var uni shaderspace.UniformBufferDecl
	found := false
	for _, u := range space.UniformBuffers() {
		if u.Name == drawPass.UniformName {
			uni, found = u, true
			break
		}
	}
	if !found {
		t.Fatalf("expected uniform buffer %q declared", drawPass.UniformName)
	}
	if len(uni.Data) != shader.ParamsSize {
		t.Fatalf("got %d bytes of Params data, want %d", len(uni.Data), shader.ParamsSize)
	}

	targetW := math.Float32frombits(binary.LittleEndian.Uint32(uni.Data[0:4]))
	targetH := math.Float32frombits(binary.LittleEndian.Uint32(uni.Data[4:8]))
	if targetW != 800 || targetH != 600 {
		t.Fatalf("got target_size %vx%v baked into Params, want 800x600", targetW, targetH)
	}
}

func TestCompileRejectsUnknownNodeType(t *testing.T) {
	doc := fullscreenImageDocument()
	doc.Nodes["bogus"] = scene.RawNode{Type: "NotARealType"}
	if _, _, err := Compile(doc, fullscreenImageCatalog()); err == nil {
		t.Fatalf("expected error for unknown node type")
	}
}

func TestCompileRejectsMissingRenderTarget(t *testing.T) {
	doc := fullscreenImageDocument()
	delete(doc.Nodes, "target")
	var filtered []scene.RawConnection
	for _, c := range doc.Connections {
		if c.From.NodeID == "target" || c.To.NodeID == "target" {
			continue
		}
		filtered = append(filtered, c)
	}
	doc.Connections = filtered

	if _, _, err := Compile(doc, fullscreenImageCatalog()); err == nil {
		t.Fatalf("expected error for scene with no RenderTarget")
	}
}
