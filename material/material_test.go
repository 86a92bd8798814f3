package material

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-shade/common"
	"github.com/Carmen-Shannon/oxy-shade/porttype"
	"github.com/Carmen-Shannon/oxy-shade/scene"
	"github.com/Carmen-Shannon/oxy-shade/sceneprep"
)

func prep(t *testing.T, nodes map[string]*scene.Node, conns []scene.Connection) *sceneprep.PreparedScene {
	t.Helper()
	return &sceneprep.PreparedScene{Nodes: nodes, Connections: conns}
}

// compileOutput wires a synthetic sink node's single input to
// (nodeID, port) and compiles through it. Compile resolves input ports, so
// reading a producer's own output from a test requires a consumer the same
// way a real draw-pass input would.
func compileOutput(t *testing.T, nodes map[string]*scene.Node, conns []scene.Connection, ctx *Context, nodeID, port string) TypedExpression {
	t.Helper()
	nodes = cloneNodes(nodes)
	nodes["sink"] = &scene.Node{ID: "sink", Type: scene.NodeMathAdd, Params: map[string]common.Value{}}
	conns = append(append([]scene.Connection{}, conns...), scene.Connection{
		ID: "sink.in", From: scene.PortRef{NodeID: nodeID, PortID: port}, To: scene.PortRef{NodeID: "sink", PortID: "in"},
	})
	e, err := Compile(prep(t, nodes, conns), ctx, "sink", "in")
	if err != nil {
		t.Fatalf("compileOutput(%s.%s): %v", nodeID, port, err)
	}
	return e
}

// compileOutputErr is compileOutput without the automatic t.Fatalf on
// error, for tests asserting a specific failure.
func compileOutputErr(t *testing.T, nodes map[string]*scene.Node, conns []scene.Connection, ctx *Context, nodeID, port string) (TypedExpression, error) {
	t.Helper()
	nodes = cloneNodes(nodes)
	nodes["sink"] = &scene.Node{ID: "sink", Type: scene.NodeMathAdd, Params: map[string]common.Value{}}
	conns = append(append([]scene.Connection{}, conns...), scene.Connection{
		ID: "sink.in", From: scene.PortRef{NodeID: nodeID, PortID: port}, To: scene.PortRef{NodeID: "sink", PortID: "in"},
	})
	return Compile(prep(t, nodes, conns), ctx, "sink", "in")
}

func cloneNodes(nodes map[string]*scene.Node) map[string]*scene.Node {
	out := make(map[string]*scene.Node, len(nodes)+1)
	for k, v := range nodes {
		out[k] = v
	}
	return out
}

func TestCompileLiteralFloat(t *testing.T) {
	nodes := map[string]*scene.Node{
		"a": {ID: "a", Type: scene.NodeFloatInput, Params: map[string]common.Value{"value": common.FloatValue(1.5)}},
	}
	ctx := NewContext()
	e, err := Compile(prep(t, nodes, nil), ctx, "a", "value")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Text != "1.5" || e.Type != porttype.F32 {
		t.Fatalf("got %+v", e)
	}
}

func TestCompileMathAddCoercesToCommonType(t *testing.T) {
	nodes := map[string]*scene.Node{
		"f": {ID: "f", Type: scene.NodeFloatInput, Params: map[string]common.Value{"value": common.FloatValue(2)}},
		"v": {ID: "v", Type: scene.NodeVector2Input, Params: map[string]common.Value{"value": common.Vec2Value(common.Vec2{X: 1, Y: 2})}},
		"add": {ID: "add", Type: scene.NodeMathAdd},
	}
	conns := []scene.Connection{
		{ID: "c1", From: scene.PortRef{NodeID: "f", PortID: "value"}, To: scene.PortRef{NodeID: "add", PortID: "a"}},
		{ID: "c2", From: scene.PortRef{NodeID: "v", PortID: "value"}, To: scene.PortRef{NodeID: "add", PortID: "b"}},
	}
	ctx := NewContext()
	e := compileOutput(t, nodes, conns, ctx, "add", "out")
	if e.Type != porttype.Vec2 {
		t.Fatalf("expected common type vec2, got %s (%s)", e.Type, e.Text)
	}
}

func TestCompileSharesCacheAcrossConsumers(t *testing.T) {
	nodes := map[string]*scene.Node{
		"f":    {ID: "f", Type: scene.NodeFloatInput, Params: map[string]common.Value{"value": common.FloatValue(3)}},
		"add1": {ID: "add1", Type: scene.NodeMathAdd},
		"add2": {ID: "add2", Type: scene.NodeMathAdd},
	}
	conns := []scene.Connection{
		{ID: "c1", From: scene.PortRef{NodeID: "f", PortID: "value"}, To: scene.PortRef{NodeID: "add1", PortID: "a"}},
		{ID: "c2", From: scene.PortRef{NodeID: "f", PortID: "value"}, To: scene.PortRef{NodeID: "add1", PortID: "b"}},
	}
	ctx := NewContext()
	p := prep(t, nodes, conns)
	if _, err := Compile(p, ctx, "add1", "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := Compile(p, ctx, "add1", "b"); err != nil {
		t.Fatal(err)
	}
	if len(ctx.cache) != 1 {
		t.Fatalf("expected the shared literal to be cached once, got %d entries", len(ctx.cache))
	}
}

// TestDynamicLiteralReadsGraphInputsUniform compiles a reference to a
// wrapper node's own output (through a sink, the way a real draw pass
// input would), rather than the wrapper's own "value" input directly — a
// wrapper is itself a source node, never the consumer of its own output.
// This wrapper has no upstream literal wired into its "value" input, so
// originalLiteralID falls back to the wrapper's own id.
func TestDynamicLiteralReadsGraphInputsUniform(t *testing.T) {
	nodes := map[string]*scene.Node{
		"sys.wrap.pass0.color": {ID: "sys.wrap.pass0.color", Type: scene.NodeColorInput, Params: map[string]common.Value{}},
	}
	ctx := NewContext()
	e := compileOutput(t, nodes, nil, ctx, "sys.wrap.pass0.color", "value")
	if e.Text != "graph_inputs.v0" {
		t.Fatalf("expected graph-inputs reference, got %q", e.Text)
	}
	if len(ctx.GraphInputs()) != 1 || ctx.GraphInputs()[0].NodeID != "sys.wrap.pass0.color" {
		t.Fatalf("expected registered graph input, got %+v", ctx.GraphInputs())
	}
}

// TestDynamicLiteralGraphInputUsesOriginalNodeID models the real
// autoWrapLiterals shape end to end: the original literal feeds the
// wrapper's own "value" input via one connection, and the wrapper's
// "value" output feeds the consuming draw pass via a second — the two-hop
// rewiring autoWrapLiterals itself performs. The registered graph input
// must be identified by the literal's own id, not the synthetic wrapper's,
// which only surfaces when the wrapper's output (not its input) is what
// gets compiled.
func TestDynamicLiteralGraphInputUsesOriginalNodeID(t *testing.T) {
	nodes := map[string]*scene.Node{
		"lit1": {ID: "lit1", Type: scene.NodeColorInput, Params: map[string]common.Value{"value": common.Vec4Value(common.Vec4{X: 1, Y: 1, Z: 1, W: 1})}},
		"sys.wrap.pass0.color": {ID: "sys.wrap.pass0.color", Type: scene.NodeColorInput, Params: map[string]common.Value{}},
	}
	conns := []scene.Connection{
		{ID: "c.in", From: scene.PortRef{NodeID: "lit1", PortID: "value"}, To: scene.PortRef{NodeID: "sys.wrap.pass0.color", PortID: "value"}},
	}

	ctx := NewContext()
	e := compileOutput(t, nodes, conns, ctx, "sys.wrap.pass0.color", "value")
	if e.Text != "graph_inputs.v0" {
		t.Fatalf("expected graph-inputs reference, got %q", e.Text)
	}
	if len(ctx.GraphInputs()) != 1 || ctx.GraphInputs()[0].NodeID != "lit1" {
		t.Fatalf("expected graph input registered under the original literal's id %q, got %+v", "lit1", ctx.GraphInputs())
	}
}

func TestImageTextureRegistersBindingOnce(t *testing.T) {
	nodes := map[string]*scene.Node{
		"tex": {ID: "tex", Type: scene.NodeImageTexture, Params: map[string]common.Value{}},
		"uvAttr": {ID: "uvAttr", Type: scene.NodeAttribute, Params: map[string]common.Value{"name": common.StringValue("uv")}},
	}
	conns := []scene.Connection{
		{ID: "c1", From: scene.PortRef{NodeID: "uvAttr", PortID: "out"}, To: scene.PortRef{NodeID: "tex", PortID: "uv"}},
	}
	ctx := NewContext()
	e1 := compileOutput(t, nodes, conns, ctx, "tex", "out")
	if len(ctx.ImageBindings()) != 1 {
		t.Fatalf("expected one binding, got %d", len(ctx.ImageBindings()))
	}
	if e1.Text == "" {
		t.Fatalf("expected non-empty texture sample expression")
	}
}

func TestHSVAdjustRegistersHelperOnce(t *testing.T) {
	nodes := map[string]*scene.Node{
		"color": {ID: "color", Type: scene.NodeColorInput, Params: map[string]common.Value{"value": common.Vec4Value(common.Vec4{X: 1, Y: 0, Z: 0, W: 1})}},
		"hue":   {ID: "hue", Type: scene.NodeFloatInput, Params: map[string]common.Value{"value": common.FloatValue(0)}},
		"sat":   {ID: "sat", Type: scene.NodeFloatInput, Params: map[string]common.Value{"value": common.FloatValue(1)}},
		"val":   {ID: "val", Type: scene.NodeFloatInput, Params: map[string]common.Value{"value": common.FloatValue(1)}},
		"h1":    {ID: "h1", Type: scene.NodeHSVAdjust},
		"h2":    {ID: "h2", Type: scene.NodeHSVAdjust},
	}
	conns := []scene.Connection{
		{ID: "c1", From: scene.PortRef{NodeID: "color", PortID: "value"}, To: scene.PortRef{NodeID: "h1", PortID: "color"}},
		{ID: "c2", From: scene.PortRef{NodeID: "hue", PortID: "value"}, To: scene.PortRef{NodeID: "h1", PortID: "hue"}},
		{ID: "c3", From: scene.PortRef{NodeID: "sat", PortID: "value"}, To: scene.PortRef{NodeID: "h1", PortID: "saturation"}},
		{ID: "c4", From: scene.PortRef{NodeID: "val", PortID: "value"}, To: scene.PortRef{NodeID: "h1", PortID: "value"}},
		{ID: "c5", From: scene.PortRef{NodeID: "color", PortID: "value"}, To: scene.PortRef{NodeID: "h2", PortID: "color"}},
		{ID: "c6", From: scene.PortRef{NodeID: "hue", PortID: "value"}, To: scene.PortRef{NodeID: "h2", PortID: "hue"}},
		{ID: "c7", From: scene.PortRef{NodeID: "sat", PortID: "value"}, To: scene.PortRef{NodeID: "h2", PortID: "saturation"}},
		{ID: "c8", From: scene.PortRef{NodeID: "val", PortID: "value"}, To: scene.PortRef{NodeID: "h2", PortID: "value"}},
	}
	ctx := NewContext()
	compileOutput(t, nodes, conns, ctx, "h1", "out")
	compileOutput(t, nodes, conns, ctx, "h2", "out")
	if len(ctx.HelperDecls()) != 1 {
		t.Fatalf("expected the shared hsv helper to be declared once, got %d", len(ctx.HelperDecls()))
	}
}

func TestCacheCollisionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on cache key collision")
		}
	}()
	ctx := NewContext()
	key := BindKey{NodeID: "x", Port: "out"}
	ctx.cacheStore(key, TypedExpression{Text: "1.0", Type: porttype.F32})
	ctx.cacheStore(key, TypedExpression{Text: "2.0", Type: porttype.F32})
}

func TestCoerceVec2ToVec3PadsNeverTruncates(t *testing.T) {
	e := TypedExpression{Text: "x", Type: porttype.Vec2}
	out, err := coerceTo("n", e, porttype.Vec3)
	if err != nil {
		t.Fatal(err)
	}
	want := "vec3f(x.x, x.y, 0.0)"
	if out.Text != want {
		t.Fatalf("got %q, want %q", out.Text, want)
	}
}

func TestCoerceIncompatibleFails(t *testing.T) {
	e := TypedExpression{Text: "tex", Type: porttype.Texture}
	if _, err := coerceTo("n", e, porttype.F32); err == nil {
		t.Fatal("expected an error coercing texture to f32")
	}
}

func TestTransformGeometryTranslatePadsVec2ToVec3(t *testing.T) {
	nodes := map[string]*scene.Node{
		"v": {ID: "v", Type: scene.NodeVector2Input, Params: map[string]common.Value{"value": common.Vec2Value(common.Vec2{X: 10, Y: 20})}},
		"t": {ID: "t", Type: scene.NodeTransformGeometry, Params: map[string]common.Value{}},
	}
	conns := []scene.Connection{
		{ID: "e1", From: scene.PortRef{NodeID: "v", PortID: "out"}, To: scene.PortRef{NodeID: "t", PortID: "translate"}},
	}
	e := compileOutput(t, nodes, conns, NewContext(), "t", "translate")
	want := "vec3f(vec2f(10.0, 20.0).x, vec2f(10.0, 20.0).y, 0.0)"
	if e.Text != want || e.Type != porttype.Vec3 {
		t.Fatalf("got %+v, want text %q type %v", e, want, porttype.Vec3)
	}
}

func TestTransformGeometryUnknownPortFails(t *testing.T) {
	nodes := map[string]*scene.Node{
		"t": {ID: "t", Type: scene.NodeTransformGeometry, Params: map[string]common.Value{}},
	}
	if _, err := compileOutputErr(t, nodes, nil, NewContext(), "t", "rotate"); err == nil {
		t.Fatal("expected an error for an unknown TransformGeometry output port")
	}
}
