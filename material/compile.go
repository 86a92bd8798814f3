package material

import (
	"strings"

	"github.com/Carmen-Shannon/oxy-shade/common"
	"github.com/Carmen-Shannon/oxy-shade/compileerr"
	"github.com/Carmen-Shannon/oxy-shade/porttype"
	"github.com/Carmen-Shannon/oxy-shade/scene"
	"github.com/Carmen-Shannon/oxy-shade/sceneprep"
)

// compiler carries the two pieces of state an emitter needs: the
// prepared scene it walks and the per-pass context it accumulates into. It
// has no other fields, so a compiler is cheap to construct per pass.
type compiler struct {
	prepared *sceneprep.PreparedScene
	ctx *Context
}

// Compile is the material compiler's single entry point: compile the
// expression feeding a named input port of a given node. It resolves the
// incoming connection (if any) or the node's own literal parameter (if the
// port is unconnected), dispatches to the source node's per-type emitter,
// and returns the typed expression produced.
func Compile(prepared *sceneprep.PreparedScene, ctx *Context, nodeID, inputPort string) (TypedExpression, error) {
	c := &compiler{prepared: prepared, ctx: ctx}

	if conn, ok := prepared.IncomingConnection(nodeID, inputPort); ok {
		return c.compileNodeOutput(conn.From.NodeID, conn.From.PortID)
	}

	n, ok := prepared.Node(nodeID)
	if !ok {
		return TypedExpression{}, compileerr.NewCompileError(nodeID, "unknown node")
	}
	v, ok := n.Param(inputPort)
	if !ok {
		return TypedExpression{}, compileerr.NewCompileErrorPort(nodeID, inputPort, "missing required input")
	}
	return valueToExpr(v), nil
}

// compileNodeOutput compiles the output named outPort of node nodeID,
// consulting and populating the subexpression cache keyed by
// (node_id, out_port) so a node with multiple downstream consumers is
// emitted exactly once per pass.
func (c *compiler) compileNodeOutput(nodeID, outPort string) (TypedExpression, error) {
	key := BindKey{NodeID: nodeID, Port: outPort}
	if e, ok := c.ctx.cacheLookup(key); ok {
		return e, nil
	}

	n, ok := c.prepared.Node(nodeID)
	if !ok {
		return TypedExpression{}, compileerr.NewCompileError(nodeID, "unknown node")
	}

	e, err := c.dispatch(n, outPort)
	if err != nil {
		return TypedExpression{}, err
	}

	c.ctx.cacheStore(key, e)
	return e, nil
}

// dispatch is the single closed match on node type ("tagged variants, not
// inheritance"). Adding a node type means adding a case here.
func (c *compiler) dispatch(n *scene.Node, outPort string) (TypedExpression, error) {
	switch n.Type {
	case scene.NodeFloatInput:
		return c.emitScalarLiteral(n, porttype.F32)
	case scene.NodeIntInput:
		return c.emitScalarLiteral(n, porttype.I32)
	case scene.NodeBoolInput:
		return c.emitScalarLiteral(n, porttype.Bool)
	case scene.NodeVector2Input:
		return c.emitVectorLiteral(n, porttype.Vec2)
	case scene.NodeVector3Input:
		return c.emitVectorLiteral(n, porttype.Vec3)
	case scene.NodeColorInput:
		return c.emitVectorLiteral(n, porttype.Vec4)
	case scene.NodeTime:
		return TypedExpression{Text: "params.time", Type: porttype.F32, UsesTime: true}, nil
	case scene.NodeAttribute:
		return c.emitAttribute(n)
	case scene.NodeImageTexture:
		return c.emitImageTexture(n)

	case scene.NodeMathAdd:
		return c.emitBinaryOp(n, "+")
	case scene.NodeMathMultiply:
		return c.emitBinaryOp(n, "*")
	case scene.NodeMathClamp:
		return c.emitClamp(n)
	case scene.NodeMathPower:
		return c.emitPower(n)

	case scene.NodeVectorMath:
		return c.emitVectorMathOp(n)
	case scene.NodeCrossProduct:
		return c.emitCrossProduct(n)
	case scene.NodeDotProduct:
		return c.emitDotProduct(n)
	case scene.NodeNormalize:
		return c.emitNormalize(n)

	case scene.NodeColorMix:
		return c.emitColorMix(n)
	case scene.NodeColorRamp:
		return c.emitColorRamp(n)
	case scene.NodeHSVAdjust:
		return c.emitHSVAdjust(n)

	case scene.NodeSin:
		return c.emitTrig(n, "sin")
	case scene.NodeCos:
		return c.emitTrig(n, "cos")

	case scene.NodeTransformGeometry:
		return c.emitTransformGeometry(n, outPort)

	default:
		return TypedExpression{}, compileerr.NewCompileErrorPort(n.ID, outPort, "node type %q has no material emitter", n.Type)
	}
}

// isDynamic reports whether n was auto-wrapped during preparation, meaning
// it must be read from the graph-inputs uniform rather than baked in as a
// compile-time constant.
func isDynamic(n *scene.Node) bool {
	return strings.HasPrefix(n.ID, "sys.wrap.")
}

// valueToExpr converts an unconnected port's own literal parameter value
// directly into a typed expression, bypassing node dispatch (there is no
// source node to dispatch on).
func valueToExpr(v common.Value) TypedExpression {
	switch v.Kind {
	case common.ValueKindFloat:
		return TypedExpression{Text: formatFloat(v.Float), Type: porttype.F32}
	case common.ValueKindInt:
		return TypedExpression{Text: formatInt(v.Int), Type: porttype.I32}
	case common.ValueKindBool:
		return TypedExpression{Text: formatBool(v.Bool), Type: porttype.Bool}
	case common.ValueKindVec2:
		return TypedExpression{Text: vec2Ctor(v.Vec2.X, v.Vec2.Y), Type: porttype.Vec2}
	case common.ValueKindVec3:
		return TypedExpression{Text: vec3Ctor(v.Vec3.X, v.Vec3.Y, v.Vec3.Z), Type: porttype.Vec3}
	case common.ValueKindVec4:
		return TypedExpression{Text: vec4Ctor(v.Vec4.X, v.Vec4.Y, v.Vec4.Z, v.Vec4.W), Type: porttype.Vec4}
	default:
		return TypedExpression{Text: "0.0", Type: porttype.F32}
	}
}
