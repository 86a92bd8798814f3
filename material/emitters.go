package material

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-shade/compileerr"
	"github.com/Carmen-Shannon/oxy-shade/porttype"
	"github.com/Carmen-Shannon/oxy-shade/scene"
)

func formatFloat(f float32) string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 32)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func formatInt(i int32) string { return strconv.Itoa(int(i)) }

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func vec2Ctor(x, y float32) string { return fmt.Sprintf("vec2f(%s, %s)", formatFloat(x), formatFloat(y)) }
func vec3Ctor(x, y, z float32) string {
	return fmt.Sprintf("vec3f(%s, %s, %s)", formatFloat(x), formatFloat(y), formatFloat(z))
}
func vec4Ctor(x, y, z, w float32) string {
	return fmt.Sprintf("vec4f(%s, %s, %s, %s)", formatFloat(x), formatFloat(y), formatFloat(z), formatFloat(w))
}

// emitScalarLiteral emits a FloatInput/IntInput/BoolInput node's value. A
// node auto-wrapped during preparation is instead read from the
// graph-inputs uniform so edits to it are visible without recompiling.
func (c *compiler) emitScalarLiteral(n *scene.Node, t porttype.Type) (TypedExpression, error) {
	if isDynamic(n) {
		idx := c.ctx.registerGraphInput(c.originalLiteralID(n), t)
		return TypedExpression{Text: fmt.Sprintf("graph_inputs.v%d", idx), Type: t}, nil
	}
	v, ok := n.Param("value")
	if !ok {
		return TypedExpression{}, compileerr.NewCompileErrorPort(n.ID, "value", "literal node missing value parameter")
	}
	return valueToExpr(v), nil
}

// emitVectorLiteral emits a Vector2Input/Vector3Input/ColorInput node's
// value as a WGSL constructor call.
func (c *compiler) emitVectorLiteral(n *scene.Node, t porttype.Type) (TypedExpression, error) {
	if isDynamic(n) {
		idx := c.ctx.registerGraphInput(c.originalLiteralID(n), t)
		return TypedExpression{Text: fmt.Sprintf("graph_inputs.v%d", idx), Type: t}, nil
	}
	v, ok := n.Param("value")
	if !ok {
		return TypedExpression{}, compileerr.NewCompileErrorPort(n.ID, "value", "literal node missing value parameter")
	}
	return valueToExpr(v), nil
}

// originalLiteralID resolves a "sys.wrap.*" passthrough's own upstream
// source: the scene-authored literal node autoWrapLiterals interposed it
// in front of. Graph inputs are registered under this id rather than the
// wrapper's own synthetic one, so a host can match a registered slot back
// to the literal node an editor actually shows; falls back to wrapper's
// own id if, somehow, its "value" input has no incoming connection (it
// always does in a scene that passed preparation).
func (c *compiler) originalLiteralID(wrapper *scene.Node) string {
	if conn, ok := c.prepared.IncomingConnection(wrapper.ID, "value"); ok {
		return conn.From.NodeID
	}
	return wrapper.ID
}

// emitAttribute emits a reference to the vertex-stage varying named by the
// node's "name" parameter. in.uv is top-left origin internally;
// user-facing Attribute.uv is bottom-left (mirrored), per the coordinate
// convention in the glossary.
func (c *compiler) emitAttribute(n *scene.Node) (TypedExpression, error) {
	v, ok := n.Param("name")
	if !ok {
		return TypedExpression{}, compileerr.NewCompileErrorPort(n.ID, "name", "Attribute node missing name parameter")
	}
	switch v.Str {
	case "uv":
		return TypedExpression{Text: "vec2f(in.uv.x, 1.0 - in.uv.y)", Type: porttype.Vec2}, nil
	case "local_px":
		return TypedExpression{Text: "in.local_px", Type: porttype.Vec2}, nil
	case "frag_coord_gl":
		return TypedExpression{Text: "in.frag_coord_gl", Type: porttype.Vec2}, nil
	default:
		return TypedExpression{}, compileerr.NewCompileErrorPort(n.ID, "name", "unknown attribute %q", v.Str)
	}
}

// emitImageTexture registers the node as a group-1 texture+sampler bind
// pair (the same source node registered twice in one pass returns the same
// slot) and emits a textureSample call using the compiled "uv" input as
// given; any Y flip comes from the uv source itself (emitAttribute's
// Attribute.uv), not from this emitter.
func (c *compiler) emitImageTexture(n *scene.Node) (TypedExpression, error) {
	slot := c.ctx.registerImageBinding(n.ID, "out")

	uv, err := Compile(c.prepared, c.ctx, n.ID, "uv")
	if err != nil {
		return TypedExpression{}, err
	}
	uv, err = coerceTo(n.ID, uv, porttype.Vec2)
	if err != nil {
		return TypedExpression{}, err
	}

	text := fmt.Sprintf("textureSample(tex_%d, samp_%d, %s)", slot, slot, uv.Text)
	return TypedExpression{Text: text, Type: porttype.Vec4, UsesTime: uv.UsesTime}, nil
}

// emitTransformGeometry compiles TransformGeometry's "translate"/"scale"
// ports. Both feed a vertex-stage slot that requires vec3, so a connected
// vec2 is padded (x, y, 0) — the ordinary vec2->vec3 coercion, which
// coerceVertexVec3 names at the call site.
func (c *compiler) emitTransformGeometry(n *scene.Node, outPort string) (TypedExpression, error) {
	switch outPort {
	case "translate", "scale":
		e, err := Compile(c.prepared, c.ctx, n.ID, outPort)
		if err != nil {
			return TypedExpression{}, err
		}
		return coerceVertexVec3(n.ID, e)
	default:
		return TypedExpression{}, compileerr.NewCompileErrorPort(n.ID, outPort, "TransformGeometry has no output port %q", outPort)
	}
}

// emitBinaryOp compiles MathAdd/MathMultiply's two inputs, coerces them to a
// common type, and emits the WGSL infix operator.
func (c *compiler) emitBinaryOp(n *scene.Node, op string) (TypedExpression, error) {
	a, err := Compile(c.prepared, c.ctx, n.ID, "a")
	if err != nil {
		return TypedExpression{}, err
	}
	b, err := Compile(c.prepared, c.ctx, n.ID, "b")
	if err != nil {
		return TypedExpression{}, err
	}
	ca, cb, t, err := commonTypeCoerce(n.ID, a, b)
	if err != nil {
		return TypedExpression{}, err
	}
	return TypedExpression{
		Text: fmt.Sprintf("(%s %s %s)", ca.Text, op, cb.Text),
		Type: t,
		UsesTime: ca.UsesTime || cb.UsesTime,
	}, nil
}

// emitClamp compiles MathClamp's value/min/max inputs and emits clamp().
func (c *compiler) emitClamp(n *scene.Node) (TypedExpression, error) {
	value, err := Compile(c.prepared, c.ctx, n.ID, "value")
	if err != nil {
		return TypedExpression{}, err
	}
	lo, err := Compile(c.prepared, c.ctx, n.ID, "min")
	if err != nil {
		return TypedExpression{}, err
	}
	hi, err := Compile(c.prepared, c.ctx, n.ID, "max")
	if err != nil {
		return TypedExpression{}, err
	}

	lo, err = coerceTo(n.ID, lo, value.Type)
	if err != nil {
		return TypedExpression{}, err
	}
	hi, err = coerceTo(n.ID, hi, value.Type)
	if err != nil {
		return TypedExpression{}, err
	}

	return TypedExpression{
		Text: fmt.Sprintf("clamp(%s, %s, %s)", value.Text, lo.Text, hi.Text),
		Type: value.Type,
		UsesTime: value.UsesTime || lo.UsesTime || hi.UsesTime,
	}, nil
}

// emitPower compiles MathPower's base/exponent inputs and emits pow().
func (c *compiler) emitPower(n *scene.Node) (TypedExpression, error) {
	base, err := Compile(c.prepared, c.ctx, n.ID, "base")
	if err != nil {
		return TypedExpression{}, err
	}
	exp, err := Compile(c.prepared, c.ctx, n.ID, "exponent")
	if err != nil {
		return TypedExpression{}, err
	}
	base, exp, t, err := commonTypeCoerce(n.ID, base, exp)
	if err != nil {
		return TypedExpression{}, err
	}
	return TypedExpression{
		Text: fmt.Sprintf("pow(%s, %s)", base.Text, exp.Text),
		Type: t,
		UsesTime: base.UsesTime || exp.UsesTime,
	}, nil
}

// vectorOpSymbol maps a VectorMath "op" parameter to its WGSL infix
// operator. VectorMath covers elementwise vector arithmetic; CrossProduct
// and DotProduct have their own dedicated node types for the non-elementwise
// operations.
var vectorOpSymbol = map[string]string{
	"add": "+",
	"sub": "-",
	"mul": "*",
	"div": "/",
}

// emitVectorMathOp compiles VectorMath's a/b inputs, coerces to the
// minimum-sufficient (wider of the two) vector width, and emits the
// elementwise operator named by the node's "op" parameter.
func (c *compiler) emitVectorMathOp(n *scene.Node) (TypedExpression, error) {
	opVal, ok := n.Param("op")
	if !ok {
		return TypedExpression{}, compileerr.NewCompileErrorPort(n.ID, "op", "VectorMath missing op parameter")
	}
	symbol, ok := vectorOpSymbol[opVal.Str]
	if !ok {
		return TypedExpression{}, compileerr.NewCompileErrorPort(n.ID, "op", "unknown VectorMath op %q", opVal.Str)
	}

	a, err := Compile(c.prepared, c.ctx, n.ID, "a")
	if err != nil {
		return TypedExpression{}, err
	}
	b, err := Compile(c.prepared, c.ctx, n.ID, "b")
	if err != nil {
		return TypedExpression{}, err
	}

	target := widestOf(a.Type, b.Type)

	ca, err := coerceTo(n.ID, a, target)
	if err != nil {
		return TypedExpression{}, err
	}
	cb, err := coerceTo(n.ID, b, target)
	if err != nil {
		return TypedExpression{}, err
	}

	return TypedExpression{
		Text: fmt.Sprintf("(%s %s %s)", ca.Text, symbol, cb.Text),
		Type: target,
		UsesTime: ca.UsesTime || cb.UsesTime,
	}, nil
}

// widestOf picks the minimum-sufficient vector width between two vector (or
// coercible-to-vector) types.
func widestOf(a, b porttype.Type) porttype.Type {
	if !porttype.IsVector(a) {
		return b
	}
	if !porttype.IsVector(b) {
		return a
	}
	return porttype.WidestVector(a, b)
}

// emitCrossProduct compiles CrossProduct's a/b inputs, coerces both to
// vec3, and emits cross().
func (c *compiler) emitCrossProduct(n *scene.Node) (TypedExpression, error) {
	a, err := Compile(c.prepared, c.ctx, n.ID, "a")
	if err != nil {
		return TypedExpression{}, err
	}
	b, err := Compile(c.prepared, c.ctx, n.ID, "b")
	if err != nil {
		return TypedExpression{}, err
	}
	a, err = coerceTo(n.ID, a, porttype.Vec3)
	if err != nil {
		return TypedExpression{}, err
	}
	b, err = coerceTo(n.ID, b, porttype.Vec3)
	if err != nil {
		return TypedExpression{}, err
	}
	return TypedExpression{
		Text: fmt.Sprintf("cross(%s, %s)", a.Text, b.Text),
		Type: porttype.Vec3,
		UsesTime: a.UsesTime || b.UsesTime,
	}, nil
}

// emitDotProduct compiles DotProduct's a/b inputs, coerces both to the wider
// of the two, and emits dot().
func (c *compiler) emitDotProduct(n *scene.Node) (TypedExpression, error) {
	a, err := Compile(c.prepared, c.ctx, n.ID, "a")
	if err != nil {
		return TypedExpression{}, err
	}
	b, err := Compile(c.prepared, c.ctx, n.ID, "b")
	if err != nil {
		return TypedExpression{}, err
	}
	target := widestOf(a.Type, b.Type)
	a, err = coerceTo(n.ID, a, target)
	if err != nil {
		return TypedExpression{}, err
	}
	b, err = coerceTo(n.ID, b, target)
	if err != nil {
		return TypedExpression{}, err
	}
	return TypedExpression{
		Text: fmt.Sprintf("dot(%s, %s)", a.Text, b.Text),
		Type: porttype.F32,
		UsesTime: a.UsesTime || b.UsesTime,
	}, nil
}

// emitNormalize compiles Normalize's single input and emits normalize(),
// preserving the input's vector width.
func (c *compiler) emitNormalize(n *scene.Node) (TypedExpression, error) {
	v, err := Compile(c.prepared, c.ctx, n.ID, "value")
	if err != nil {
		return TypedExpression{}, err
	}
	return TypedExpression{
		Text: fmt.Sprintf("normalize(%s)", v.Text),
		Type: v.Type,
		UsesTime: v.UsesTime,
	}, nil
}

// emitColorMix compiles ColorMix's a/b/t inputs, coerces a and b to vec4,
// and emits mix().
func (c *compiler) emitColorMix(n *scene.Node) (TypedExpression, error) {
	a, err := Compile(c.prepared, c.ctx, n.ID, "a")
	if err != nil {
		return TypedExpression{}, err
	}
	b, err := Compile(c.prepared, c.ctx, n.ID, "b")
	if err != nil {
		return TypedExpression{}, err
	}
	t, err := Compile(c.prepared, c.ctx, n.ID, "t")
	if err != nil {
		return TypedExpression{}, err
	}
	a, err = coerceTo(n.ID, a, porttype.Vec4)
	if err != nil {
		return TypedExpression{}, err
	}
	b, err = coerceTo(n.ID, b, porttype.Vec4)
	if err != nil {
		return TypedExpression{}, err
	}
	t, err = coerceTo(n.ID, t, porttype.F32)
	if err != nil {
		return TypedExpression{}, err
	}
	return TypedExpression{
		Text: fmt.Sprintf("mix(%s, %s, %s)", a.Text, b.Text, t.Text),
		Type: porttype.Vec4,
		UsesTime: a.UsesTime || b.UsesTime || t.UsesTime,
	}, nil
}

// emitColorRamp compiles ColorRamp's colorA/colorB/t inputs as a two-stop
// linear gradient; it operates in vec4 like every other color node.
func (c *compiler) emitColorRamp(n *scene.Node) (TypedExpression, error) {
	a, err := Compile(c.prepared, c.ctx, n.ID, "colorA")
	if err != nil {
		return TypedExpression{}, err
	}
	b, err := Compile(c.prepared, c.ctx, n.ID, "colorB")
	if err != nil {
		return TypedExpression{}, err
	}
	t, err := Compile(c.prepared, c.ctx, n.ID, "t")
	if err != nil {
		return TypedExpression{}, err
	}
	a, err = coerceTo(n.ID, a, porttype.Vec4)
	if err != nil {
		return TypedExpression{}, err
	}
	b, err = coerceTo(n.ID, b, porttype.Vec4)
	if err != nil {
		return TypedExpression{}, err
	}
	t, err = coerceTo(n.ID, t, porttype.F32)
	if err != nil {
		return TypedExpression{}, err
	}
	return TypedExpression{
		Text: fmt.Sprintf("mix(%s, %s, clamp(%s, 0.0, 1.0))", a.Text, b.Text, t.Text),
		Type: porttype.Vec4,
		UsesTime: a.UsesTime || b.UsesTime || t.UsesTime,
	}, nil
}

const hsvHelperName = "oxy_hsv_adjust"

// hsvHelperDecl is the WGSL helper function HSVAdjust nodes share, registered
// once per pass no matter how many HSVAdjust nodes reference it.
const hsvHelperDecl = `fn oxy_hsv_adjust(color: vec4f, hue_shift: f32, sat_scale: f32, val_scale: f32) -> vec4f {
 let c = color.rgb;
 let max_c = max(c.r, max(c.g, c.b));
 let min_c = min(c.r, min(c.g, c.b));
 let delta = max_c - min_c;

 var h: f32 = 0.0;
 if (delta > 0.00001) {
 if (max_c == c.r) {
 h = ((c.g - c.b) / delta) % 6.0;
 } else if (max_c == c.g) {
 h = (c.b - c.r) / delta + 2.0;
 } else {
 h = (c.r - c.g) / delta + 4.0;
 }
 h = h / 6.0;
 }
 let s = select(0.0, delta / max_c, max_c > 0.00001);
 let v = max_c;

 h = (h + hue_shift) % 1.0;
 let s2 = clamp(s * sat_scale, 0.0, 1.0);
 let v2 = clamp(v * val_scale, 0.0, 1.0);

 let i = floor(h * 6.0);
 let f = h * 6.0 - i;
 let p = v2 * (1.0 - s2);
 let q = v2 * (1.0 - f * s2);
 let t2 = v2 * (1.0 - (1.0 - f) * s2);

 var rgb: vec3f;
 let im = i % 6.0;
 if (im < 1.0) {
 rgb = vec3f(v2, t2, p);
 } else if (im < 2.0) {
 rgb = vec3f(q, v2, p);
 } else if (im < 3.0) {
 rgb = vec3f(p, v2, t2);
 } else if (im < 4.0) {
 rgb = vec3f(p, q, v2);
 } else if (im < 5.0) {
 rgb = vec3f(t2, p, v2);
 } else {
 rgb = vec3f(v2, p, q);
 }

 return vec4f(rgb, color.a);
}`

// emitHSVAdjust compiles HSVAdjust's color/hue/saturation/value inputs,
// registers the shared helper function, and emits a call to it.
func (c *compiler) emitHSVAdjust(n *scene.Node) (TypedExpression, error) {
	color, err := Compile(c.prepared, c.ctx, n.ID, "color")
	if err != nil {
		return TypedExpression{}, err
	}
	hue, err := Compile(c.prepared, c.ctx, n.ID, "hue")
	if err != nil {
		return TypedExpression{}, err
	}
	sat, err := Compile(c.prepared, c.ctx, n.ID, "saturation")
	if err != nil {
		return TypedExpression{}, err
	}
	val, err := Compile(c.prepared, c.ctx, n.ID, "value")
	if err != nil {
		return TypedExpression{}, err
	}

	color, err = coerceTo(n.ID, color, porttype.Vec4)
	if err != nil {
		return TypedExpression{}, err
	}
	hue, err = coerceTo(n.ID, hue, porttype.F32)
	if err != nil {
		return TypedExpression{}, err
	}
	sat, err = coerceTo(n.ID, sat, porttype.F32)
	if err != nil {
		return TypedExpression{}, err
	}
	val, err = coerceTo(n.ID, val, porttype.F32)
	if err != nil {
		return TypedExpression{}, err
	}

	c.ctx.registerHelper(hsvHelperName, hsvHelperDecl)

	return TypedExpression{
		Text: fmt.Sprintf("%s(%s, %s, %s, %s)", hsvHelperName, color.Text, hue.Text, sat.Text, val.Text),
		Type: porttype.Vec4,
		UsesTime: color.UsesTime || hue.UsesTime || sat.UsesTime || val.UsesTime,
	}, nil
}

// emitTrig compiles Sin/Cos's single input and wraps it in the named WGSL
// builtin, inheriting input type and uses_time — WGSL's sin/cos are defined
// component-wise on vecN so no width handling is needed here.
func (c *compiler) emitTrig(n *scene.Node, fn string) (TypedExpression, error) {
	v, err := Compile(c.prepared, c.ctx, n.ID, "value")
	if err != nil {
		return TypedExpression{}, err
	}
	return TypedExpression{
		Text: fmt.Sprintf("%s(%s)", fn, v.Text),
		Type: v.Type,
		UsesTime: v.UsesTime,
	}, nil
}
