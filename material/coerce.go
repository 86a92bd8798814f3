package material

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-shade/compileerr"
	"github.com/Carmen-Shannon/oxy-shade/porttype"
)

// coerceTo wraps e's text in the WGSL constructor call that performs the
// coercion from e.Type to target, or returns an error if the pair isn't
// in the coercion relation. Identity coercions are returned unchanged.
func coerceTo(nodeID string, e TypedExpression, target porttype.Type) (TypedExpression, error) {
	if e.Type == target {
		return e, nil
	}
	if !porttype.Coercible(e.Type, target) {
		return TypedExpression{}, compileerr.NewCompileError(nodeID, "cannot coerce %s to %s", e.Type, target)
	}

	text := coercionText(e.Text, e.Type, target)
	return TypedExpression{Text: text, Type: target, UsesTime: e.UsesTime}, nil
}

// coercionText renders the WGSL constructor expression for a coercion that
// coerceTo has already confirmed is legal.
func coercionText(text string, from, target porttype.Type) string {
	switch {
	case from == porttype.F32 && target == porttype.I32:
		return fmt.Sprintf("i32(%s)", text)
	case from == porttype.I32 && target == porttype.F32:
		return fmt.Sprintf("f32(%s)", text)
	case from == porttype.Bool && (target == porttype.F32 || target == porttype.I32):
		return fmt.Sprintf("%s(%s)", target, boolToZeroOne(text))
	case (from == porttype.F32 || from == porttype.I32 || from == porttype.Bool) && target == porttype.Vec2:
		return fmt.Sprintf("vec2f(%s, %s)", scalarText(text, from), scalarText(text, from))
	case (from == porttype.F32 || from == porttype.I32 || from == porttype.Bool) && target == porttype.Vec3:
		s := scalarText(text, from)
		return fmt.Sprintf("vec3f(%s, %s, %s)", s, s, s)
	case (from == porttype.F32 || from == porttype.I32 || from == porttype.Bool) && target == porttype.Vec4:
		s := scalarText(text, from)
		return fmt.Sprintf("vec4f(%s, %s, %s, %s)", s, s, s, s)
	case from == porttype.Vec2 && target == porttype.Vec3:
		// Strict semantic-boundary padding: vec2 -> vec3 is always (x, y, 0), never a truncation.
		return fmt.Sprintf("vec3f(%s.x, %s.y, 0.0)", text, text)
	case from == porttype.Vec2 && target == porttype.Vec4:
		return fmt.Sprintf("vec4f(%s.x, %s.y, 0.0, 1.0)", text, text)
	case from == porttype.Vec3 && target == porttype.Vec2:
		return fmt.Sprintf("%s.xy", text)
	case from == porttype.Vec3 && target == porttype.Vec4:
		return fmt.Sprintf("vec4f(%s, 0.0)", text)
	case from == porttype.Vec4 && target == porttype.Vec2:
		return fmt.Sprintf("%s.xy", text)
	case from == porttype.Vec4 && target == porttype.Vec3:
		return fmt.Sprintf("%s.xyz", text)
	default:
		return text
	}
}

func scalarText(text string, from porttype.Type) string {
	if from == porttype.Bool {
		return boolToZeroOne(text)
	}
	if from == porttype.I32 {
		return fmt.Sprintf("f32(%s)", text)
	}
	return text
}

func boolToZeroOne(text string) string {
	return fmt.Sprintf("select(0.0, 1.0, %s)", text)
}

// coerceVertexVec3 applies the strict vertex-input override: a vec2 feeding
// a vertex-stage translation/scale slot that requires vec3 is padded
// (x, y, 0), which is exactly coerceTo's vec2->vec3 rule; this helper exists
// only to name the call site after the invariant it enforces:
// "TransformGeometry.translate receiving a vec2 is emitted as vec3f(x, y, 0)".
func coerceVertexVec3(nodeID string, e TypedExpression) (TypedExpression, error) {
	return coerceTo(nodeID, e, porttype.Vec3)
}

// commonTypeCoerce coerces a and b to their common type for a binary
// operation and returns both coerced expressions plus that type.
func commonTypeCoerce(nodeID string, a, b TypedExpression) (TypedExpression, TypedExpression, porttype.Type, error) {
	common := porttype.CommonType(a.Type, b.Type)
	ca, err := coerceTo(nodeID, a, common)
	if err != nil {
		return TypedExpression{}, TypedExpression{}, "", err
	}
	cb, err := coerceTo(nodeID, b, common)
	if err != nil {
		return TypedExpression{}, TypedExpression{}, "", err
	}
	return ca, cb, common, nil
}
