package common

import "fmt"

// ValueKind identifies which field of a Value is populated.
type ValueKind int

const (
	ValueKindFloat ValueKind = iota
	ValueKindInt
	ValueKindBool
	ValueKindVec2
	ValueKindVec3
	ValueKindVec4
	ValueKindString
	ValueKindFloatArray
	ValueKindAssetRef
)

// Value is a literal scene-document parameter value. Scene documents carry
// untyped JSON-ish literals on node params and on unconnected input ports;
// Value is the decoded, still-untyped form that the type coercion contract
// operates on before a literal is bound to a typed expression.
type Value struct {
	Kind   ValueKind
	Float  float32
	Int    int32
	Bool   bool
	Vec2   Vec2
	Vec3   Vec3
	Vec4   Vec4
	Str    string
	Floats []float32
	Asset  ImageSourceRef
}

// String renders the value for diagnostics. Not used for WGSL emission.
func (v Value) String() string {
	switch v.Kind {
	case ValueKindFloat:
		return fmt.Sprintf("%g", v.Float)
	case ValueKindInt:
		return fmt.Sprintf("%d", v.Int)
	case ValueKindBool:
		return fmt.Sprintf("%t", v.Bool)
	case ValueKindVec2:
		return fmt.Sprintf("vec2(%g, %g)", v.Vec2.X, v.Vec2.Y)
	case ValueKindVec3:
		return fmt.Sprintf("vec3(%g, %g, %g)", v.Vec3.X, v.Vec3.Y, v.Vec3.Z)
	case ValueKindVec4:
		return fmt.Sprintf("vec4(%g, %g, %g, %g)", v.Vec4.X, v.Vec4.Y, v.Vec4.Z, v.Vec4.W)
	case ValueKindString:
		return v.Str
	case ValueKindFloatArray:
		return fmt.Sprintf("%v", v.Floats)
	case ValueKindAssetRef:
		return fmt.Sprintf("asset(%s)", v.Asset.URI)
	default:
		return "<invalid value>"
	}
}

func FloatValue(f float32) Value { return Value{Kind: ValueKindFloat, Float: f} }
func IntValue(i int32) Value     { return Value{Kind: ValueKindInt, Int: i} }
func BoolValue(b bool) Value     { return Value{Kind: ValueKindBool, Bool: b} }
func Vec2Value(v Vec2) Value     { return Value{Kind: ValueKindVec2, Vec2: v} }
func Vec3Value(v Vec3) Value     { return Value{Kind: ValueKindVec3, Vec3: v} }
func Vec4Value(v Vec4) Value     { return Value{Kind: ValueKindVec4, Vec4: v} }
func StringValue(s string) Value { return Value{Kind: ValueKindString, Str: s} }
func FloatArrayValue(fs []float32) Value {
	return Value{Kind: ValueKindFloatArray, Floats: fs}
}
func AssetValue(ref ImageSourceRef) Value { return Value{Kind: ValueKindAssetRef, Asset: ref} }
