// package porttype defines the port-type vocabulary and the single coercion
// relation used identically by scene preparation's connection type-checking
// and by the material compiler's implicit coercion. Keeping one relation in
// one leaf package is what makes "used identically" true: neither caller
// special-cases the table.
package porttype

// Type is a port type or port type family. Families (Scalar, Number, Vector,
// Color) are not distinct runtime types; they expand against the
// compatibility relation below before a coercion decision is made.
type Type string

const (
	F32 Type = "f32"
	I32 Type = "i32"
	Bool Type = "bool"
	Vec2 Type = "vec2"
	Vec3 Type = "vec3"
	Vec4 Type = "vec4"
	Texture Type = "texture"
	Geometry Type = "geometry"
	Material Type = "material"
	Pass Type = "pass"

	// Families, expanded before coercion is checked.
	Scalar Type = "scalar"
	Number Type = "number"
	Vector Type = "vector"
	Color Type = "color"
)

// members lists the concrete types a family expands to. A concrete type's
// family-membership is reflexive: a concrete type is a member of itself.
var members = map[Type][]Type{
	Scalar: {F32, I32, Bool},
	Number: {F32, I32},
	Vector: {Vec2, Vec3, Vec4},
	Color: {Vec4},
}

// isFamily reports whether t names one of the four port-type families.
func isFamily(t Type) bool {
	_, ok := members[t]
	return ok
}

// concreteMembers expands t into the set of concrete types it denotes. A
// non-family type expands to itself.
func concreteMembers(t Type) []Type {
	if ms, ok := members[t]; ok {
		return ms
	}
	return []Type{t}
}

// coercionTable encodes the coercion relation: coercionTable[S][T] is true if a value of
// concrete type S can be coerced to concrete type T. Identity entries are
// included explicitly so Coercible(t, t) holds for every concrete t.
var coercionTable = map[Type]map[Type]bool{
	F32: {F32: true, I32: true, Vec2: true, Vec3: true, Vec4: true},
	I32: {F32: true, I32: true, Vec2: true, Vec3: true, Vec4: true},
	Bool: {F32: true, I32: true, Bool: true, Vec2: true, Vec3: true, Vec4: true},
	Vec2: {Vec2: true, Vec3: true, Vec4: true},
	Vec3: {Vec2: true, Vec3: true, Vec4: true},
	Vec4: {Vec2: true, Vec3: true, Vec4: true},
}

// Coercible reports whether a value carried on a port of type from can feed
// a port of type to. Non-scalar/vector types (texture, geometry, material,
// pass) are only coercible to themselves; they never appear in
// coercionTable and must match exactly. Families on either side are
// satisfied if at least one member pairing is coercible, matching the
// reflexive-and-expanded-against-the-relation rule.
func Coercible(from, to Type) bool {
	for _, f := range concreteMembers(from) {
		for _, t := range concreteMembers(to) {
			if coercibleConcrete(f, t) {
				return true
			}
		}
	}
	return false
}

func coercibleConcrete(from, to Type) bool {
	if from == to && !isVectorOrScalar(from) {
		return true
	}
	row, ok := coercionTable[from]
	if !ok {
		return false
	}
	return row[to]
}

func isVectorOrScalar(t Type) bool {
	switch t {
	case F32, I32, Bool, Vec2, Vec3, Vec4:
		return true
	default:
		return false
	}
}

// IsVector reports whether t (a concrete type) is one of vec2/vec3/vec4.
func IsVector(t Type) bool {
	return t == Vec2 || t == Vec3 || t == Vec4
}

// VectorWidth returns the component count of a concrete vector type, or 0 if
// t is not a vector type.
func VectorWidth(t Type) int {
	switch t {
	case Vec2:
		return 2
	case Vec3:
		return 3
	case Vec4:
		return 4
	default:
		return 0
	}
}

// WidestVector returns whichever of a, b has the larger component count. Both
// must be concrete vector types.
func WidestVector(a, b Type) Type {
	if VectorWidth(a) >= VectorWidth(b) {
		return a
	}
	return b
}

// CommonType finds the common type two operand types promote to for a binary
// operation: numeric scalar pairs promote to f32; a scalar paired with a
// vector splats the scalar to the vector's width; two vectors of differing
// width promote to the wider one.
func CommonType(a, b Type) Type {
	aVec, bVec := IsVector(a), IsVector(b)
	switch {
	case aVec && bVec:
		return WidestVector(a, b)
	case aVec && !bVec:
		return a
	case !aVec && bVec:
		return b
	default:
		return F32
	}
}
