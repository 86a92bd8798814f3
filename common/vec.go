// package common contains shared value types and math helpers used throughout
// the compiler. They are plain structs, not interface-wrapped, expressing
// commonly used data shapes rather than behavior.
package common

// Vec2 is a two-component float vector, used for positions, sizes, and UV
// coordinates in the scene graph and for WGSL vec2<f32> literal params.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a three-component float vector, used for colors (RGB) and WGSL
// vec3<f32> literal params.
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 is a four-component float vector, used for colors (RGBA) and WGSL
// vec4<f32> literal params.
type Vec4 struct {
	X, Y, Z, W float32
}

// Array returns the vector as a [2]float32 for marshaling into a uniform
// buffer.
func (v Vec2) Array() [2]float32 { return [2]float32{v.X, v.Y} }

// Array returns the vector as a [3]float32 for marshaling into a uniform
// buffer.
func (v Vec3) Array() [3]float32 { return [3]float32{v.X, v.Y, v.Z} }

// Array returns the vector as a [4]float32 for marshaling into a uniform
// buffer.
func (v Vec4) Array() [4]float32 { return [4]float32{v.X, v.Y, v.Z, v.W} }
