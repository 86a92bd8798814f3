package common

import (
	"encoding/json"
	"fmt"
)

// valueWire is Value's JSON wire shape: a kind tag plus whichever field
// that kind populates. Scene documents on disk carry parameter literals
// this way rather than as bare JSON scalars, so a reader never has to
// guess whether a bare "1" means an int or a float.
type valueWire struct {
	Kind string `json:"kind"`
	Float float32 `json:"float,omitempty"`
	Int int32 `json:"int,omitempty"`
	Bool bool `json:"bool,omitempty"`
	Vec2 *Vec2 `json:"vec2,omitempty"`
	Vec3 *Vec3 `json:"vec3,omitempty"`
	Vec4 *Vec4 `json:"vec4,omitempty"`
	Str string `json:"str,omitempty"`
	Floats []float32 `json:"floats,omitempty"`
	Asset *ImageSourceRef `json:"asset,omitempty"`
}

var kindNames = map[ValueKind]string{
	ValueKindFloat: "float",
	ValueKindInt: "int",
	ValueKindBool: "bool",
	ValueKindVec2: "vec2",
	ValueKindVec3: "vec3",
	ValueKindVec4: "vec4",
	ValueKindString: "string",
	ValueKindFloatArray: "floatArray",
	ValueKindAssetRef: "asset",
}

var kindsByName = func() map[string]ValueKind {
	m := make(map[string]ValueKind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// MarshalJSON renders v in its tagged wire form.
func (v Value) MarshalJSON() ([]byte, error) {
	w := valueWire{Kind: kindNames[v.Kind]}
	switch v.Kind {
	case ValueKindFloat:
		w.Float = v.Float
	case ValueKindInt:
		w.Int = v.Int
	case ValueKindBool:
		w.Bool = v.Bool
	case ValueKindVec2:
		w.Vec2 = &v.Vec2
	case ValueKindVec3:
		w.Vec3 = &v.Vec3
	case ValueKindVec4:
		w.Vec4 = &v.Vec4
	case ValueKindString:
		w.Str = v.Str
	case ValueKindFloatArray:
		w.Floats = v.Floats
	case ValueKindAssetRef:
		w.Asset = &v.Asset
	}
	return json.Marshal(w)
}

// UnmarshalJSON parses v's tagged wire form, rejecting an unrecognized kind
// tag rather than silently defaulting to the zero Value.
func (v *Value) UnmarshalJSON(data []byte) error {
	var w valueWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	kind, ok := kindsByName[w.Kind]
	if !ok {
		return fmt.Errorf("common: unknown value kind %q", w.Kind)
	}

	out := Value{Kind: kind}
	switch kind {
	case ValueKindFloat:
		out.Float = w.Float
	case ValueKindInt:
		out.Int = w.Int
	case ValueKindBool:
		out.Bool = w.Bool
	case ValueKindVec2:
		if w.Vec2 != nil {
			out.Vec2 = *w.Vec2
		}
	case ValueKindVec3:
		if w.Vec3 != nil {
			out.Vec3 = *w.Vec3
		}
	case ValueKindVec4:
		if w.Vec4 != nil {
			out.Vec4 = *w.Vec4
		}
	case ValueKindString:
		out.Str = w.Str
	case ValueKindFloatArray:
		out.Floats = w.Floats
	case ValueKindAssetRef:
		if w.Asset != nil {
			out.Asset = *w.Asset
		}
	}
	*v = out
	return nil
}
