package common

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestValueJSONRoundTrip(t *testing.T) {
	cases := []Value{
		FloatValue(1.5),
		IntValue(-3),
		BoolValue(true),
		Vec2Value(Vec2{X: 1, Y: 2}),
		Vec3Value(Vec3{X: 1, Y: 2, Z: 3}),
		Vec4Value(Vec4{X: 1, Y: 2, Z: 3, W: 4}),
		StringValue("uv"),
		FloatArrayValue([]float32{1, 2, 3}),
		AssetValue(ImageSourceRef{Name: "diffuse", URI: "tex://diffuse"}),
	}

	for _, v := range cases {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", v, err)
		}
		var got Value
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if !reflect.DeepEqual(v, got) {
			t.Fatalf("round trip mismatch: got %+v, want %+v", got, v)
		}
	}
}

func TestValueUnmarshalRejectsUnknownKind(t *testing.T) {
	var v Value
	err := json.Unmarshal([]byte(`{"kind":"matrix"}`), &v)
	if err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
