package instancing

import "testing"

func TestBakeIdentityPlacement(t *testing.T) {
	transforms := Bake([]Placement{{ScaleX: 1, ScaleY: 1}})
	if len(transforms) != 1 {
		t.Fatalf("got %d transforms, want 1", len(transforms))
	}
	want := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	if transforms[0].Model != want {
		t.Fatalf("got %v, want identity %v", transforms[0].Model, want)
	}
}

func TestMarshalStorageBufferSize(t *testing.T) {
	transforms := Bake([]Placement{{}, {}, {}})
	buf := MarshalStorageBuffer(transforms)
	if len(buf) != 3*64 {
		t.Fatalf("got %d bytes, want %d", len(buf), 3*64)
	}
}

func TestVertexBufferLayoutMatchesInstanceRowAttributes(t *testing.T) {
	layout := VertexBufferLayout()
	if layout.ArrayStride != 64 {
		t.Fatalf("got stride %d, want 64", layout.ArrayStride)
	}
	if len(layout.Attributes) != 4 {
		t.Fatalf("got %d attributes, want 4", len(layout.Attributes))
	}
	for i, attr := range layout.Attributes {
		wantLocation := uint32(i + 2)
		if attr.ShaderLocation != wantLocation {
			t.Fatalf("attribute %d has location %d, want %d (instance_row%d)", i, attr.ShaderLocation, wantLocation, i)
		}
	}
}

func TestBakeTranslation(t *testing.T) {
	transforms := Bake([]Placement{{PosX: 10, PosY: 20, ScaleX: 1, ScaleY: 1}})
	m := transforms[0].Model
	if m[12] != 10 || m[13] != 20 {
		t.Fatalf("got translation (%v, %v), want (10, 20)", m[12], m[13])
	}
}
