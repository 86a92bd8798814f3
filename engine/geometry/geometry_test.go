package geometry

import "testing"

func TestFullscreenQuadHasSixVertices(t *testing.T) {
	verts := FullscreenQuad()
	if len(verts) != VertexCount {
		t.Fatalf("got %d vertices, want %d", len(verts), VertexCount)
	}
}

func TestFullscreenQuadSpansUnitRange(t *testing.T) {
	for _, v := range FullscreenQuad() {
		for _, c := range v.Position {
			if c != -0.5 && c != 0.5 {
				t.Fatalf("position component %v outside {-0.5, 0.5}", c)
			}
		}
		for _, c := range v.UV {
			if c != 0 && c != 1 {
				t.Fatalf("uv component %v outside {0, 1}", c)
			}
		}
	}
}

func TestMarshalQuadSize(t *testing.T) {
	buf := MarshalQuad()
	want := VertexCount * 16
	if len(buf) != want {
		t.Fatalf("got %d bytes, want %d", len(buf), want)
	}
}

func TestVertexBufferLayoutMatchesAssembleVertexLayout(t *testing.T) {
	layout := VertexBufferLayout()
	if layout.ArrayStride != 16 {
		t.Fatalf("got stride %d, want 16", layout.ArrayStride)
	}
	if len(layout.Attributes) != 2 {
		t.Fatalf("got %d attributes, want 2", len(layout.Attributes))
	}
	if layout.Attributes[0].ShaderLocation != 0 || layout.Attributes[1].ShaderLocation != 1 {
		t.Fatalf("attribute locations do not match VertexInput's position/uv order")
	}
}
