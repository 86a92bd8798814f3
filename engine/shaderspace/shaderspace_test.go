package shaderspace

import "testing"

func TestDeclareTextureIsIdempotent(t *testing.T) {
	ss := New()
	ss.DeclareTexture(TextureDecl{Name: "p.draw.pass", Kind: TextureIntermediate, Width: 800, Height: 600})
	ss.DeclareTexture(TextureDecl{Name: "p.draw.pass", Kind: TextureIntermediate, Width: 1, Height: 1})

	got := ss.Textures()
	if len(got) != 1 {
		t.Fatalf("got %d textures, want 1", len(got))
	}
	if got[0].Width != 800 || got[0].Height != 600 {
		t.Fatalf("second declare overwrote the first: got %v", got[0])
	}
}

func TestDeclareGeometryAndUniformBufferAreIdempotent(t *testing.T) {
	ss := New()
	ss.DeclareGeometry(GeometryDecl{Name: "p.draw.geo", Width: 800, Height: 600})
	ss.DeclareGeometry(GeometryDecl{Name: "p.draw.geo", Width: 1, Height: 1})
	ss.DeclareUniformBuffer(UniformBufferDecl{Name: "params.p.draw", PassID: "p"})
	ss.DeclareUniformBuffer(UniformBufferDecl{Name: "params.p.draw", PassID: "other"})

	if len(ss.Geometries()) != 1 {
		t.Fatalf("got %d geometries, want 1", len(ss.Geometries()))
	}
	if got := ss.UniformBuffers(); len(got) != 1 || got[0].PassID != "p" {
		t.Fatalf("got %v, want one entry with PassID p", got)
	}
}

func TestRegisterPassReplacesExistingEntry(t *testing.T) {
	ss := New()
	ss.RegisterPass(PassEntry{Name: "p.draw.pass", PassID: "p", GeometryName: "old"})
	ss.RegisterPass(PassEntry{Name: "p.draw.pass", PassID: "p", GeometryName: "new"})

	passes := ss.Passes()
	if len(passes) != 1 {
		t.Fatalf("got %d passes, want 1 (re-registration replaces, doesn't duplicate)", len(passes))
	}
	if passes[0].GeometryName != "new" {
		t.Fatalf("got GeometryName %q, want replaced value %q", passes[0].GeometryName, "new")
	}
}

func TestOrderedAccessorsPreserveDeclarationOrder(t *testing.T) {
	ss := New()
	ss.RegisterPass(PassEntry{Name: "a.draw.pass", PassID: "a"})
	ss.RegisterPass(PassEntry{Name: "b.draw.pass", PassID: "b"})
	ss.RegisterPass(PassEntry{Name: "c.draw.pass", PassID: "c"})

	passes := ss.Passes()
	want := []string{"a.draw.pass", "b.draw.pass", "c.draw.pass"}
	for i, w := range want {
		if passes[i].Name != w {
			t.Fatalf("passes[%d] = %q, want %q", i, passes[i].Name, w)
		}
	}
}

func TestPassAndTextureLookupMiss(t *testing.T) {
	ss := New()
	if _, ok := ss.Pass("nonexistent"); ok {
		t.Fatalf("Pass lookup on empty space returned ok=true")
	}
	if _, ok := ss.Texture("nonexistent"); ok {
		t.Fatalf("Texture lookup on empty space returned ok=true")
	}
}

func TestComposePassNameMatchesCompositeToCompositeProtocol(t *testing.T) {
	got := composePassPassName(composePassName("inner", "outer"))
	want := "sys.compose.inner.into.outer.pass"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPresentTargetNameSuffix(t *testing.T) {
	got := presentTargetName("c1")
	want := "c1.present.sdr.srgb"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
