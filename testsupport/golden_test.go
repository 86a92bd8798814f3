package testsupport

import "testing"

func TestLoadFullscreenImageCase(t *testing.T) {
	c, err := Load("testdata/fullscreen_image")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Document.Nodes) != 6 {
		t.Fatalf("got %d nodes, want 6", len(c.Document.Nodes))
	}
	if len(c.Catalog) != 6 {
		t.Fatalf("got %d catalog entries, want 6", len(c.Catalog))
	}
	if len(c.Expected) != 2 {
		t.Fatalf("got %d expected wgsl files, want 2", len(c.Expected))
	}
}

func TestRunFullscreenImageCase(t *testing.T) {
	Run(t, "testdata/fullscreen_image")
}
