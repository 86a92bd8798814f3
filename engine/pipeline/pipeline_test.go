package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-shade/engine/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestNewDescriptorDefaults(t *testing.T) {
	d := NewDescriptor("p")
	if d.BlendEnabled() {
		t.Fatal("blending should default to disabled")
	}
	if d.CullMode() != wgpu.CullModeNone {
		t.Fatalf("cull mode = %v, want None", d.CullMode())
	}
	if d.Topology() != wgpu.PrimitiveTopologyTriangleList {
		t.Fatalf("topology = %v, want TriangleList", d.Topology())
	}
	if d.SampleCount() != 1 {
		t.Fatalf("sample count = %d, want 1", d.SampleCount())
	}
}

func TestFromBundleOpaqueLeavesBlendDisabled(t *testing.T) {
	b := &shader.Bundle{PassID: "p", BlendPreset: shader.BlendOpaque, SampleCount: 4}
	d := FromBundle(b)
	if d.BlendEnabled() {
		t.Fatal("opaque preset should not enable blending")
	}
	if d.SampleCount() != 4 {
		t.Fatalf("sample count = %d, want 4", d.SampleCount())
	}
}

func TestFromBundleAlphaEnablesBlending(t *testing.T) {
	b := &shader.Bundle{PassID: "p", BlendPreset: shader.BlendAlpha, SampleCount: 1}
	d := FromBundle(b)
	if !d.BlendEnabled() {
		t.Fatal("alpha preset should enable blending")
	}
	if d.BlendState() == nil {
		t.Fatal("expected a non-nil blend state")
	}
}
