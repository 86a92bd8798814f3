package shader

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-shade/compileerr"
	"github.com/Carmen-Shannon/oxy-shade/material"
	"github.com/Carmen-Shannon/oxy-shade/porttype"
	"github.com/Carmen-Shannon/oxy-shade/resolve"
)

func TestParamsMarshalSize(t *testing.T) {
	p := &Params{Time: 1.5}
	buf := p.Marshal()
	if len(buf) != ParamsSize {
		t.Fatalf("got %d bytes, want %d", len(buf), ParamsSize)
	}
}

func TestMipLevelZeroSigma(t *testing.T) {
	if got := MipLevel(0); got != 0 {
		t.Fatalf("MipLevel(0) = %d, want 0", got)
	}
}

func TestMipLevelMonotonicAndClamped(t *testing.T) {
	prev := MipLevel(0.01)
	for _, sigma := range []float32{0.5, 1, 4, 16, 64, 4096} {
		got := MipLevel(sigma)
		if got < prev {
			t.Fatalf("MipLevel(%v)=%d should be >= MipLevel of a smaller sigma (%d)", sigma, got, prev)
		}
		if got > MaxMip {
			t.Fatalf("MipLevel(%v)=%d exceeds MaxMip %d", sigma, got, MaxMip)
		}
		prev = got
	}
}

func TestBuildBlurChainLengthMatchesMipLevel(t *testing.T) {
	const sigma = 12
	chain := BuildBlurChain(sigma)
	if len(chain) != MipLevel(sigma)+1 {
		t.Fatalf("chain length %d, want %d", len(chain), MipLevel(sigma)+1)
	}
	for i, lvl := range chain {
		if lvl.Level != i {
			t.Fatalf("level %d has Level field %d", i, lvl.Level)
		}
	}
}

func TestDowngradeSampleCountDescends(t *testing.T) {
	supported := map[int]bool{1: true, 4: true}
	got, warn := DowngradeSampleCount("p", 3, supported)
	if got != 1 {
		t.Fatalf("3 on {1,4} should downgrade to 1, got %d", got)
	}
	if warn == nil {
		t.Fatal("expected a downgrade warning")
	}
}

func TestDowngradeSampleCountNoopWhenSupported(t *testing.T) {
	supported := map[int]bool{1: true, 2: true, 4: true, 8: true}
	got, warn := DowngradeSampleCount("p", 4, supported)
	if got != 4 || warn != nil {
		t.Fatalf("got %d warn=%v, want 4 nil", got, warn)
	}
}

func TestAssembleProducesParseableModule(t *testing.T) {
	ctx := material.NewContext()
	out := material.TypedExpression{Text: "vec4f(1.0, 0.0, 0.0, 1.0)", Type: porttype.Vec4}
	draw := resolve.DrawContext{PassID: "p", DomainWidth: 800, DomainHeight: 600}
	bundle := Assemble("p", draw, out, ctx, AssembleOptions{BlendPreset: BlendAlpha, SampleCount: 1})

	if err := Validate("p", bundle.VertexWGSL, ShaderKindVertex); err != nil {
		t.Fatalf("vertex module failed validation: %v", err)
	}
	if err := Validate("p", bundle.FragmentWGSL, ShaderKindFragment); err != nil {
		t.Fatalf("fragment module failed validation: %v", err)
	}
	if !strings.Contains(bundle.FragmentWGSL, "vec4f(1.0, 0.0, 0.0, 1.0)") {
		t.Fatalf("expected compiled expression in fragment body, got:\n%s", bundle.FragmentWGSL)
	}
}

func TestValidateRejectsUnbalancedBraces(t *testing.T) {
	src := "struct Foo { a: f32, \n@vertex fn vs_main() -> Foo { return Foo(); "
	err := Validate("p", src, ShaderKindVertex)
	if err == nil {
		t.Fatal("expected an error for unbalanced braces")
	}
	var wpe *compileerr.WgslParseError
	if !asWgslParseError(err, &wpe) {
		t.Fatalf("expected a WgslParseError, got %T", err)
	}
}

func TestValidateRejectsMissingEntryPoint(t *testing.T) {
	src := "struct VSOut { @builtin(position) clip_position: vec4f, }"
	if err := Validate("p", src, ShaderKindVertex); err == nil {
		t.Fatal("expected an error for a vertex module with no @vertex entry point")
	}
}

func asWgslParseError(err error, target **compileerr.WgslParseError) bool {
	if e, ok := err.(*compileerr.WgslParseError); ok {
		*target = e
		return true
	}
	return false
}
