package shader

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-shade/compileerr"
	"github.com/Carmen-Shannon/oxy-shade/material"
	"github.com/Carmen-Shannon/oxy-shade/porttype"
)

// MaxMip bounds the Gaussian blur mip chain: a chain never grows
// past this many intermediate levels regardless of requested sigma.
const MaxMip = 8

// mipEpsilon keeps log2 finite for a near-zero sigma.
const mipEpsilon = 1e-4

// MipLevel computes the mip chain depth for a requested blur sigma:
// clamp(floor(log2(max(sigma*4/3, eps))), 0, MaxMip).
func MipLevel(sigma float32) int {
	scaled := float64(sigma) * 4.0 / 3.0
	if scaled < mipEpsilon {
		scaled = mipEpsilon
	}
	level := int(math.Floor(math.Log2(scaled)))
	if level < 0 {
		level = 0
	}
	if level > MaxMip {
		level = MaxMip
	}
	return level
}

// residualSigma is the effective blur sigma at a given mip level: each
// level halves texel density, so the same visual sigma costs half as many
// texels to express one level down.
func residualSigma(sigma float32, level int) float32 {
	return sigma / float32(math.Pow(2, float64(level)))
}

// BlurTap is one bilinear-optimized sample: two adjacent discrete Gaussian
// taps combined into a single texture fetch at a fractional offset, per
// the "linear-tap-pair offsets for bilinear sampling" rule.
type BlurTap struct {
	Offset float32
	Weight float32
}

// BlurLevel is one level of the mip chain: its residual sigma and its
// precomputed 8-tap (4 bilinear-pair) kernel.
type BlurLevel struct {
	Level int
	Sigma float32
	Taps [4]BlurTap
}

// BuildBlurChain computes every mip level's kernel for a requested blur
// sigma, from level 0 (least blurred) to MipLevel(sigma) (most blurred).
func BuildBlurChain(sigma float32) []BlurLevel {
	depth := MipLevel(sigma)
	chain := make([]BlurLevel, 0, depth+1)
	for level := 0; level <= depth; level++ {
		s := residualSigma(sigma, level)
		chain = append(chain, BlurLevel{Level: level, Sigma: s, Taps: gaussianTaps(s)})
	}
	return chain
}

// gaussianTaps generates eight discrete Gaussian samples symmetric about
// the center texel (offsets 0.5..3.5 texels in each direction) and folds
// them into four bilinear-pair taps: each pair's two discrete weights
// combine into one weight and one fractional offset, halving the texture
// fetches a fragment shader needs per axis.
func gaussianTaps(sigma float32) [4]BlurTap {
	if sigma < 1e-6 {
		sigma = 1e-6
	}
	discreteOffsets := [4][2]float32{{0.5, 1.5}, {2.5, 3.5}, {-0.5, -1.5}, {-2.5, -3.5}}
	var taps [4]BlurTap
	for i, pair := range discreteOffsets {
		w0 := gaussianWeight(pair[0], sigma)
		w1 := gaussianWeight(pair[1], sigma)
		sum := w0 + w1
		offset := pair[0]
		if sum > 1e-9 {
			offset = (pair[0]*w0 + pair[1]*w1) / sum
		}
		taps[i] = BlurTap{Offset: offset, Weight: sum}
	}
	return taps
}

func gaussianWeight(x, sigma float32) float32 {
	return float32(math.Exp(-0.5 * float64(x/sigma) * float64(x/sigma)))
}

// AssembleBlurLevel builds the WGSL bundle for one mip level of a Gaussian
// blur chain: a fullscreen pass sampling sourceName (the previous level's
// texture, or the chain's own level-0 source for level 1) through level's
// separable 4-tap-per-axis kernel. Like AssembleCompose, this never goes
// through the node-graph compiler — sourceName is registered directly as a
// pass-texture binding, and the kernel weights/offsets are baked in as
// literals since they're fixed at compile time.
func AssembleBlurLevel(passID string, domainWidth, domainHeight float32, sourceName string, level BlurLevel) *Bundle {
	ctx := material.NewContext()
	slot := ctx.RegisterPassBinding(sourceName, "out")

	out := material.TypedExpression{
		Text: blurKernelText(slot, domainWidth, domainHeight, level),
		Type: porttype.Vec4,
	}

	bindings := bindingsFromContext(ctx, false)

	vertex := assembleVertex(bindings, false)
	fragment := assembleFragment(out, ctx, bindings, BlendAlpha, true)
	fragmentBody := assembleFragment(out, ctx, bindings, BlendAlpha, false)
	module := vertex + "\n\n" + fragmentBody

	return &Bundle{
		PassID: passID,
		VertexWGSL: vertex,
		FragmentWGSL: fragment,
		ModuleWGSL: module,
		Bindings: bindings,
		BlendPreset: BlendAlpha,
		SampleCount: 1,
		DomainWidth: domainWidth,
		DomainHeight: domainHeight,
	}
}

// blurKernelText emits the weighted sum of level's kernel applied
// separably on both axes (4 taps by 4 taps, 16 fetches), normalized by
// total weight. Tap offsets are texel-space, so they're scaled to uv space
// by the domain's own texel size before baking them in as literals.
func blurKernelText(slot int, domainWidth, domainHeight float32, level BlurLevel) string {
	s := strconv.Itoa(slot)
	texelX := 1.0 / domainWidth
	texelY := 1.0 / domainHeight

	var terms strings.Builder
	var total float32
	for i, ty := range level.Taps {
		for j, tx := range level.Taps {
			if i != 0 || j != 0 {
				terms.WriteString(" + ")
			}
			w := tx.Weight * ty.Weight
			total += w
			fmt.Fprintf(&terms, "%s * textureSample(tex_%s, samp_%s, vec2f(in.uv.x + %s, 1.0 - in.uv.y + %s))",
				blurFloat(w), s, s, blurFloat(tx.Offset*texelX), blurFloat(ty.Offset*texelY))
		}
	}

	return fmt.Sprintf("((%s) / %s)", terms.String(), blurFloat(total))
}

// blurFloat formats a kernel weight or offset as a WGSL float literal.
func blurFloat(f float32) string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 32)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// supportedSampleCounts is the closed set of MSAA counts a pass may
// request; downgrade walks this list descending.
var supportedSampleCounts = []int{8, 4, 2, 1}

// DowngradeSampleCount resolves a requested MSAA sample count against the
// device's supported set, descending through {8, 4, 2, 1} until a
// supported count is found. Returns the resolved count and, if it differs
// from the request, a warning naming passID.
func DowngradeSampleCount(passID string, requested int, supported map[int]bool) (int, *compileerr.Warning) {
	if supported[requested] {
		return requested, nil
	}
	for _, c := range supportedSampleCounts {
		if c <= requested && supported[c] {
			return c, &compileerr.Warning{
				PassID: passID,
				Message: fmt.Sprintf("MSAA sample count %d unsupported, downgraded to %d", requested, c),
			}
		}
	}
	for _, c := range supportedSampleCounts {
		if supported[c] {
			return c, &compileerr.Warning{
				PassID: passID,
				Message: fmt.Sprintf("MSAA sample count %d unsupported, downgraded to %d", requested, c),
			}
		}
	}
	return 1, &compileerr.Warning{PassID: passID, Message: "no supported MSAA sample count found, defaulting to 1"}
}
