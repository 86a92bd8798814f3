package shaderspace

import "fmt"

// Naming here follows one fixed protocol: ASCII, deterministic,
// human-readable, dot-separated, prefixed sys. only for synthesized
// resources that have no node id of their own. These names are a contract
// with the runtime and with golden-file tests; changing the pattern
// changes every expected output byte-for-byte.

func passOutputName(passID string) string { return passID + ".draw.pass" }

func passGeometryName(passID string) string { return passID + ".draw.geo" }

func passUniformName(passID string) string { return "params." + passID + ".draw" }

func compositeTargetName(compositeID string) string { return compositeID + ".target" }

func presentTargetName(compositeID string) string { return compositeID + ".present.sdr.srgb" }

// composePassName names the implicit fullscreen blit synthesized whenever
// sourceID's output must be routed into intoCompositeID's target rather
// than drawn there directly.
func composePassName(sourceID, intoCompositeID string) string {
	return fmt.Sprintf("sys.compose.%s.into.%s", sourceID, intoCompositeID)
}

func composeGeometryName(composePass string) string { return composePass + ".geo" }

func composeUniformName(composePass string) string { return "params." + composePass }

func composePassPassName(composePass string) string { return composePass + ".pass" }

// blurMipTextureName names one mip level's texture in a Gaussian blur
// chain. Level 0 is the pass's own material-compiled output; level 0 keeps
// this name rather than passOutputName's so downstream composition always
// samples the chain by its mip name regardless of chain depth.
func blurMipTextureName(passID string, level int) string { return fmt.Sprintf("%s.mip%d", passID, level) }

// blurPassName names the synthesized pass that produces one mip level
// beyond level 0 (level 0 is registered under passID itself, since it's
// still the node's own compiled pass, not a synthesized one).
func blurPassName(passID string, level int) string { return fmt.Sprintf("sys.blur.%s.mip%d.pass", passID, level) }

func blurGeometryName(blurPass string) string { return blurPass + ".geo" }

func blurUniformName(blurPass string) string { return "params." + blurPass }
