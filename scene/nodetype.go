package scene

// NodeType is drawn from a closed vocabulary; dispatch on it (in the
// resolver and the material compiler) is a single closed match, never a
// virtual hierarchy, so adding a node type means adding a case, not a class.
type NodeType string

const (
	NodeRect2DGeometry NodeType = "Rect2DGeometry"
	NodeTransformGeometry NodeType = "TransformGeometry"
	NodeImageTexture NodeType = "ImageTexture"
	NodeRenderPass NodeType = "RenderPass"
	NodeDownsample NodeType = "Downsample"
	NodeGuassianBlurPass NodeType = "GuassianBlurPass"
	NodeGradientBlur NodeType = "GradientBlur"
	NodeComposite NodeType = "Composite"
	NodeRenderTarget NodeType = "RenderTarget"
	NodeRenderTexture NodeType = "RenderTexture"

	NodeVector2Input NodeType = "Vector2Input"
	NodeVector3Input NodeType = "Vector3Input"
	NodeFloatInput NodeType = "FloatInput"
	NodeIntInput NodeType = "IntInput"
	NodeBoolInput NodeType = "BoolInput"
	NodeColorInput NodeType = "ColorInput"
	NodeAttribute NodeType = "Attribute"
	NodeTime NodeType = "Time"

	NodeMathAdd NodeType = "MathAdd"
	NodeMathMultiply NodeType = "MathMultiply"
	NodeMathClamp NodeType = "MathClamp"
	NodeMathPower NodeType = "MathPower"

	NodeVectorMath NodeType = "VectorMath"
	NodeCrossProduct NodeType = "CrossProduct"
	NodeDotProduct NodeType = "DotProduct"
	NodeNormalize NodeType = "Normalize"

	NodeColorMix NodeType = "ColorMix"
	NodeColorRamp NodeType = "ColorRamp"
	NodeHSVAdjust NodeType = "HSVAdjust"

	NodeSin NodeType = "Sin"
	NodeCos NodeType = "Cos"
)

// DrawPassTypes is the closed set of node types classified as DrawPass by
// the geometry and coordinate resolver.
var DrawPassTypes = map[NodeType]bool{
	NodeRenderPass: true,
	NodeGuassianBlurPass: true,
	NodeDownsample: true,
	NodeGradientBlur: true,
}

// IsDrawPass reports whether t is one of the draw-pass node types.
func IsDrawPass(t NodeType) bool {
	return DrawPassTypes[t]
}
