// package material implements the material expression compiler:
// walking the upstream material sub-DAG of a render pass and emitting typed
// WGSL expressions, with per-node-type dispatch, implicit type coercion,
// common-subexpression caching, and texture bind-entry registration.
package material

import "github.com/Carmen-Shannon/oxy-shade/porttype"

// TypedExpression is a WGSL text fragment with an attached value type and a
// uses_time flag. Immutable once produced; equality is by text.
type TypedExpression struct {
	Text string
	Type porttype.Type
	UsesTime bool
}

// BindKey identifies a texture registered for one pass: the node that
// sources it plus the output port it was sampled through. The same
// (nodeID, port) registered twice in one pass returns the same slot.
type BindKey struct {
	NodeID string
	Port string
}

// TextureBinding is one group-1 texture+sampler bind entry.
type TextureBinding struct {
	Slot int
	NodeID string
	Port string
	// Name is an optional resource name. Nothing in this module assigns
	// it; shader assembly names each slot after NodeID instead.
	Name string
}

// GraphInputEntry is one entry in the optional @group(0) @binding(2)
// graph-inputs uniform: a literal input node that was auto-wrapped during
// preparation because it feeds a draw-pass input directly, and so must be
// readable as a live-editable uniform rather than baked in as a constant.
type GraphInputEntry struct {
	NodeID string
	Type porttype.Type
}
