// package scene holds the scene document wire format, the normalized Scene
// graph it deserializes into, and the schema-merge normalization stage.
// Node is immutable after normalization; connections carry no
// weight, matching the teacher's immutable-after-construction data shapes
// (engine/scene/scene.go builds a scene once via functional options, then
// treats it as read-mostly for the session).
package scene

import "github.com/Carmen-Shannon/oxy-shade/common"

// PortRef names a single port on a single node.
type PortRef struct {
	NodeID string `json:"node"`
	PortID string `json:"port"`
}

// RawNode is a node as it appears in a scene document, before schema
// defaults are merged in.
type RawNode struct {
	Type string `json:"type"`
	Params map[string]common.Value `json:"params,omitempty"`
}

// RawConnection is a connection as it appears in a scene document. ID need
// not be stable; it exists only for error reporting.
type RawConnection struct {
	ID string `json:"id"`
	From PortRef `json:"from"`
	To PortRef `json:"to"`
}

// Document is the raw scene document ("Scene document (input)"):
// version, an opaque metadata envelope, the node map, the ordered connection
// list, and an optional named Composite output. Document is the shape
// testsupport's golden-file harness decodes scene.json into directly via
// encoding/json.
//
// AllowUnknownTypes is the escape hatch Normalize honors: when set, a node
// whose type isn't in the schema catalog is kept as an opaque, unvalidated
// node instead of failing normalization outright. An unknown-typed node
// carries no schema, so none of its ports are checked and none of its
// parameters get defaults filled in; it either gets tree-shaken away for
// being unreachable from the render target, or survives to a later stage
// and fails there with a node-identified compile error the first time
// something tries to actually use it.
type Document struct {
	Version string `json:"version"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Nodes map[string]RawNode `json:"nodes"`
	Connections []RawConnection `json:"connections"`
	Output string `json:"output,omitempty"`
	AllowUnknownTypes bool `json:"allowUnknownTypes,omitempty"`
}
