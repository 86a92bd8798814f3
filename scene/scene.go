package scene

import "github.com/Carmen-Shannon/oxy-shade/common"

// Node is immutable after normalization: identifier, node type (drawn from
// the closed vocabulary in nodetype.go), and a fully-populated parameter map
// (schema defaults already merged in, existing values win).
type Node struct {
	ID string
	Type NodeType
	Params map[string]common.Value
}

// Param returns the named parameter value and whether it was present. After
// normalization every schema default is present alongside the
// document-supplied values, so a false return means the name is neither a
// schema default nor set by the document (a connected input port with no
// default, for instance).
func (n Node) Param(name string) (common.Value, bool) {
	v, ok := n.Params[name]
	return v, ok
}

// Connection is an edge from (From.NodeID, From.PortID) to
// (To.NodeID, To.PortID). Connection.ID need not be stable; it exists only
// for diagnostics.
type Connection struct {
	ID string
	From PortRef
	To PortRef
}

// Scene is a semantic container: an opaque metadata envelope, a mapping from
// node identifier to Node, and an ordered sequence of Connections. It is the
// output of normalization and is never mutated after construction;
// preparation builds a new PreparedScene from it rather than mutating
// in place.
type Scene struct {
	Metadata map[string]any
	Nodes map[string]*Node
	Connections []Connection
}

// Node looks up a node by id.
func (s *Scene) Node(id string) (*Node, bool) {
	n, ok := s.Nodes[id]
	return n, ok
}

// IncomingConnection returns the single connection (if any) whose To matches
// (nodeID, portID). Scene.Connections, not a field on Node, is the
// authoritative edge list: nodes never carry back-references to their
// incoming edges.
func (s *Scene) IncomingConnection(nodeID, portID string) (Connection, bool) {
	for _, c := range s.Connections {
		if c.To.NodeID == nodeID && c.To.PortID == portID {
			return c, true
		}
	}
	return Connection{}, false
}

// OutgoingConnections returns every connection whose From matches
// (nodeID, portID), in document order.
func (s *Scene) OutgoingConnections(nodeID, portID string) []Connection {
	var out []Connection
	for _, c := range s.Connections {
		if c.From.NodeID == nodeID && c.From.PortID == portID {
			out = append(out, c)
		}
	}
	return out
}

// NodesOfType returns every node whose Type equals t, in map-iteration order
// (callers that need a stable order should sort by ID; used only for the
// "exactly one RenderTarget" check where count, not order, matters).
func (s *Scene) NodesOfType(t NodeType) []*Node {
	var out []*Node
	for _, n := range s.Nodes {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}
