package scene

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-shade/common"
	"github.com/Carmen-Shannon/oxy-shade/compileerr"
)

// Normalize consumes a raw scene document and a per-node-type schema
// catalog. For every node it merges the schema's default parameters
// into the node's parameter map (document values win over defaults),
// rejects unknown node types unless AllowUnknownTypes is set on the
// document, and rejects connections that target a port the schema doesn't
// declare. The result satisfies the invariant that every declared input
// port of every node has either a connection or a parameter value, never
// neither.
//
// Re-normalizing an already-normalized scene is a no-op: Normalize never
// mutates doc, and a Scene fed back through NormalizeScene (not provided;
// Scene has no document form) is not a concern because Scene is immutable
// once produced.
func Normalize(doc Document, catalog Catalog) (*Scene, error) {
	nodes := make(map[string]*Node, len(doc.Nodes))

	ids := make([]string, 0, len(doc.Nodes))
	for id := range doc.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		raw := doc.Nodes[id]
		schema, ok := catalog.Lookup(raw.Type)
		if !ok {
			if !doc.AllowUnknownTypes {
				return nil, compileerr.NewSchemaError(id, "unknown node type %q", raw.Type)
			}
			// No schema to merge defaults from or check ports against;
			// carry the node through as-is for later stages to tree-shake
			// or fail on.
			nodes[id] = &Node{ID: id, Type: NodeType(raw.Type), Params: raw.Params}
			continue
		}

		merged := mergeParams(schema, raw)
		nodes[id] = &Node{ID: id, Type: NodeType(raw.Type), Params: merged}
	}

	connections := make([]Connection, 0, len(doc.Connections))
	for _, rc := range doc.Connections {
		fromNode, ok := nodes[rc.From.NodeID]
		if !ok {
			return nil, compileerr.NewSchemaError(rc.From.NodeID, "connection %q references undeclared node", rc.ID)
		}
		toNode, ok := nodes[rc.To.NodeID]
		if !ok {
			return nil, compileerr.NewSchemaError(rc.To.NodeID, "connection %q references undeclared node", rc.ID)
		}

		// A node of unknown type (only possible when AllowUnknownTypes let
		// it through above) has no schema to check ports against.
		if fromSchema, ok := catalog.Lookup(string(fromNode.Type)); ok {
			if _, ok := fromSchema.OutputPort(rc.From.PortID); !ok {
				return nil, compileerr.NewSchemaError(fromNode.ID, "connection %q: output port %q not declared by schema", rc.ID, rc.From.PortID)
			}
		}
		if toSchema, ok := catalog.Lookup(string(toNode.Type)); ok {
			if _, ok := toSchema.InputPort(rc.To.PortID); !ok {
				return nil, compileerr.NewSchemaError(toNode.ID, "connection %q: input port %q not declared by schema", rc.ID, rc.To.PortID)
			}
		}

		connections = append(connections, Connection{ID: rc.ID, From: rc.From, To: rc.To})
	}

	// At most one incoming edge per (to_node, to_port).
	seen := make(map[PortRef]string, len(connections))
	for _, c := range connections {
		if prior, ok := seen[c.To]; ok {
			return nil, compileerr.NewSchemaError(c.To.NodeID, "port %q already has an incoming connection (from %q)", c.To.PortID, prior)
		}
		seen[c.To] = c.ID
	}

	sc := &Scene{Metadata: doc.Metadata, Nodes: nodes, Connections: connections}

	// Every declared input port must have either a connection or a
	// parameter value.
	for _, id := range ids {
		n := nodes[id]
		schema, _ := catalog.Lookup(string(n.Type))
		for _, in := range schema.Inputs {
			if _, ok := seen[PortRef{NodeID: id, PortID: in.ID}]; ok {
				continue
			}
			if _, ok := n.Params[in.ID]; ok {
				continue
			}
			return nil, compileerr.NewSchemaError(id, "input port %q has neither a connection nor a parameter value", in.ID)
		}
	}

	return sc, nil
}

// mergeParams merges schema defaults with document-supplied values;
// document values win.
func mergeParams(schema NodeSchema, raw RawNode) map[string]common.Value {
	merged := make(map[string]common.Value, len(schema.DefaultParams)+len(raw.Params))
	for k, v := range schema.DefaultParams {
		merged[k] = v
	}
	for k, v := range raw.Params {
		merged[k] = v
	}
	return merged
}
