// package sceneprep implements scene preparation: locating the
// unique render target, reverse-reachable tree-shaking, auto-wrapping bare
// literal pass inputs, port-type compatibility checking, and topological
// sorting. Its output, PreparedScene, is never mutated after construction —
// matching scene.Scene's own immutability — and preparing an already
// prepared scene is a no-op (running Prepare again on its own output
// produces byte-identical Nodes/Connections/Order).
package sceneprep

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-shade/common"
	"github.com/Carmen-Shannon/oxy-shade/compileerr"
	"github.com/Carmen-Shannon/oxy-shade/porttype"
	"github.com/Carmen-Shannon/oxy-shade/scene"
)

// literalNodeTypes auto-wrap when they feed a draw-pass input directly, so
// every downstream stage sees the same "connected to a wrapper" shape
// whether the original author wired a literal or a computed expression.
var literalNodeTypes = map[scene.NodeType]bool{
	scene.NodeVector2Input: true,
	scene.NodeVector3Input: true,
	scene.NodeFloatInput: true,
	scene.NodeIntInput: true,
	scene.NodeBoolInput: true,
	scene.NodeColorInput: true,
}

// PreparedScene is the output of preparation: the tree-shaken, auto-wrapped,
// validated, topologically ordered scene.
type PreparedScene struct {
	RenderTargetID string
	Nodes map[string]*scene.Node
	Connections []scene.Connection
	// Order lists every retained node id in topological order (inputs
	// before consumers); ties break by lexicographic node id. The
	// document's node order is not kept.
	Order []string
}

// Node looks up a node by id.
func (p *PreparedScene) Node(id string) (*scene.Node, bool) {
	n, ok := p.Nodes[id]
	return n, ok
}

// IncomingConnection returns the connection (if any) feeding (nodeID, portID).
func (p *PreparedScene) IncomingConnection(nodeID, portID string) (scene.Connection, bool) {
	for _, c := range p.Connections {
		if c.To.NodeID == nodeID && c.To.PortID == portID {
			return c, true
		}
	}
	return scene.Connection{}, false
}

// OutgoingConnectionsFromPort returns every connection whose From matches
// (nodeID, portID), in document order.
func (p *PreparedScene) OutgoingConnectionsFromPort(nodeID, portID string) []scene.Connection {
	var out []scene.Connection
	for _, c := range p.Connections {
		if c.From.NodeID == nodeID && c.From.PortID == portID {
			out = append(out, c)
		}
	}
	return out
}

// Prepare runs the five preparation operations in order against sc using
// catalog for port-family lookups.
func Prepare(sc *scene.Scene, catalog scene.Catalog) (*PreparedScene, error) {
	targets := sc.NodesOfType(scene.NodeRenderTarget)
	if len(targets) == 0 {
		return nil, compileerr.NewValidationError("", "scene has no RenderTarget node")
	}
	if len(targets) > 1 {
		return nil, compileerr.NewValidationError(targets[1].ID, "scene has more than one RenderTarget node")
	}
	target := targets[0]

	live := treeShake(sc, target.ID)

	nodes, connections := autoWrapLiterals(sc, live, catalog)

	if err := checkPortCompatibility(nodes, connections, catalog); err != nil {
		return nil, err
	}

	order, err := topoSort(nodes, connections)
	if err != nil {
		return nil, err
	}

	return &PreparedScene{
		RenderTargetID: target.ID,
		Nodes: nodes,
		Connections: connections,
		Order: order,
	}, nil
}

// treeShake walks backward (follows each kept node's incoming connections)
// from targetID and returns the set of node ids reachable that way,
// including targetID itself. Nodes not reachable from the render target are
// dropped silently — removing them never changes any emitted bundle.
func treeShake(sc *scene.Scene, targetID string) map[string]bool {
	live := map[string]bool{targetID: true}
	stack := []string{targetID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range sc.Connections {
			if c.To.NodeID != id {
				continue
			}
			if !live[c.From.NodeID] {
				live[c.From.NodeID] = true
				stack = append(stack, c.From.NodeID)
			}
		}
	}
	return live
}

// autoWrapLiterals inserts a synthetic passthrough wrapper node wherever a
// literal input node feeds a draw-pass input port directly. The wrapper
// has the same node type as the literal and a single
// pass-through "value" port; its id is deterministic
// (sys.wrap.<toNode>.<toPort>) so re-running auto-wrap on an already-wrapped
// scene is idempotent (it finds the wrapper already interposed and does
// nothing).
func autoWrapLiterals(sc *scene.Scene, live map[string]bool, catalog scene.Catalog) (map[string]*scene.Node, []scene.Connection) {
	nodes := make(map[string]*scene.Node, len(live))
	for id := range live {
		if n, ok := sc.Nodes[id]; ok {
			nodes[id] = n
		}
	}

	connections := make([]scene.Connection, 0, len(sc.Connections))
	for _, c := range sc.Connections {
		if !live[c.From.NodeID] || !live[c.To.NodeID] {
			continue
		}

		fromNode := nodes[c.From.NodeID]
		toNode := nodes[c.To.NodeID]
		wrapperID := "sys.wrap." + c.To.NodeID + "." + c.To.PortID
		needsWrap := literalNodeTypes[fromNode.Type] && scene.IsDrawPass(toNode.Type) && c.From.NodeID != wrapperID
		if !needsWrap {
			connections = append(connections, c)
			continue
		}

		if _, exists := nodes[wrapperID]; !exists {
			nodes[wrapperID] = &scene.Node{
				ID: wrapperID,
				Type: fromNode.Type,
				Params: map[string]common.Value{},
			}
		}
		// The wrapper passes the literal's own "value" output straight
		// through, so rewire in two hops: literal -> wrapper, wrapper -> pass.
		connections = append(connections,
			scene.Connection{ID: c.ID + ".in", From: c.From, To: scene.PortRef{NodeID: wrapperID, PortID: "value"}},
			scene.Connection{ID: c.ID, From: scene.PortRef{NodeID: wrapperID, PortID: "value"}, To: c.To},
		)
	}

	return nodes, connections
}

// checkPortCompatibility verifies every connection's source port type
// coerces to its destination port type.
func checkPortCompatibility(nodes map[string]*scene.Node, connections []scene.Connection, catalog scene.Catalog) error {
	for _, c := range connections {
		fromNode, ok := nodes[c.From.NodeID]
		if !ok {
			continue
		}
		toNode, ok := nodes[c.To.NodeID]
		if !ok {
			continue
		}
		fromSchema, _ := catalog.Lookup(string(fromNode.Type))
		toSchema, _ := catalog.Lookup(string(toNode.Type))

		fromPort, ok := fromSchema.OutputPort(c.From.PortID)
		if !ok {
			continue
		}
		toPort, ok := toSchema.InputPort(c.To.PortID)
		if !ok {
			continue
		}

		if !porttype.Coercible(fromPort.Family, toPort.Family) {
			return compileerr.NewConnectionValidationError(c.ID,
				"port type %s is not coercible to %s (%s.%s -> %s.%s)",
				fromPort.Family, toPort.Family, c.From.NodeID, c.From.PortID, c.To.NodeID, c.To.PortID)
		}
	}
	return nil
}

// topoSort performs a Kahn-style topological sort; lexicographic node id
// breaks ties so the sort is stable across runs. A cycle is fatal.
func topoSort(nodes map[string]*scene.Node, connections []scene.Connection) ([]string, error) {
	indegree := make(map[string]int, len(nodes))
	adjacency := make(map[string][]string, len(nodes))
	// iterate declared nodes by a stable key (sorted id) so ties resolve
	// deterministically regardless of map iteration order.
	ids := stableNodeOrder(nodes)

	for _, id := range ids {
		indegree[id] = 0
	}
	for _, c := range connections {
		if _, ok := nodes[c.From.NodeID]; !ok {
			continue
		}
		if _, ok := nodes[c.To.NodeID]; !ok {
			continue
		}
		adjacency[c.From.NodeID] = append(adjacency[c.From.NodeID], c.To.NodeID)
		indegree[c.To.NodeID]++
	}

	var queue []string
	for _, id := range ids {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	var order []string
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		for _, next := range adjacency[id] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(order) != len(nodes) {
		return nil, compileerr.NewValidationError("", "scene graph contains a cycle")
	}
	return order, nil
}

// stableNodeOrder returns node ids sorted lexicographically. Node ids are
// the only stable handle a caller has on ordering (map iteration is not
// ordered), so lexicographic order on id is the tie-break source; the
// resulting topo order does not follow the order in which nodes are
// written in the document.
func stableNodeOrder(nodes map[string]*scene.Node) []string {
	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
