// package resolve implements the geometry and coordinate resolver:
// classifying live nodes into draw passes, composition routes, and other,
// then computing each draw pass's coordinate domain (the pixel size of the
// render target it ultimately writes into) and resolved geometry footprint.
package resolve

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-shade/compileerr"
	"github.com/Carmen-Shannon/oxy-shade/scene"
	"github.com/Carmen-Shannon/oxy-shade/sceneprep"
)

// GeometrySourceKind distinguishes a directly-connected Rect2DGeometry from
// the fullscreen fallback used by every other draw-pass variant.
type GeometrySourceKind int

const (
	GeometryFullscreenFallback GeometrySourceKind = iota
	GeometryDirect
)

// Geometry is a resolved geometry footprint: size in pixels, center in
// pixels, and which rule produced it.
type Geometry struct {
	Width, Height float32
	CenterX, CenterY float32
	Source GeometrySourceKind
}

// DrawContext is the resolved draw context for one draw-pass node: the
// pass's own id, the nearest downstream composition id, the coordinate
// domain it inherits from that composition, and its resolved geometry
// footprint.
type DrawContext struct {
	PassID string
	CompositionID string
	DomainWidth float32
	DomainHeight float32
	Geometry Geometry
}

// Composition is the resolved composition context for one Composite node:
// its target texture id, the target's pixel size, and its inbound layers
// in draw order.
type Composition struct {
	TargetTextureID string
	Width, Height float32
	Layers []string
}

// Graph is the resolver's full output: a draw context per live draw pass and
// a composition context per live Composite, plus the draw passes in
// topological order for downstream stages to iterate deterministically.
type Graph struct {
	DrawContexts map[string]DrawContext
	Compositions map[string]Composition
	DrawPassOrder []string
}

// Resolve classifies prepared's nodes and computes every draw pass's domain
// and geometry.
func Resolve(prepared *sceneprep.PreparedScene) (*Graph, error) {
	compositions, err := resolveCompositions(prepared)
	if err != nil {
		return nil, err
	}

	g := &Graph{
		DrawContexts: make(map[string]DrawContext),
		Compositions: compositions,
	}

	for _, id := range prepared.Order {
		n := prepared.Nodes[id]
		if !scene.IsDrawPass(n.Type) {
			continue
		}
		dc, err := resolveDrawContext(prepared, compositions, id, map[string]bool{})
		if err != nil {
			return nil, err
		}
		g.DrawContexts[id] = dc
		g.DrawPassOrder = append(g.DrawPassOrder, id)
	}

	return g, nil
}

// resolveCompositions builds a Composition for every live Composite node,
// reading its target RenderTexture's declared size and its ordered inbound
// layers. A missing or mistyped target is a hard ResolverError.
func resolveCompositions(prepared *sceneprep.PreparedScene) (map[string]Composition, error) {
	out := make(map[string]Composition)
	for _, n := range prepared.Nodes {
		if n.Type != scene.NodeComposite {
			continue
		}

		targetConn, ok := prepared.IncomingConnection(n.ID, "target")
		if !ok {
			return nil, compileerr.NewResolverError(n.ID, "Composite has no target connected")
		}
		targetNode, ok := prepared.Node(targetConn.From.NodeID)
		if !ok || targetNode.Type != scene.NodeRenderTexture {
			return nil, compileerr.NewResolverError(n.ID, "Composite target must be a RenderTexture node")
		}

		size, ok := targetNode.Param("size")
		if !ok {
			return nil, compileerr.NewResolverError(targetNode.ID, "RenderTexture missing size parameter")
		}

		layers := layerConnections(prepared, n.ID)

		out[n.ID] = Composition{
			TargetTextureID: targetNode.ID,
			Width: size.Vec2.X,
			Height: size.Vec2.Y,
			Layers: layers,
		}
	}
	return out, nil
}

// layerConnections returns the node ids feeding compositeID's layer0..layer7
// input ports, in ascending port order, skipping unconnected ports. Layer
// order follows the composite's ordered input list, and port-id ascending
// order is how that ordered list is represented in the schema.
func layerConnections(prepared *sceneprep.PreparedScene, compositeID string) []string {
	var conns []scene.Connection
	for _, c := range prepared.Connections {
		if c.To.NodeID == compositeID && isLayerPort(c.To.PortID) {
			conns = append(conns, c)
		}
	}
	sort.Slice(conns, func(i, j int) bool { return conns[i].To.PortID < conns[j].To.PortID })

	layers := make([]string, 0, len(conns))
	for _, c := range conns {
		layers = append(layers, c.From.NodeID)
	}
	return layers
}

func isLayerPort(portID string) bool {
	return len(portID) > 5 && portID[:5] == "layer"
}

// resolveDrawContext computes passID's coordinate domain by walking
// downstream until a Composite is reached. visiting guards against
// infinite recursion on a malformed (cyclic) downstream chain that somehow
// survived preparation's own cycle check (it cannot, but resolveDrawContext
// is also callable in isolation by tests).
func resolveDrawContext(prepared *sceneprep.PreparedScene, compositions map[string]Composition, passID string, visiting map[string]bool) (DrawContext, error) {
	if visiting[passID] {
		panic("resolve: cycle in downstream walk for " + passID)
	}
	visiting[passID] = true

	compositionID, domainW, domainH, err := walkToComposition(prepared, compositions, passID, visiting)
	if err != nil {
		return DrawContext{}, err
	}

	n := prepared.Nodes[passID]
	geo, err := resolveGeometry(prepared, n, domainW, domainH)
	if err != nil {
		return DrawContext{}, err
	}

	return DrawContext{
		PassID: passID,
		CompositionID: compositionID,
		DomainWidth: domainW,
		DomainHeight: domainH,
		Geometry: geo,
	}, nil
}

// walkToComposition follows passID's single outgoing chain until it reaches
// a Composite, returning that composite's id and target size. A pass whose
// output fans out to more than one consumer is a cross-branch situation and
// is rejected rather than guessed at.
func walkToComposition(prepared *sceneprep.PreparedScene, compositions map[string]Composition, passID string, visiting map[string]bool) (string, float32, float32, error) {
	outs := prepared.OutgoingConnectionsFromPort(passID, "out")
	if len(outs) == 0 {
		return "", 0, 0, compileerr.NewResolverError(passID, "draw pass does not reach any Composite")
	}
	if len(outs) > 1 {
		return "", 0, 0, compileerr.NewResolverError(passID, "draw pass output fans out to multiple consumers; cross-branch domain inference is forbidden")
	}

	next := outs[0].To.NodeID
	nextNode, ok := prepared.Node(next)
	if !ok {
		return "", 0, 0, compileerr.NewResolverError(passID, "draw pass output connects to an unknown node %q", next)
	}

	if nextNode.Type == scene.NodeComposite {
		comp, ok := compositions[next]
		if !ok {
			return "", 0, 0, compileerr.NewResolverError(passID, "downstream Composite %q failed to resolve", next)
		}
		return next, comp.Width, comp.Height, nil
	}

	if !scene.IsDrawPass(nextNode.Type) {
		return "", 0, 0, compileerr.NewResolverError(passID, "draw pass output feeds non-pass, non-composite node %q", next)
	}

	if visiting[next] {
		panic("resolve: cycle in downstream walk for " + next)
	}
	visiting[next] = true
	return walkToComposition(prepared, compositions, next, visiting)
}

// resolveGeometry applies geometry precedence. Only RenderPass with a
// direct Rect2DGeometry input resolves a non-fullscreen footprint; every
// other draw-pass variant (and a RenderPass with no geometry input) gets the
// full-domain fullscreen rect centered at the domain center.
func resolveGeometry(prepared *sceneprep.PreparedScene, n *scene.Node, domainW, domainH float32) (Geometry, error) {
	fallback := Geometry{
		Width: domainW, Height: domainH,
		CenterX: domainW / 2, CenterY: domainH / 2,
		Source: GeometryFullscreenFallback,
	}

	if n.Type != scene.NodeRenderPass {
		return fallback, nil
	}

	geomConn, ok := prepared.IncomingConnection(n.ID, "geometry")
	if !ok {
		return fallback, nil
	}
	geomNode, ok := prepared.Node(geomConn.From.NodeID)
	if !ok || geomNode.Type != scene.NodeRect2DGeometry {
		return fallback, nil
	}

	size := resolveVec2Param(prepared, geomNode, "size", domainW, domainH)
	center := resolveVec2Param(prepared, geomNode, "center", domainW/2, domainH/2)

	return Geometry{
		Width: size.X, Height: size.Y,
		CenterX: center.X, CenterY: center.Y,
		Source: GeometryDirect,
	}, nil
}

type vec2 struct{ X, Y float32 }

// resolveVec2Param resolves a Rect2DGeometry vec2 parameter using the
// precedence connected vector input -> inline literal -> the supplied
// domain fallback.
func resolveVec2Param(prepared *sceneprep.PreparedScene, geomNode *scene.Node, portID string, fallbackX, fallbackY float32) vec2 {
	if conn, ok := prepared.IncomingConnection(geomNode.ID, portID); ok {
		if src, ok := prepared.Node(conn.From.NodeID); ok {
			if v, ok := src.Param("value"); ok {
				return vec2{v.Vec2.X, v.Vec2.Y}
			}
		}
	}
	if v, ok := geomNode.Param(portID); ok {
		return vec2{v.Vec2.X, v.Vec2.Y}
	}
	return vec2{fallbackX, fallbackY}
}
