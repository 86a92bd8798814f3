package material

import "github.com/Carmen-Shannon/oxy-shade/porttype"

// Context is created fresh per pass ("Material-compile context"). It
// accumulates image-texture bind entries, upstream-pass texture bind
// entries, deduplicated helper function declarations, and the
// (node_id, out_port) subexpression cache. It is scoped to exactly one
// pass's compilation and is discarded when that pass finishes — the
// compiler holds no state across passes.
type Context struct {
	cache map[BindKey]TypedExpression

	imageBindings []TextureBinding
	imageBindingIndex map[BindKey]int

	passBindings []TextureBinding
	passBindingIndex map[BindKey]int

	graphInputs []GraphInputEntry
	graphInputIndex map[string]int

	helperOrder []string
	helperDecls map[string]string
}

// NewContext creates an empty compile context for one pass.
func NewContext() *Context {
	return &Context{
		cache: make(map[BindKey]TypedExpression),
		imageBindingIndex: make(map[BindKey]int),
		passBindingIndex: make(map[BindKey]int),
		graphInputIndex: make(map[string]int),
		helperDecls: make(map[string]string),
	}
}

// ImageBindings returns the registered ImageTexture bind entries in
// first-use order.
func (c *Context) ImageBindings() []TextureBinding { return c.imageBindings }

// PassBindings returns the registered upstream-pass texture bind entries in
// first-use order.
func (c *Context) PassBindings() []TextureBinding { return c.passBindings }

// GraphInputs returns the registered dynamic graph-input entries in
// first-use order.
func (c *Context) GraphInputs() []GraphInputEntry { return c.graphInputs }

// HelperDecls returns the deduplicated helper function declarations in
// first-registration order.
func (c *Context) HelperDecls() []string {
	out := make([]string, len(c.helperOrder))
	for i, name := range c.helperOrder {
		out[i] = c.helperDecls[name]
	}
	return out
}

// cacheLookup consults the subexpression cache. A hit returns the cached
// typed expression without invoking any emitter.
func (c *Context) cacheLookup(key BindKey) (TypedExpression, bool) {
	e, ok := c.cache[key]
	return e, ok
}

// cacheStore inserts a freshly compiled expression. A second Store for the
// same key would indicate the same node was emitted twice, which is the
// invariant cacheLookup exists to prevent; callers must check cacheLookup
// first.
func (c *Context) cacheStore(key BindKey, e TypedExpression) {
	if _, exists := c.cache[key]; exists {
		panic("material: cache key collision for " + key.NodeID + "." + key.Port)
	}
	c.cache[key] = e
}

// registerImageBinding returns the binding slot for (nodeID, port),
// allocating a new one in first-use order if this is the first reference.
func (c *Context) registerImageBinding(nodeID, port string) int {
	key := BindKey{NodeID: nodeID, Port: port}
	if slot, ok := c.imageBindingIndex[key]; ok {
		return slot
	}
	slot := len(c.imageBindings)
	c.imageBindings = append(c.imageBindings, TextureBinding{Slot: slot, NodeID: nodeID, Port: port})
	c.imageBindingIndex[key] = slot
	return slot
}

// registerPassBinding returns the binding slot for an upstream pass texture
// reference, allocating a new one in first-use order if this is the first
// reference.
func (c *Context) registerPassBinding(nodeID, port string) int {
	key := BindKey{NodeID: nodeID, Port: port}
	if slot, ok := c.passBindingIndex[key]; ok {
		return slot
	}
	slot := len(c.passBindings)
	c.passBindings = append(c.passBindings, TextureBinding{Slot: slot, NodeID: nodeID, Port: port})
	c.passBindingIndex[key] = slot
	return slot
}

// RegisterPassBinding is the exported form of registerPassBinding, for
// callers outside the package that assemble a pass bundle without going
// through the node-graph compiler (an implicit compose pass, for instance,
// which has no scene node of its own to dispatch through).
func (c *Context) RegisterPassBinding(nodeID, port string) int {
	return c.registerPassBinding(nodeID, port)
}

// registerGraphInput returns the index for a live-editable literal node,
// allocating a new entry in first-use order if this is the first reference.
func (c *Context) registerGraphInput(nodeID string, t porttype.Type) int {
	if idx, ok := c.graphInputIndex[nodeID]; ok {
		return idx
	}
	idx := len(c.graphInputs)
	c.graphInputs = append(c.graphInputs, GraphInputEntry{NodeID: nodeID, Type: t})
	c.graphInputIndex[nodeID] = idx
	return idx
}

// registerHelper adds a helper function declaration under name, deduplicated
// so repeated references to the same helper (e.g. hsv2rgb used by multiple
// HSVAdjust nodes in one pass) emit it once.
func (c *Context) registerHelper(name, decl string) {
	if _, exists := c.helperDecls[name]; exists {
		return
	}
	c.helperDecls[name] = decl
	c.helperOrder = append(c.helperOrder, name)
}
