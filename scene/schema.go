package scene

import (
	"github.com/Carmen-Shannon/oxy-shade/common"
	"github.com/Carmen-Shannon/oxy-shade/porttype"
)

// PortDecl declares one input or output port on a node type: its id and the
// port-type family values on that port must satisfy.
type PortDecl struct {
	ID string `json:"id"`
	Family porttype.Type `json:"family"`
}

// NodeSchema is the per-node-type schema entry ("Node schema (input)"):
// declared input ports, declared output ports, and default parameter
// values used to fill in anything the document omits. NodeSchema is the
// shape testsupport's golden-file harness decodes each schema.json entry
// into directly via encoding/json.
type NodeSchema struct {
	Inputs []PortDecl `json:"inputs,omitempty"`
	Outputs []PortDecl `json:"outputs,omitempty"`
	DefaultParams map[string]common.Value `json:"defaultParams,omitempty"`
}

// InputPort looks up an input port declaration by id.
func (s NodeSchema) InputPort(id string) (PortDecl, bool) {
	for _, p := range s.Inputs {
		if p.ID == id {
			return p, true
		}
	}
	return PortDecl{}, false
}

// OutputPort looks up an output port declaration by id.
func (s NodeSchema) OutputPort(id string) (PortDecl, bool) {
	for _, p := range s.Outputs {
		if p.ID == id {
			return p, true
		}
	}
	return PortDecl{}, false
}

// Catalog maps a node type name to its schema. Normalization consults it to
// fill in missing parameters and to validate connection targets; scene
// preparation consults it to type-check connections.
type Catalog map[string]NodeSchema

// Lookup returns the schema for a node type name, or false if the type is
// not declared in the catalog.
func (c Catalog) Lookup(nodeType string) (NodeSchema, bool) {
	s, ok := c[nodeType]
	return s, ok
}
