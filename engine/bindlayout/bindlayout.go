// Package bindlayout describes bind group layouts as ordered, CPU-only
// metadata: group/binding indices, resource kinds, and debug names, with
// no live GPU resource fields. A compiled pass never touches a device; it
// only needs to describe the shape other tooling will allocate against.
package bindlayout

// Kind names the WGSL resource kind a binding slot holds.
type Kind int

const (
	KindUniformBuffer Kind = iota
	KindStorageBuffer
	KindTexture2D
	KindSampler
)

// Entry is one @group(g) @binding(b) declaration's metadata.
type Entry struct {
	Group   int
	Binding int
	Kind    Kind
	Name    string
}

// Layout is the bind group layout metadata for one compiled pass: every
// binding slot across every group, in the order bindings were assigned.
type Layout struct {
	label   string
	entries []Entry
}

// Label returns the debug label for this layout.
func (l *Layout) Label() string {
	return l.label
}

// Entries returns every binding slot in assignment order.
func (l *Layout) Entries() []Entry {
	return l.entries
}

// Group returns the binding slots belonging to one group index, in
// assignment order.
func (l *Layout) Group(group int) []Entry {
	var out []Entry
	for _, e := range l.entries {
		if e.Group == group {
			out = append(out, e)
		}
	}
	return out
}

// LayoutOption configures a Layout during construction.
type LayoutOption func(*Layout)

// WithEntry appends one binding slot's metadata.
func WithEntry(group, binding int, kind Kind, name string) LayoutOption {
	return func(l *Layout) {
		l.entries = append(l.entries, Entry{Group: group, Binding: binding, Kind: kind, Name: name})
	}
}

// WithEntries appends several binding slots at once, preserving order.
func WithEntries(entries []Entry) LayoutOption {
	return func(l *Layout) {
		l.entries = append(l.entries, entries...)
	}
}

// NewLayout builds a Layout from a label and a sequence of options.
func NewLayout(label string, opts ...LayoutOption) *Layout {
	l := &Layout{label: label}
	for _, opt := range opts {
		opt(l)
	}
	return l
}
