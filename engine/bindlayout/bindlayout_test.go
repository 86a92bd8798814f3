package bindlayout

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-shade/engine/shader"
)

func TestFromBindingsOrdersGroupZeroSlotsFirst(t *testing.T) {
	b := shader.Bindings{
		HasInstanceBuffer: true,
		HasGraphInputs:    true,
		GraphInputCount:   2,
		Textures:          []shader.TextureSlot{{Slot: 0, Name: "img"}},
	}
	l := FromBindings("p", b)
	entries := l.Entries()
	if len(entries) != 5 {
		t.Fatalf("got %d entries, want 5", len(entries))
	}
	want := []Entry{
		{Group: 0, Binding: 0, Kind: KindUniformBuffer, Name: "params"},
		{Group: 0, Binding: 1, Kind: KindStorageBuffer, Name: "instances"},
		{Group: 0, Binding: 2, Kind: KindUniformBuffer, Name: "graph_inputs"},
		{Group: 1, Binding: 0, Kind: KindTexture2D, Name: "img"},
		{Group: 1, Binding: 1, Kind: KindSampler, Name: "img"},
	}
	for i, e := range entries {
		if e != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, e, want[i])
		}
	}
}

func TestGroupFiltersByIndex(t *testing.T) {
	l := NewLayout("p",
		WithEntry(0, 0, KindUniformBuffer, "params"),
		WithEntry(1, 0, KindTexture2D, "img"),
		WithEntry(1, 1, KindSampler, "img"),
	)
	g1 := l.Group(1)
	if len(g1) != 2 {
		t.Fatalf("got %d entries in group 1, want 2", len(g1))
	}
}

func TestWithEntriesAppendsInOrder(t *testing.T) {
	l := NewLayout("p", WithEntries([]Entry{
		{Group: 0, Binding: 0, Kind: KindUniformBuffer, Name: "a"},
		{Group: 0, Binding: 1, Kind: KindStorageBuffer, Name: "b"},
	}))
	if len(l.Entries()) != 2 {
		t.Fatalf("got %d entries, want 2", len(l.Entries()))
	}
}
