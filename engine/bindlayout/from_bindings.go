package bindlayout

import "github.com/Carmen-Shannon/oxy-shade/engine/shader"

// FromBindings converts one pass's assembled shader.Bindings into layout
// metadata: the fixed group-0 slots assembly always emits in order (Params,
// then the optional instance storage buffer, then the optional graph-inputs
// uniform), followed by the group-1 texture/sampler pairs in slot order.
func FromBindings(passID string, b shader.Bindings) *Layout {
	var opts []LayoutOption
	opts = append(opts, WithEntry(0, 0, KindUniformBuffer, "params"))
	if b.HasInstanceBuffer {
		opts = append(opts, WithEntry(0, 1, KindStorageBuffer, "instances"))
	}
	if b.HasGraphInputs {
		opts = append(opts, WithEntry(0, 2, KindUniformBuffer, "graph_inputs"))
	}
	for _, tex := range b.Textures {
		opts = append(opts, WithEntry(1, tex.Slot*2, KindTexture2D, tex.Name))
		opts = append(opts, WithEntry(1, tex.Slot*2+1, KindSampler, tex.Name))
	}
	return NewLayout(passID, opts...)
}
