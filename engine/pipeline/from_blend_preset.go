package pipeline

import (
	"github.com/Carmen-Shannon/oxy-shade/engine/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// FromBundle builds a Descriptor from an assembled shader.Bundle: the blend
// preset becomes a concrete blend state (premultiplied-alpha for alpha,
// additive for add; opaque leaves blending disabled and writes the
// fragment color unmodified), and the
// sample count carries through unchanged (DowngradeSampleCount has already
// run by the time a Bundle exists).
func FromBundle(b *shader.Bundle) Descriptor {
	opts := []DescriptorOption{WithSampleCount(b.SampleCount)}
	if bs := blendStateFor(b.BlendPreset); bs != nil {
		opts = append(opts, WithBlendState(bs))
	}
	return NewDescriptor(b.PassID, opts...)
}

// blendStateFor returns nil for BlendOpaque, since an opaque pass writes
// the fragment color directly with no blend function.
func blendStateFor(preset shader.BlendPreset) *wgpu.BlendState {
	switch preset {
	case shader.BlendAlpha:
		return &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		}
	case shader.BlendAdd:
		return &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOne,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOne,
				Operation: wgpu.BlendOperationAdd,
			},
		}
	default:
		return nil
	}
}
