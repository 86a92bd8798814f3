// package common contains shared value types and math helpers used throughout
// the compiler. They are not interface-wrapped structs, just plain structs
// that express commonly used data shapes.
package common

import "github.com/cogentcore/webgpu/wgpu"

// ImageSourceRef identifies an image an ImageSource node names by reference.
// The compiler never decodes or touches pixel data; it only carries this
// reference through to the shader-space bundle so the draw-time resource
// loader can resolve it to an actual texture.
type ImageSourceRef struct {
	// Name is an identifier for this image (e.g., "diffuse", "noise").
	Name string
	// URI is an opaque, host-interpreted locator (path, asset id, or URL).
	// The compiler treats it as an uninterpreted string.
	URI string
}

// SamplerStagingData holds the configuration for a sampler binding pending
// draw-time creation. Used by the bind layout and shader-space packages to
// describe how a texture should be sampled without opening a live GPU device.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV specify the addressing mode for texture
	// coordinates outside the [0, 1] range in each dimension.
	AddressModeU, AddressModeV wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification
	// and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection,
	// used by the Gaussian blur mip chain.
	MipmapFilter wgpu.MipmapFilterMode
}

// DefaultSampler returns the sampler configuration used for image-source and
// pass-output textures absent an explicit override on the node.
func DefaultSampler() SamplerStagingData {
	return SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeLinear,
		MipmapFilter: wgpu.MipmapFilterModeLinear,
	}
}
