// package shaderspace implements the declarative assembly object the
// compiler's final stage builds: the collection of named textures,
// geometries, uniform buffers, and pass pipelines a GPU runtime consumes to
// execute a compiled scene. It holds no live GPU device, queue, or resource
// handle — only the deterministic, human-readable names and descriptor
// metadata a runtime binds resources against.
package shaderspace

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-shade/engine/bindlayout"
	"github.com/Carmen-Shannon/oxy-shade/engine/pipeline"
	"github.com/Carmen-Shannon/oxy-shade/engine/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureKind distinguishes the role a declared texture plays.
type TextureKind int

const (
	TextureRenderTarget TextureKind = iota
	TextureImage
	TextureIntermediate
	TexturePresent
)

// TextureDecl is one declared texture: its deterministic name, its role,
// and its pixel size (zero for an image texture, whose size is unknown
// until the draw-time resource loader resolves it).
type TextureDecl struct {
	Name string
	Kind TextureKind
	Width, Height float32
}

// GeometryDecl is one declared vertex buffer: a fullscreen rectangle for
// every draw pass, or a non-default-sized Rect2DGeometry footprint.
// Vertices/Layout are engine/geometry.MarshalQuad's bytes and
// VertexBufferLayout's descriptor, identical for every GeometryDecl since
// every pass draws the same unit quad regardless of its own footprint.
// InstanceVertices/InstanceLayout are only set for a pass whose bundle
// carries baked per-instance transform data (Bundle.InstanceData), using
// engine/instancing's own buffer bytes and layout instead.
type GeometryDecl struct {
	Name string
	Width, Height float32
	Vertices []byte
	Layout wgpu.VertexBufferLayout
	InstanceVertices []byte
	InstanceLayout *wgpu.VertexBufferLayout
}

// UniformBufferDecl is one declared per-pass Params uniform buffer. Data is
// the compile-time-known Params snapshot (shader.ParamsFor), marshaled via
// shader.Params.Marshal — every field except Time/Camera, which are
// genuinely per-frame runtime values a host overwrites before first use.
type UniformBufferDecl struct {
	Name string
	PassID string
	Data []byte
}

// PassEntry is one registered pass pipeline: its shader bundle, derived
// bind layout and pipeline descriptor, and the geometry/uniform/output
// texture names it's wired to.
type PassEntry struct {
	Name string
	PassID string
	Bundle *shader.Bundle
	Layout *bindlayout.Layout
	Pipeline pipeline.Descriptor
	GeometryName string
	UniformName string
	OutputTextureName string
}

// shaderSpace is the implementation of the ShaderSpace interface.
type shaderSpace struct {
	mu *sync.Mutex

	textures map[string]TextureDecl
	textureOrder []string

	geometries map[string]GeometryDecl
	geometryOrder []string

	uniforms map[string]UniformBufferDecl
	uniformOrder []string

	passes map[string]PassEntry
	passOrder []string
}

// ShaderSpace is the public interface for the shader-space assembly
// object. Declarations are idempotent by name: declaring the same name
// twice with the same content is a no-op, and the naming protocol
// guarantees two distinct resources never collide on name.
type ShaderSpace interface {
	// DeclareTexture registers a named texture. Re-declaring an existing
	// name is a no-op.
	DeclareTexture(decl TextureDecl)

	// DeclareGeometry registers a named vertex buffer footprint.
	// Re-declaring an existing name is a no-op.
	DeclareGeometry(decl GeometryDecl)

	// DeclareUniformBuffer registers a named per-pass uniform buffer.
	// Re-declaring an existing name is a no-op.
	DeclareUniformBuffer(decl UniformBufferDecl)

	// RegisterPass registers a pass pipeline under its name. Registering
	// an already-registered name replaces the prior entry.
	RegisterPass(entry PassEntry)

	// Textures returns every declared texture in declaration order.
	Textures() []TextureDecl

	// Geometries returns every declared geometry in declaration order.
	Geometries() []GeometryDecl

	// UniformBuffers returns every declared uniform buffer in
	// declaration order.
	UniformBuffers() []UniformBufferDecl

	// Passes returns every registered pass in registration order.
	Passes() []PassEntry

	// Pass looks up a registered pass by name.
	Pass(name string) (PassEntry, bool)

	// Texture looks up a declared texture by name.
	Texture(name string) (TextureDecl, bool)
}

var _ ShaderSpace = &shaderSpace{}

// New creates an empty ShaderSpace ready for declaration and registration.
func New() ShaderSpace {
	return &shaderSpace{
		mu: &sync.Mutex{},
		textures: make(map[string]TextureDecl),
		geometries: make(map[string]GeometryDecl),
		uniforms: make(map[string]UniformBufferDecl),
		passes: make(map[string]PassEntry),
	}
}

func (s *shaderSpace) DeclareTexture(decl TextureDecl) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.textures[decl.Name]; exists {
		return
	}
	s.textures[decl.Name] = decl
	s.textureOrder = append(s.textureOrder, decl.Name)
}

func (s *shaderSpace) DeclareGeometry(decl GeometryDecl) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.geometries[decl.Name]; exists {
		return
	}
	s.geometries[decl.Name] = decl
	s.geometryOrder = append(s.geometryOrder, decl.Name)
}

func (s *shaderSpace) DeclareUniformBuffer(decl UniformBufferDecl) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.uniforms[decl.Name]; exists {
		return
	}
	s.uniforms[decl.Name] = decl
	s.uniformOrder = append(s.uniformOrder, decl.Name)
}

func (s *shaderSpace) RegisterPass(entry PassEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.passes[entry.Name]; !exists {
		s.passOrder = append(s.passOrder, entry.Name)
	}
	s.passes[entry.Name] = entry
}

func (s *shaderSpace) Textures() []TextureDecl {
	out := make([]TextureDecl, len(s.textureOrder))
	for i, name := range s.textureOrder {
		out[i] = s.textures[name]
	}
	return out
}

func (s *shaderSpace) Geometries() []GeometryDecl {
	out := make([]GeometryDecl, len(s.geometryOrder))
	for i, name := range s.geometryOrder {
		out[i] = s.geometries[name]
	}
	return out
}

func (s *shaderSpace) UniformBuffers() []UniformBufferDecl {
	out := make([]UniformBufferDecl, len(s.uniformOrder))
	for i, name := range s.uniformOrder {
		out[i] = s.uniforms[name]
	}
	return out
}

func (s *shaderSpace) Passes() []PassEntry {
	out := make([]PassEntry, len(s.passOrder))
	for i, name := range s.passOrder {
		out[i] = s.passes[name]
	}
	return out
}

func (s *shaderSpace) Pass(name string) (PassEntry, bool) {
	p, ok := s.passes[name]
	return p, ok
}

func (s *shaderSpace) Texture(name string) (TextureDecl, bool) {
	t, ok := s.textures[name]
	return t, ok
}
