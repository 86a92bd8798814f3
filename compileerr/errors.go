// package compileerr defines the typed error kinds returned by every stage of
// the scene-to-shader compiler. Callers distinguish failures by type
// (errors.As), not by parsing a message string; every kind still carries a
// human-readable message for logging, matching the teacher's
// fmt.Errorf-with-context convention.
package compileerr

import "fmt"

// SchemaError reports a failure during scene normalization: an unknown node
// type, a schema missing a required parameter, or a connection targeting a
// port the schema doesn't declare.
type SchemaError struct {
	NodeID  string
	Message string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error on node %q: %s", e.NodeID, e.Message)
}

// NewSchemaError builds a SchemaError for nodeID with a formatted message.
func NewSchemaError(nodeID, format string, args ...any) *SchemaError {
	return &SchemaError{NodeID: nodeID, Message: fmt.Sprintf(format, args...)}
}

// ValidationError reports a failure during scene preparation: a missing or
// duplicate render target, a port-type mismatch on a connection, or a cycle.
type ValidationError struct {
	NodeID       string
	ConnectionID string
	Message      string
}

func (e *ValidationError) Error() string {
	if e.ConnectionID != "" {
		return fmt.Sprintf("validation error on connection %q: %s", e.ConnectionID, e.Message)
	}
	return fmt.Sprintf("validation error on node %q: %s", e.NodeID, e.Message)
}

// NewValidationError builds a node-scoped ValidationError.
func NewValidationError(nodeID, format string, args ...any) *ValidationError {
	return &ValidationError{NodeID: nodeID, Message: fmt.Sprintf(format, args...)}
}

// NewConnectionValidationError builds a connection-scoped ValidationError.
func NewConnectionValidationError(connectionID, format string, args ...any) *ValidationError {
	return &ValidationError{ConnectionID: connectionID, Message: fmt.Sprintf(format, args...)}
}

// ResolverError reports a failure during geometry and coordinate resolution:
// a missing or mistyped Composite target, or a draw pass that cannot reach a
// composition on its branch.
type ResolverError struct {
	NodeID  string
	Message string
}

func (e *ResolverError) Error() string {
	return fmt.Sprintf("resolver error on node %q: %s", e.NodeID, e.Message)
}

// NewResolverError builds a ResolverError for nodeID with a formatted message.
func NewResolverError(nodeID, format string, args ...any) *ResolverError {
	return &ResolverError{NodeID: nodeID, Message: fmt.Sprintf(format, args...)}
}

// CompileError reports a failure during material compilation or per-pass
// WGSL assembly: a missing required input, an unknown node type, a type
// mismatch after coercion, or a wrong output port.
type CompileError struct {
	NodeID  string
	Port    string
	Message string
}

func (e *CompileError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("compile error on node %q port %q: %s", e.NodeID, e.Port, e.Message)
	}
	return fmt.Sprintf("compile error on node %q: %s", e.NodeID, e.Message)
}

// NewCompileError builds a CompileError for nodeID with a formatted message.
func NewCompileError(nodeID, format string, args ...any) *CompileError {
	return &CompileError{NodeID: nodeID, Message: fmt.Sprintf(format, args...)}
}

// NewCompileErrorPort builds a CompileError scoped to a specific port.
func NewCompileErrorPort(nodeID, port, format string, args ...any) *CompileError {
	return &CompileError{NodeID: nodeID, Port: port, Message: fmt.Sprintf(format, args...)}
}

// WgslParseError reports a failure from the static WGSL validator: a parse
// or structural-type error attached to the source pass that produced the
// offending module.
type WgslParseError struct {
	PassID  string
	Line    int
	Message string
}

func (e *WgslParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("wgsl parse error in pass %q at line %d: %s", e.PassID, e.Line, e.Message)
	}
	return fmt.Sprintf("wgsl parse error in pass %q: %s", e.PassID, e.Message)
}

// NewWgslParseError builds a WgslParseError for passID at the given source
// line (0 if not line-specific).
func NewWgslParseError(passID string, line int, format string, args ...any) *WgslParseError {
	return &WgslParseError{PassID: passID, Line: line, Message: fmt.Sprintf(format, args...)}
}

// Warning is a non-fatal diagnostic collected alongside a successful compile
// (an MSAA downgrade, an overridden default). Warnings never fail a compile.
type Warning struct {
	PassID  string
	Message string
}

func (w Warning) String() string {
	if w.PassID != "" {
		return fmt.Sprintf("%s: %s", w.PassID, w.Message)
	}
	return w.Message
}
