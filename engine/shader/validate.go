package shader

import (
	"regexp"
	"strings"

	"github.com/Carmen-Shannon/oxy-shade/compileerr"
)

// These patterns mirror the introspection regexes an earlier GPU-facing
// reflection pass over WGSL source used to recover vertex layouts and bind
// group descriptors from compiled text. Here they drive the opposite
// direction: instead of trusting the text and extracting metadata from it,
// validate extracts the same structure and rejects anything malformed,
// so emitter bugs surface as a CompileError-adjacent typed error rather
// than a GPU driver crash.
var (
	structBlockRegex   = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)
	vertexEntryRegex   = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)
	bindGroupDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
	fieldTypeRegex     = regexp.MustCompile(`^\s*(?:@\w+\([^)]*\)\s*)*\w+\s*:\s*(.+?)\s*$`)
)

// knownScalarTypes is the closed set of bare WGSL type names this validator
// recognizes as well-formed without chasing a nested struct definition.
var knownScalarTypes = map[string]bool{
	"f32": true, "i32": true, "u32": true, "bool": true,
	"vec2f": true, "vec3f": true, "vec4f": true,
	"vec2i": true, "vec3i": true, "vec4i": true,
	"vec2u": true, "vec3u": true, "vec4u": true,
}

// Validate runs a structural pass over an assembled module text: braces
// balance, every struct referenced by a @group/@binding declaration or by
// a field type is actually declared (or is a known scalar/vector), and a
// vertex module names exactly one @vertex entry point while a fragment
// module names exactly one @fragment entry point. Any violation is
// returned as a WgslParseError attached to passID.
func Validate(passID, source string, kind ShaderKind) error {
	if err := checkBalancedBraces(passID, source); err != nil {
		return err
	}

	structs := map[string]bool{}
	for _, m := range structBlockRegex.FindAllStringSubmatch(source, -1) {
		structs[m[1]] = true
	}

	switch kind {
	case ShaderKindVertex:
		matches := vertexEntryRegex.FindAllStringSubmatch(source, -1)
		if len(matches) != 1 {
			return compileerr.NewWgslParseError(passID, 0, "expected exactly one @vertex entry point, found %d", len(matches))
		}
	case ShaderKindFragment:
		matches := fragmentEntryRegex.FindAllStringSubmatch(source, -1)
		if len(matches) != 1 {
			return compileerr.NewWgslParseError(passID, 0, "expected exactly one @fragment entry point, found %d", len(matches))
		}
	}

	for _, m := range bindGroupDeclRegex.FindAllStringSubmatch(source, -1) {
		typeName := strings.TrimSpace(m[5])
		base := baseTypeName(typeName)
		if knownScalarTypes[base] || structs[base] || strings.HasPrefix(base, "texture") || base == "sampler" || strings.HasPrefix(base, "array") {
			continue
		}
		return compileerr.NewWgslParseError(passID, 0, "binding %q references undeclared type %q", m[4], typeName)
	}

	for name := range structs {
		body := extractStructBody(source, name)
		for _, line := range splitAtTopLevelCommas(body) {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			fm := fieldTypeRegex.FindStringSubmatch(line)
			if fm == nil {
				continue
			}
			base := baseTypeName(fm[1])
			if knownScalarTypes[base] || structs[base] || strings.HasPrefix(base, "array") || strings.HasPrefix(base, "mat") {
				continue
			}
			return compileerr.NewWgslParseError(passID, 0, "struct %q references undeclared field type %q", name, fm[1])
		}
	}

	return nil
}

// ShaderKind distinguishes which entry-point shape Validate should expect.
type ShaderKind int

const (
	ShaderKindVertex ShaderKind = iota
	ShaderKindFragment
	ShaderKindModule
)

func checkBalancedBraces(passID, source string) error {
	depth := 0
	for i, r := range source {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return compileerr.NewWgslParseError(passID, lineAt(source, i), "unbalanced closing brace")
			}
		}
	}
	if depth != 0 {
		return compileerr.NewWgslParseError(passID, 0, "unbalanced braces: %d unclosed", depth)
	}
	return nil
}

func lineAt(source string, byteOffset int) int {
	return strings.Count(source[:byteOffset], "\n") + 1
}

func baseTypeName(t string) string {
	if i := strings.IndexByte(t, '<'); i >= 0 {
		return strings.TrimSpace(t[:i])
	}
	return strings.TrimSpace(t)
}

// splitAtTopLevelCommas splits a struct body on commas that aren't nested
// inside a <...> type parameter list, so `array<vec4f, 64>` stays one field.
func splitAtTopLevelCommas(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

func extractStructBody(source, name string) string {
	re := regexp.MustCompile(`struct\s+` + regexp.QuoteMeta(name) + `\s*\{([^}]*)\}`)
	m := re.FindStringSubmatch(source)
	if m == nil {
		return ""
	}
	return m[1]
}
