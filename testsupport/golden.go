// package testsupport is a golden-file test harness for the compiler
// package: it loads a scene document and schema catalog from a case
// directory, compiles them, and checks the compiled WGSL against
// expected text pinned alongside the case. It has no production caller;
// every user is a _test.go file elsewhere in the module.
package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-shade/compiler"
	"github.com/Carmen-Shannon/oxy-shade/scene"
)

// Case is one golden-file compiler test case, loaded from a directory.
type Case struct {
	Dir string
	Document scene.Document
	Catalog scene.Catalog

	// Expected maps a compiled pass name to the WGSL module text its
	// <passName>.wgsl file pins. Only passes named by a file present in
	// Dir are checked; a case can pin as many or as few passes as it cares
	// about.
	Expected map[string]string
}

// Load reads dir/scene.json, dir/schema.json, and every dir/*.wgsl file
// into a Case. A *.wgsl file's base name with the extension stripped is
// the pass name it pins an expectation for.
func Load(dir string) (*Case, error) {
	sceneData, err := os.ReadFile(filepath.Join(dir, "scene.json"))
	if err != nil {
		return nil, fmt.Errorf("testsupport: reading scene.json: %w", err)
	}
	var doc scene.Document
	if err := json.Unmarshal(sceneData, &doc); err != nil {
		return nil, fmt.Errorf("testsupport: parsing scene.json: %w", err)
	}

	schemaData, err := os.ReadFile(filepath.Join(dir, "schema.json"))
	if err != nil {
		return nil, fmt.Errorf("testsupport: reading schema.json: %w", err)
	}
	var catalog scene.Catalog
	if err := json.Unmarshal(schemaData, &catalog); err != nil {
		return nil, fmt.Errorf("testsupport: parsing schema.json: %w", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.wgsl"))
	if err != nil {
		return nil, fmt.Errorf("testsupport: globbing wgsl files in %s: %w", dir, err)
	}
	expected := make(map[string]string, len(matches))
	for _, m := range matches {
		want, err := os.ReadFile(m)
		if err != nil {
			return nil, fmt.Errorf("testsupport: reading %s: %w", m, err)
		}
		name := strings.TrimSuffix(filepath.Base(m), ".wgsl")
		expected[name] = string(want)
	}

	return &Case{Dir: dir, Document: doc, Catalog: catalog, Expected: expected}, nil
}

// Runner is the slice of *testing.T that Run needs. Accepting it as an
// interface rather than importing "testing" directly keeps this package's
// only dependency on the test framework the caller's own *testing.T
// satisfies implicitly.
type Runner interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Run loads dir as a Case, compiles its document against its catalog, and
// asserts every pinned pass's WGSL module text is byte-equal to what the
// compile produced. A pinned pass the compile didn't register is a hard
// failure; a registered pass with no pinned file is simply not checked.
func Run(t Runner, dir string) {
	t.Helper()

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("%v", err)
		return
	}

	space, _, err := compiler.Compile(c.Document, c.Catalog)
	if err != nil {
		t.Fatalf("testsupport: Compile(%s): %v", dir, err)
		return
	}

	for name, want := range c.Expected {
		pass, ok := space.Pass(name)
		if !ok {
			t.Errorf("testsupport: %s: no compiled pass named %q", dir, name)
			continue
		}
		if pass.Bundle.ModuleWGSL != want {
			t.Errorf("testsupport: %s: pass %q WGSL mismatch\n--- got ---\n%s\n--- want ---\n%s", dir, name, pass.Bundle.ModuleWGSL, want)
		}
	}
}
