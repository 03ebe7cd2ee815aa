package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/typhoonlabs/typhoon/internal/catalog"
)

func counterVars() Vars {
	return Vars{
		"crate_name":        "my-program",
		"binary_stem":       "my_program",
		"program_id":        "11111111111111111111111111111111",
		"dependency_spec":   `"0.1.0-alpha.16"`,
		"idl_generator_dep": `"0.1.0-alpha.16"`,
		"license":           "Apache-2.0",
		"typhoon_version":   "0.1.0-alpha.16",
	}
}

func TestRenderCounter(t *testing.T) {
	bundle, err := catalog.Lookup(catalog.Counter)
	if err != nil {
		t.Fatal(err)
	}

	tree, err := Render(bundle, counterVars())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	wantPaths := []string{"Cargo.toml", "src/lib.rs", "build.rs", "tests/integration.rs", ".gitignore"}
	gotPaths := tree.Paths()
	if len(gotPaths) != len(wantPaths) {
		t.Fatalf("got %d files %v, want %d", len(gotPaths), gotPaths, len(wantPaths))
	}
	for i := range wantPaths {
		if gotPaths[i] != wantPaths[i] {
			t.Errorf("path[%d] = %q, want %q", i, gotPaths[i], wantPaths[i])
		}
	}

	manifest := treeContent(t, tree, "Cargo.toml")
	assertContains(t, manifest, `name = "my-program"`)
	assertContains(t, manifest, `name = "my_program"`)
	assertContains(t, manifest, `typhoon = "0.1.0-alpha.16"`)
	assertContains(t, manifest, `license = "Apache-2.0"`)
	assertNotContains(t, manifest, "{{")

	libRS := treeContent(t, tree, "src/lib.rs")
	assertContains(t, libRS, `program_id!("11111111111111111111111111111111")`)

	buildRS := treeContent(t, tree, "build.rs")
	assertContains(t, buildRS, `idl_dir.join("my_program.json")`)
}

func TestRenderPathDependency(t *testing.T) {
	bundle, err := catalog.Lookup(catalog.HelloWorld)
	if err != nil {
		t.Fatal(err)
	}

	vars := counterVars()
	vars["dependency_spec"] = `{ path = "../../crates/lib" }`

	tree, err := Render(bundle, vars)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	manifest := treeContent(t, tree, "Cargo.toml")
	assertContains(t, manifest, `typhoon = { path = "../../crates/lib" }`)
}

func TestRenderDeterministic(t *testing.T) {
	bundle, err := catalog.Lookup(catalog.Counter)
	if err != nil {
		t.Fatal(err)
	}

	a, err := Render(bundle, counterVars())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Render(bundle, counterVars())
	if err != nil {
		t.Fatal(err)
	}

	if a.Len() != b.Len() {
		t.Fatalf("tree sizes differ: %d vs %d", a.Len(), b.Len())
	}
	for i, ea := range a.Entries() {
		eb := b.Entries()[i]
		if ea.Path != eb.Path {
			t.Errorf("entry %d path differs: %q vs %q", i, ea.Path, eb.Path)
		}
		if !bytes.Equal(ea.Content, eb.Content) {
			t.Errorf("entry %d content differs for %s", i, ea.Path)
		}
	}
}

func TestRenderMissingKey(t *testing.T) {
	bundle, err := catalog.Lookup(catalog.Counter)
	if err != nil {
		t.Fatal(err)
	}

	vars := counterVars()
	delete(vars, "program_id")

	_, err = Render(bundle, vars)
	if err == nil {
		t.Fatal("Render() succeeded with missing program_id")
	}
	var unresolved *UnresolvedPlaceholderError
	if !errors.As(err, &unresolved) {
		t.Fatalf("error is %T, want *UnresolvedPlaceholderError", err)
	}
	if unresolved.Key != "program_id" {
		t.Errorf("error names key %q, want %q", unresolved.Key, "program_id")
	}
}

func TestRenderNeverEmitsEmptySubstitution(t *testing.T) {
	bundle, err := catalog.Lookup(catalog.Counter)
	if err != nil {
		t.Fatal(err)
	}
	tree, err := Render(bundle, counterVars())
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range tree.Entries() {
		if strings.Contains(string(e.Content), "{{") {
			t.Errorf("%s still contains template syntax", e.Path)
		}
	}
}

func TestFileTreeDuplicate(t *testing.T) {
	tree := NewFileTree()
	if err := tree.Add("a.txt", []byte("one")); err != nil {
		t.Fatal(err)
	}
	if err := tree.Add("a.txt", []byte("two")); err == nil {
		t.Fatal("duplicate Add succeeded")
	}
}

func treeContent(t *testing.T, tree *FileTree, path string) string {
	t.Helper()
	content, ok := tree.Get(path)
	if !ok {
		t.Fatalf("tree has no entry %s (paths: %v)", path, tree.Paths())
	}
	return string(content)
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q\n--- content ---\n%s", substr, content)
	}
}

func assertNotContains(t *testing.T, content, substr string) {
	t.Helper()
	if strings.Contains(content, substr) {
		t.Errorf("content should not contain %q", substr)
	}
}
