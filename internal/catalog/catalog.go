// Package catalog holds the built-in template bundles. The set is closed:
// adding a template means adding an ID constant and a bundle definition
// here, not registering anything at runtime. Bundles load once from the
// embedded filesystem and are read-only afterwards, so they are safe to
// share across invocations.
package catalog

import (
	"embed"
	"fmt"
	"sync"
)

//go:embed templates
var templateFS embed.FS

// ID identifies a built-in template bundle.
type ID int

const (
	// Counter is the full-featured template with state management and an
	// IDL build script.
	Counter ID = iota
	// HelloWorld is the minimal template with a single instruction and no
	// build script.
	HelloWorld
)

// String returns the user-facing template name.
func (id ID) String() string {
	switch id {
	case Counter:
		return "counter"
	case HelloWorld:
		return "hello-world"
	default:
		return fmt.Sprintf("ID(%d)", int(id))
	}
}

// UnknownTemplateError reports a template name or ID outside the catalog.
type UnknownTemplateError struct {
	Name string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("template %q not found (available: %s)", e.Name, availableNames())
}

func availableNames() string {
	return Counter.String() + ", " + HelloWorld.String()
}

// ParseID maps a user-supplied template name to its ID.
func ParseID(name string) (ID, error) {
	switch name {
	case "counter":
		return Counter, nil
	case "hello-world":
		return HelloWorld, nil
	default:
		return 0, &UnknownTemplateError{Name: name}
	}
}

// FileSpec is one output file of a bundle: where it goes relative to the
// program root and the placeholder-bearing content that produces it.
type FileSpec struct {
	RelPath string
	Content string
}

// Bundle is an ordered set of file specs for one template. Order is the
// declaration order here and determines render output order.
type Bundle struct {
	ID    ID
	Files []FileSpec
	// NeedsBuildScript marks bundles that ship a build.rs for IDL
	// generation.
	NeedsBuildScript bool
}

// bundleLayout maps each output path to its embedded template file.
type bundleLayout struct {
	relPath string
	source  string
}

var counterLayout = []bundleLayout{
	{"Cargo.toml", "templates/counter/cargo.toml.tmpl"},
	{"src/lib.rs", "templates/counter/lib.rs.tmpl"},
	{"build.rs", "templates/counter/build.rs.tmpl"},
	{"tests/integration.rs", "templates/counter/integration.rs.tmpl"},
	{".gitignore", "templates/counter/gitignore.tmpl"},
}

var helloWorldLayout = []bundleLayout{
	{"Cargo.toml", "templates/hello-world/cargo.toml.tmpl"},
	{"src/lib.rs", "templates/hello-world/lib.rs.tmpl"},
	{"tests/integration.rs", "templates/hello-world/integration.rs.tmpl"},
	{".gitignore", "templates/hello-world/gitignore.tmpl"},
}

var (
	loadOnce sync.Once
	loadErr  error
	bundles  map[ID]Bundle
)

func loadBundles() {
	loadOnce.Do(func() {
		bundles = make(map[ID]Bundle, 2)

		counter, err := loadBundle(Counter, counterLayout, true)
		if err != nil {
			loadErr = err
			return
		}
		bundles[Counter] = counter

		hello, err := loadBundle(HelloWorld, helloWorldLayout, false)
		if err != nil {
			loadErr = err
			return
		}
		bundles[HelloWorld] = hello
	})
}

func loadBundle(id ID, layout []bundleLayout, needsBuildScript bool) (Bundle, error) {
	files := make([]FileSpec, 0, len(layout))
	for _, l := range layout {
		content, err := templateFS.ReadFile(l.source)
		if err != nil {
			return Bundle{}, fmt.Errorf("reading embedded template %s: %w", l.source, err)
		}
		files = append(files, FileSpec{RelPath: l.relPath, Content: string(content)})
	}
	return Bundle{ID: id, Files: files, NeedsBuildScript: needsBuildScript}, nil
}

// Lookup returns the bundle for id. IDs outside the closed set fail with
// UnknownTemplateError.
func Lookup(id ID) (Bundle, error) {
	loadBundles()
	if loadErr != nil {
		return Bundle{}, loadErr
	}
	b, ok := bundles[id]
	if !ok {
		return Bundle{}, &UnknownTemplateError{Name: id.String()}
	}
	return b, nil
}
