// Package render substitutes template variables into a bundle's files and
// produces the file tree to be written. Rendering is pure: no filesystem
// access, and identical inputs yield byte-identical trees.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/typhoonlabs/typhoon/internal/catalog"
)

// Vars maps placeholder names to their values for one render. Built fresh
// per invocation.
type Vars map[string]string

// placeholderPattern matches the {{key}} syntax used by bundle templates.
var placeholderPattern = regexp.MustCompile(`\{\{([a-z][a-z0-9_]*)\}\}`)

// UnresolvedPlaceholderError reports a placeholder with no entry in the
// render vars. This is a defect in the bundle or the caller-built context,
// never silently passed through.
type UnresolvedPlaceholderError struct {
	Key  string
	File string
}

func (e *UnresolvedPlaceholderError) Error() string {
	return fmt.Sprintf("unresolved placeholder {{%s}} in %s", e.Key, e.File)
}

// Render substitutes every placeholder in every file of the bundle. Output
// order equals the bundle's declaration order. A placeholder missing from
// vars fails with UnresolvedPlaceholderError naming the key; extra vars are
// ignored.
func Render(bundle catalog.Bundle, vars Vars) (*FileTree, error) {
	tree := NewFileTree()
	for _, spec := range bundle.Files {
		content, err := renderContent(spec, vars)
		if err != nil {
			return nil, err
		}
		if err := tree.Add(spec.RelPath, content); err != nil {
			return nil, fmt.Errorf("bundle %s: %w", bundle.ID, err)
		}
	}
	return tree, nil
}

func renderContent(spec catalog.FileSpec, vars Vars) ([]byte, error) {
	// Check every placeholder before substituting anything, so the error
	// names the first missing key in file order.
	for _, m := range placeholderPattern.FindAllStringSubmatch(spec.Content, -1) {
		if _, ok := vars[m[1]]; !ok {
			return nil, &UnresolvedPlaceholderError{Key: m[1], File: spec.RelPath}
		}
	}

	out := placeholderPattern.ReplaceAllStringFunc(spec.Content, func(m string) string {
		key := strings.TrimSuffix(strings.TrimPrefix(m, "{{"), "}}")
		return vars[key]
	})
	return []byte(out), nil
}
