// Package resolve decides how a generated manifest references the typhoon
// core library: by relative path when scaffolding inside the framework
// repository, by pinned published version everywhere else.
package resolve

import (
	"path"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// PublishedVersion is the pinned version written into manifests scaffolded
// outside the framework repository. It is a compile-time constant, never
// fetched.
const PublishedVersion = "0.1.0-alpha.16"

type kind int

const (
	kindPublished kind = iota
	kindPath
)

// Spec is the resolved manifest reference to the core library. Exactly one
// variant is active; it is chosen once per invocation and applied uniformly
// to every manifest needing the reference.
type Spec struct {
	kind    kind
	relPath string
	version string
}

// PathDependency returns a Spec referencing the library crate by relative
// path, e.g. "../../crates/lib".
func PathDependency(relPath string) Spec {
	return Spec{kind: kindPath, relPath: relPath}
}

// PublishedDependency returns a Spec pinning the published version string.
func PublishedDependency(version string) Spec {
	return Spec{kind: kindPublished, version: version}
}

// IsPath reports whether the path variant is active.
func (s Spec) IsPath() bool { return s.kind == kindPath }

// Path returns the relative path for the path variant, empty otherwise.
func (s Spec) Path() string { return s.relPath }

// Version returns the version string for the published variant, empty otherwise.
func (s Spec) Version() string { return s.version }

// ManifestValue renders the spec as the TOML value for the typhoon dependency.
func (s Spec) ManifestValue() string {
	if s.kind == kindPath {
		return `{ path = "` + s.relPath + `" }`
	}
	return `"` + s.version + `"`
}

// IDLGeneratorValue renders the spec for the typhoon-idl-generator build
// dependency. The generator crate sits beside the library crate, so the
// path variant swaps the last path element.
func (s Spec) IDLGeneratorValue() string {
	if s.kind == kindPath {
		return `{ path = "` + path.Join(path.Dir(s.relPath), "idl-generator") + `" }`
	}
	return `"` + s.version + `"`
}

// Resolve inspects the filesystem context and picks the dependency spec for
// a program that will live at programDir. It walks upward from startDir
// looking for the framework repository marker: a crates/lib/Cargo.toml next
// to a workspace Cargo.toml whose members include "crates/*" or "cli".
//
// When the marker is found, the result is a PathDependency with the offset
// from programDir to the library crate. When the walk reaches the
// filesystem root without finding it, the context is treated as "outside
// the repo" and the pinned published version is used; that fallback is
// never an error.
func Resolve(fsys afero.Fs, startDir, programDir string) Spec {
	dir := filepath.Clean(startDir)
	for {
		if isRepoRoot(fsys, dir) {
			lib := filepath.Join(dir, "crates", "lib")
			rel, err := filepath.Rel(filepath.Clean(programDir), lib)
			if err == nil {
				return PathDependency(filepath.ToSlash(rel))
			}
			// Unrelatable paths behave like "outside the repo".
			return PublishedDependency(PublishedVersion)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return PublishedDependency(PublishedVersion)
		}
		dir = parent
	}
}

// repoManifest is the slice of a workspace Cargo.toml the marker check reads.
type repoManifest struct {
	Workspace struct {
		Members []string `toml:"members"`
	} `toml:"workspace"`
}

func isRepoRoot(fsys afero.Fs, dir string) bool {
	libManifest := filepath.Join(dir, "crates", "lib", "Cargo.toml")
	if ok, err := afero.Exists(fsys, libManifest); err != nil || !ok {
		return false
	}

	data, err := afero.ReadFile(fsys, filepath.Join(dir, "Cargo.toml"))
	if err != nil {
		return false
	}

	var m repoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return false
	}
	for _, member := range m.Workspace.Members {
		if member == "crates/*" || member == "cli" {
			return true
		}
	}
	return false
}
