package toolchain

import (
	"fmt"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// crateManifest is the slice of a program Cargo.toml the inspectors read.
type crateManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Dependencies map[string]any `toml:"dependencies"`
}

// IsRustProject reports whether dir holds a Cargo.toml.
func IsRustProject(fsys afero.Fs, dir string) bool {
	ok, err := afero.Exists(fsys, filepath.Join(dir, "Cargo.toml"))
	return err == nil && ok
}

// PackageName returns the crate name declared in dir's Cargo.toml.
func PackageName(fsys afero.Fs, dir string) (string, error) {
	m, err := readCrateManifest(fsys, dir)
	if err != nil {
		return "", err
	}
	if m.Package.Name == "" {
		return "", fmt.Errorf("no package name in %s", filepath.Join(dir, "Cargo.toml"))
	}
	return m.Package.Name, nil
}

// HasTyphoonDependency reports whether the crate in dir depends on the
// typhoon library.
func HasTyphoonDependency(fsys afero.Fs, dir string) bool {
	m, err := readCrateManifest(fsys, dir)
	if err != nil {
		return false
	}
	_, ok := m.Dependencies["typhoon"]
	return ok
}

func readCrateManifest(fsys afero.Fs, dir string) (*crateManifest, error) {
	path := filepath.Join(dir, "Cargo.toml")
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var m crateManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &m, nil
}
