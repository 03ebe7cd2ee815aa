// Package emit persists a rendered file tree to disk. It is the only place
// scaffold output touches the filesystem: the core decides everything,
// then emit writes once.
package emit

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/typhoonlabs/typhoon/internal/render"
)

// DirectoryExistsError reports a scaffold target that already exists on
// disk, whether or not it is a program the workspace knows about.
type DirectoryExistsError struct {
	Path string
}

func (e *DirectoryExistsError) Error() string {
	return fmt.Sprintf("directory %q already exists", e.Path)
}

// EnsureAbsent fails with DirectoryExistsError if path exists.
func EnsureAbsent(fsys afero.Fs, path string) error {
	exists, err := afero.Exists(fsys, path)
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if exists {
		return &DirectoryExistsError{Path: path}
	}
	return nil
}

// Write persists every entry of the tree under root, in tree order,
// creating parent directories as needed. Callers pass a complete tree
// exactly once per invocation; partial trees are never written by the
// scaffolding core.
func Write(fsys afero.Fs, root string, tree *render.FileTree) error {
	for _, entry := range tree.Entries() {
		target := filepath.Join(root, filepath.FromSlash(entry.Path))

		if dir := filepath.Dir(target); dir != "" {
			if err := fsys.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", dir, err)
			}
		}
		if err := afero.WriteFile(fsys, target, entry.Content, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", target, err)
		}
	}
	return nil
}
