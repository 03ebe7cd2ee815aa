package render

import "fmt"

// FileEntry is one output file: a relative path and its final content.
type FileEntry struct {
	Path    string
	Content []byte
}

// FileTree is the complete, ordered in-memory representation of all files
// to be written for one scaffold operation. Insertion order is preserved;
// duplicate paths are rejected.
type FileTree struct {
	entries []FileEntry
	index   map[string]int
}

// NewFileTree returns an empty tree.
func NewFileTree() *FileTree {
	return &FileTree{index: make(map[string]int)}
}

// Add appends an entry. Adding the same path twice is a defect in the
// caller and fails.
func (t *FileTree) Add(path string, content []byte) error {
	if _, ok := t.index[path]; ok {
		return fmt.Errorf("duplicate path in file tree: %s", path)
	}
	t.index[path] = len(t.entries)
	t.entries = append(t.entries, FileEntry{Path: path, Content: content})
	return nil
}

// Entries returns the entries in insertion order. The returned slice must
// not be mutated.
func (t *FileTree) Entries() []FileEntry {
	return t.entries
}

// Get returns the content for path and whether it is present.
func (t *FileTree) Get(path string) ([]byte, bool) {
	i, ok := t.index[path]
	if !ok {
		return nil, false
	}
	return t.entries[i].Content, true
}

// Paths returns the paths in insertion order.
func (t *FileTree) Paths() []string {
	paths := make([]string, len(t.entries))
	for i, e := range t.entries {
		paths[i] = e.Path
	}
	return paths
}

// Len returns the number of entries.
func (t *FileTree) Len() int {
	return len(t.entries)
}
