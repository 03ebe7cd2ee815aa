package resolve

import (
	"path/filepath"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/afero"
)

const repoWorkspaceToml = `[workspace]
members = ["crates/*", "cli"]
`

// newRepoFs builds an in-memory filesystem with the framework repository
// layout rooted at root.
func newRepoFs(t *testing.T, root string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, filepath.Join(root, "Cargo.toml"), repoWorkspaceToml)
	writeFile(t, fsys, filepath.Join(root, "crates", "lib", "Cargo.toml"), "[package]\nname = \"typhoon\"\n")
	return fsys
}

func writeFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestResolveInsideRepo(t *testing.T) {
	fsys := newRepoFs(t, "/repo")

	// Scaffolding /repo/examples/my-program: marker is two levels up.
	spec := Resolve(fsys, "/repo/examples", "/repo/examples/my-program")

	if !spec.IsPath() {
		t.Fatalf("spec = %+v, want path dependency", spec)
	}
	if spec.Path() != "../../crates/lib" {
		t.Errorf("Path = %q, want %q", spec.Path(), "../../crates/lib")
	}
	if spec.ManifestValue() != `{ path = "../../crates/lib" }` {
		t.Errorf("ManifestValue = %q", spec.ManifestValue())
	}
	if spec.IDLGeneratorValue() != `{ path = "../../crates/idl-generator" }` {
		t.Errorf("IDLGeneratorValue = %q", spec.IDLGeneratorValue())
	}
}

func TestResolveInsideRepoDeeper(t *testing.T) {
	fsys := newRepoFs(t, "/repo")

	// Workspace program three levels down from the repo root.
	spec := Resolve(fsys, "/repo/examples/ws", "/repo/examples/ws/programs/counter")

	if !spec.IsPath() {
		t.Fatalf("spec = %+v, want path dependency", spec)
	}
	if spec.Path() != "../../../../crates/lib" {
		t.Errorf("Path = %q, want %q", spec.Path(), "../../../../crates/lib")
	}
}

func TestResolveOutsideRepo(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/home/dev/projects/readme.txt", "hi")

	spec := Resolve(fsys, "/home/dev/projects", "/home/dev/projects/my-program")

	if spec.IsPath() {
		t.Fatalf("spec = %+v, want published dependency", spec)
	}
	if spec.Version() != PublishedVersion {
		t.Errorf("Version = %q, want %q", spec.Version(), PublishedVersion)
	}
	if spec.ManifestValue() != `"0.1.0-alpha.16"` {
		t.Errorf("ManifestValue = %q", spec.ManifestValue())
	}
}

func TestResolveMarkerRequiresWorkspaceMembers(t *testing.T) {
	// crates/lib exists but the root manifest is not the framework workspace.
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/other/Cargo.toml", "[workspace]\nmembers = [\"something-else\"]\n")
	writeFile(t, fsys, "/other/crates/lib/Cargo.toml", "[package]\nname = \"not-typhoon\"\n")

	spec := Resolve(fsys, "/other/examples", "/other/examples/my-program")
	if spec.IsPath() {
		t.Errorf("spec = %+v, want published dependency for non-framework workspace", spec)
	}
}

func TestResolveWalkStopsAtRoot(t *testing.T) {
	spec := Resolve(afero.NewMemMapFs(), "/a/b/c/d/e", "/a/b/c/d/e/p")
	if spec.IsPath() {
		t.Errorf("spec = %+v, want published dependency at filesystem root", spec)
	}
}

func TestPublishedVersionIsValidSemver(t *testing.T) {
	v, err := semver.NewVersion(PublishedVersion)
	if err != nil {
		t.Fatalf("PublishedVersion %q is not valid semver: %v", PublishedVersion, err)
	}
	if v.Prerelease() == "" {
		t.Errorf("expected a prerelease tag on %q", PublishedVersion)
	}
}
