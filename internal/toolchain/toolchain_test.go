package toolchain

import (
	"testing"

	"github.com/spf13/afero"
)

func TestParseSolanaVersion(t *testing.T) {
	tests := []struct {
		output  string
		want    string
		wantErr bool
	}{
		{"solana-cli 2.1.4 (src:3863dec8; feat:1416569292, client:Agave)\n", "2.1.4", false},
		{"solana-cli 1.18.26\n", "1.18.26", false},
		{"solana-cli", "", true},
		{"", "", true},
		{"solana-cli not-a-version\n", "", true},
	}
	for _, tt := range tests {
		got, err := parseSolanaVersion(tt.output)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseSolanaVersion(%q) succeeded with %v", tt.output, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseSolanaVersion(%q) error: %v", tt.output, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("parseSolanaVersion(%q) = %s, want %s", tt.output, got, tt.want)
		}
	}
}

func TestIsRustProject(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/proj/Cargo.toml", []byte("[package]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !IsRustProject(fsys, "/proj") {
		t.Error("directory with Cargo.toml not detected as a Rust project")
	}
	if IsRustProject(fsys, "/empty") {
		t.Error("empty directory detected as a Rust project")
	}
}

func TestPackageName(t *testing.T) {
	fsys := afero.NewMemMapFs()
	crate := `[package]
name = "my-program"
version = "0.1.0"
`
	if err := afero.WriteFile(fsys, "/proj/Cargo.toml", []byte(crate), 0o644); err != nil {
		t.Fatal(err)
	}

	name, err := PackageName(fsys, "/proj")
	if err != nil {
		t.Fatalf("PackageName() error: %v", err)
	}
	if name != "my-program" {
		t.Errorf("PackageName() = %q", name)
	}

	if _, err := PackageName(fsys, "/missing"); err == nil {
		t.Error("PackageName() succeeded without a manifest")
	}
}

func TestHasTyphoonDependency(t *testing.T) {
	fsys := afero.NewMemMapFs()

	withDep := `[package]
name = "a"

[dependencies]
typhoon = "0.1.0-alpha.16"
`
	withPathDep := `[package]
name = "b"

[dependencies]
typhoon = { path = "../../crates/lib" }
`
	without := `[package]
name = "c"

[dependencies]
serde = "1"
`
	files := map[string]string{
		"/a/Cargo.toml": withDep,
		"/b/Cargo.toml": withPathDep,
		"/c/Cargo.toml": without,
	}
	for path, content := range files {
		if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if !HasTyphoonDependency(fsys, "/a") {
		t.Error("version dependency not detected")
	}
	if !HasTyphoonDependency(fsys, "/b") {
		t.Error("path dependency not detected")
	}
	if HasTyphoonDependency(fsys, "/c") {
		t.Error("dependency reported for crate without it")
	}
}
