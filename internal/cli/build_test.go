package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCrate(t *testing.T, manifest string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
}

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	return rootCmd.Execute()
}

func TestBuildRejectsCrateWithoutTyphoonDependency(t *testing.T) {
	dir := writeCrate(t, `[package]
name = "plain"

[dependencies]
serde = "1"
`)
	chdir(t, dir)

	err := runCommand(t, "build")
	if err == nil {
		t.Fatal("build succeeded in a crate without the typhoon dependency")
	}
	if !strings.Contains(err.Error(), "typhoon") {
		t.Errorf("error does not name the missing dependency: %v", err)
	}
}

func TestBuildRejectsNonCrateDirectory(t *testing.T) {
	chdir(t, t.TempDir())

	err := runCommand(t, "build")
	if err == nil {
		t.Fatal("build succeeded outside a crate")
	}
	if !strings.Contains(err.Error(), "Cargo.toml") {
		t.Errorf("error does not mention the missing manifest: %v", err)
	}
}

func TestTestRejectsCrateWithoutTyphoonDependency(t *testing.T) {
	dir := writeCrate(t, `[package]
name = "plain"
`)
	chdir(t, dir)

	err := runCommand(t, "test")
	if err == nil {
		t.Fatal("test succeeded in a crate without the typhoon dependency")
	}
	if !strings.Contains(err.Error(), "typhoon") {
		t.Errorf("error does not name the missing dependency: %v", err)
	}
}
