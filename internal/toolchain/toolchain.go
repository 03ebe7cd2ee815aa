// Package toolchain shells out to the Solana build tools. It owns locating
// the tools, gating on a minimum CLI version, and running build, test, and
// clean in a program directory.
package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// InstallURL is where users are pointed when the Solana toolchain is
// missing.
const InstallURL = "https://release.anza.xyz/stable/install"

// MinimumSolanaVersion is the oldest Solana CLI release the generated
// projects build against.
const MinimumSolanaVersion = "1.18.0"

// SolanaNotInstalledError reports a missing or too-old Solana toolchain.
type SolanaNotInstalledError struct {
	Reason string
}

func (e *SolanaNotInstalledError) Error() string {
	return fmt.Sprintf("%s; install the Solana toolchain from %s", e.Reason, InstallURL)
}

// CheckInstalled verifies cargo-build-sbf is on PATH and the Solana CLI
// meets the minimum version. Called before any build or test.
func CheckInstalled(ctx context.Context) error {
	if _, err := exec.LookPath("cargo-build-sbf"); err != nil {
		return &SolanaNotInstalledError{Reason: "cargo-build-sbf not found in PATH"}
	}

	version, err := SolanaVersion(ctx)
	if err != nil {
		// A present build tool with an unreadable CLI version is still
		// usable; the version gate only fires on a definitive answer.
		return nil
	}
	minimum := semver.MustParse(MinimumSolanaVersion)
	if version.LessThan(minimum) {
		return &SolanaNotInstalledError{
			Reason: fmt.Sprintf("solana CLI %s is older than the required %s", version, MinimumSolanaVersion),
		}
	}
	return nil
}

// SolanaVersion runs `solana --version` and parses the reported version.
func SolanaVersion(ctx context.Context) (*semver.Version, error) {
	out, err := exec.CommandContext(ctx, "solana", "--version").Output()
	if err != nil {
		return nil, fmt.Errorf("running solana --version: %w", err)
	}
	return parseSolanaVersion(string(out))
}

// parseSolanaVersion extracts the version from output such as
// "solana-cli 2.1.4 (src:unknown; feat:...)".
func parseSolanaVersion(output string) (*semver.Version, error) {
	fields := strings.Fields(output)
	if len(fields) < 2 {
		return nil, fmt.Errorf("unexpected solana --version output %q", strings.TrimSpace(output))
	}
	version, err := semver.NewVersion(fields[1])
	if err != nil {
		return nil, fmt.Errorf("parsing solana version %q: %w", fields[1], err)
	}
	return version, nil
}

// Build runs cargo build-sbf in dir, streaming output to the caller's
// terminal.
func Build(ctx context.Context, dir string) error {
	return run(ctx, dir, "cargo", "build-sbf")
}

// Test runs cargo test-sbf in dir.
func Test(ctx context.Context, dir string) error {
	return run(ctx, dir, "cargo", "test-sbf")
}

// Clean runs cargo clean in dir.
func Clean(ctx context.Context, dir string) error {
	return run(ctx, dir, "cargo", "clean")
}

func run(ctx context.Context, dir string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}
