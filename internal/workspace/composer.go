// Package workspace builds and amends the workspace Cargo.toml that
// aggregates member programs. The manifest is the one piece of state the
// CLI round-trips across invocations: read, append a member, write back.
//
// The composer never searches for the workspace root; callers confirm they
// are at one before asking it to amend anything.
package workspace

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/typhoonlabs/typhoon/internal/project"
)

// membersDir is the directory member programs live under, relative to the
// workspace root.
const membersDir = "programs"

// Manifest models the workspace Cargo.toml. The typed model serves
// creation and reads; amendment goes through AddMember on the raw
// document so fields outside the model survive the round-trip.
type Manifest struct {
	// Name is the workspace display name. Cargo workspace manifests carry
	// no name field; it lives in typhoon.toml and is only populated by
	// Create for the caller's benefit.
	Name string `toml:"-"`

	Workspace Workspace `toml:"workspace"`
}

// Workspace is the [workspace] table.
type Workspace struct {
	Resolver string          `toml:"resolver"`
	Members  []string        `toml:"members"`
	Package  PackageDefaults `toml:"package"`
}

// PackageDefaults is the [workspace.package] table member crates inherit.
type PackageDefaults struct {
	Version string `toml:"version"`
	Edition string `toml:"edition"`
	License string `toml:"license"`
}

// DuplicateMemberError reports an attempt to add a program that is already
// a workspace member.
type DuplicateMemberError struct {
	Member string
}

func (e *DuplicateMemberError) Error() string {
	return fmt.Sprintf("program %q is already a workspace member", e.Member)
}

// MemberPath returns the serialized member entry for a program directory,
// e.g. "programs/my-program".
func MemberPath(dir string) string {
	return membersDir + "/" + dir
}

// Create builds a new workspace manifest with exactly one member.
func Create(workspaceName string, first project.Name, license string) *Manifest {
	return &Manifest{
		Name: workspaceName,
		Workspace: Workspace{
			Resolver: "2",
			Members:  []string{MemberPath(first.Dir)},
			Package: PackageDefaults{
				Version: "0.1.0",
				Edition: "2021",
				License: license,
			},
		},
	}
}

// HasMember reports whether the program directory is already a member.
func (m *Manifest) HasMember(dir string) bool {
	target := MemberPath(dir)
	for _, member := range m.Workspace.Members {
		if member == target {
			return true
		}
	}
	return false
}

// MemberDirs returns the member program directory names in manifest order.
func (m *Manifest) MemberDirs() []string {
	dirs := make([]string, 0, len(m.Workspace.Members))
	for _, member := range m.Workspace.Members {
		dirs = append(dirs, strings.TrimPrefix(member, membersDir+"/"))
	}
	return dirs
}

// AddMember appends the program to the member list of raw manifest bytes
// and returns the re-encoded document. It works on a generic TOML document
// rather than the typed model: only workspace.members changes, and fields
// outside the modeled schema (dependency tables, profile overrides,
// package metadata) pass through untouched. The order of existing members
// is preserved, and the input bytes are never mutated. Fails with
// DuplicateMemberError if the program directory is already a member.
func AddMember(data []byte, p project.Name) ([]byte, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing workspace manifest: %w", err)
	}
	ws, ok := doc["workspace"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("workspace manifest has no [workspace] table")
	}

	target := MemberPath(p.Dir)
	members, _ := ws["members"].([]any)
	for _, member := range members {
		if s, ok := member.(string); ok && s == target {
			return nil, &DuplicateMemberError{Member: p.Dir}
		}
	}
	ws["members"] = append(append([]any{}, members...), any(target))

	out, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding workspace manifest: %w", err)
	}
	return out, nil
}

// Decode parses workspace Cargo.toml bytes.
func Decode(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing workspace manifest: %w", err)
	}
	return &m, nil
}

// Encode serializes the manifest to TOML. Encoding is deterministic: the
// same manifest always yields identical bytes.
func (m *Manifest) Encode() ([]byte, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding workspace manifest: %w", err)
	}
	return data, nil
}

// IsWorkspace reports whether Cargo.toml bytes declare a [workspace] table.
func IsWorkspace(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}
	_, ok := raw["workspace"]
	return ok
}
