// Package project derives the identifiers a scaffolded program needs from one
// user-supplied name: the directory it lives in, the crate name in its
// manifest, and the underscore-normalized stem used for compiled artifacts.
package project

import (
	"fmt"
	"strings"
)

// maxNameLen matches the crates.io package name limit.
const maxNameLen = 214

// Name is an immutable set of identifiers derived from one project name.
type Name struct {
	// Dir is the directory name, the raw name verbatim.
	Dir string
	// Crate is the crate name used in manifests, hyphens kept.
	Crate string
	// BinaryStem is the crate name with hyphens replaced by underscores.
	// The build toolchain names compiled artifacts after this stem.
	BinaryStem string
}

// InvalidNameError reports a project name that cannot be used.
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid project name %q: %s", e.Name, e.Reason)
}

// rustKeywords cannot be crate names; the generated manifest would not build.
var rustKeywords = map[string]bool{
	"abstract": true, "as": true, "async": true, "await": true, "become": true,
	"box": true, "break": true, "const": true, "continue": true, "crate": true,
	"do": true, "dyn": true, "else": true, "enum": true, "extern": true,
	"false": true, "final": true, "fn": true, "for": true, "if": true,
	"impl": true, "in": true, "let": true, "loop": true, "macro": true,
	"match": true, "mod": true, "move": true, "mut": true, "override": true,
	"priv": true, "pub": true, "ref": true, "return": true, "self": true,
	"static": true, "struct": true, "super": true, "trait": true, "true": true,
	"try": true, "type": true, "typeof": true, "unsafe": true, "unsized": true,
	"use": true, "virtual": true, "where": true, "while": true, "yield": true,
}

// reservedNames collide with directories or tooling the scaffold itself creates.
var reservedNames = map[string]bool{
	"src": true, "target": true, "tests": true, "programs": true,
	"cargo": true, "solana": true, "typhoon": true,
}

// Derive validates raw and returns the identifiers derived from it.
// Derivation is pure and idempotent: the same raw name always yields the
// same Name.
func Derive(raw string) (Name, error) {
	name := strings.TrimSpace(raw)

	if name == "" {
		return Name{}, &InvalidNameError{Name: raw, Reason: "name cannot be empty"}
	}
	if len(name) > maxNameLen {
		return Name{}, &InvalidNameError{Name: raw, Reason: fmt.Sprintf("name is too long (max %d characters)", maxNameLen)}
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return Name{}, &InvalidNameError{Name: raw, Reason: "name cannot contain path separators or relative paths"}
	}
	if name[0] >= '0' && name[0] <= '9' {
		return Name{}, &InvalidNameError{Name: raw, Reason: "name cannot start with a digit"}
	}
	for _, r := range name {
		if !isNameRune(r) {
			return Name{}, &InvalidNameError{Name: raw, Reason: "name can only contain alphanumeric characters, hyphens, and underscores"}
		}
	}
	if rustKeywords[name] {
		return Name{}, &InvalidNameError{Name: raw, Reason: "name cannot be a Rust keyword"}
	}
	if reservedNames[strings.ToLower(name)] {
		return Name{}, &InvalidNameError{Name: raw, Reason: "name is reserved"}
	}

	return Name{
		Dir:        name,
		Crate:      name,
		BinaryStem: strings.ReplaceAll(name, "-", "_"),
	}, nil
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	}
	return false
}

// KeypairFile returns the keypair filename the build step writes under
// target/deploy, e.g. "my_program-keypair.json".
func (n Name) KeypairFile() string {
	return n.BinaryStem + "-keypair.json"
}

// BinaryFile returns the compiled program filename, e.g. "my_program.so".
// It always shares a stem with KeypairFile so artifacts stay linked.
func (n Name) BinaryFile() string {
	return n.BinaryStem + ".so"
}
