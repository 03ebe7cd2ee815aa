// Package keypair manages the program deploy keypair at
// target/deploy/<stem>-keypair.json. The file holds the 64-byte ed25519
// secret key as a JSON integer array, the format the deploy tooling reads.
package keypair

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mr-tron/base58"
	"github.com/spf13/afero"
)

// deployDir is where the build toolchain places deploy artifacts, relative
// to the program root.
const deployDir = "target/deploy"

// File returns the keypair path for a binary stem, relative to the program
// root.
func File(stem string) string {
	return filepath.Join(filepath.FromSlash(deployDir), stem+"-keypair.json")
}

// Ensure returns the base58 program ID for the program rooted at root,
// generating and persisting a fresh keypair if none exists. An existing
// keypair is never overwritten: the program ID must stay stable across
// builds.
func Ensure(fsys afero.Fs, root, stem string) (string, error) {
	path := filepath.Join(root, File(stem))

	data, err := afero.ReadFile(fsys, path)
	if err == nil {
		return programID(data, path)
	}

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", fmt.Errorf("generating keypair: %w", err)
	}

	encoded, err := encode(priv)
	if err != nil {
		return "", err
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := afero.WriteFile(fsys, path, encoded, 0o600); err != nil {
		return "", fmt.Errorf("writing keypair %s: %w", path, err)
	}

	return base58.Encode(pub), nil
}

// encode serializes the 64-byte secret key as a JSON integer array.
func encode(priv ed25519.PrivateKey) ([]byte, error) {
	ints := make([]int, len(priv))
	for i, b := range priv {
		ints[i] = int(b)
	}
	data, err := json.Marshal(ints)
	if err != nil {
		return nil, fmt.Errorf("encoding keypair: %w", err)
	}
	return data, nil
}

// programID extracts the base58 public key from keypair file bytes. The
// public key is the trailing 32 bytes of the ed25519 secret key.
func programID(data []byte, path string) (string, error) {
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return "", fmt.Errorf("parsing keypair %s: %w", path, err)
	}
	if len(ints) != ed25519.PrivateKeySize {
		return "", fmt.Errorf("keypair %s has %d bytes, want %d", path, len(ints), ed25519.PrivateKeySize)
	}

	priv := make(ed25519.PrivateKey, ed25519.PrivateKeySize)
	for i, v := range ints {
		if v < 0 || v > 255 {
			return "", fmt.Errorf("keypair %s has out-of-range byte at index %d", path, i)
		}
		priv[i] = byte(v)
	}
	pub := priv.Public().(ed25519.PublicKey)
	return base58.Encode(pub), nil
}
