// Package manifest parses and validates typhoon.toml, the workspace
// configuration file. Parsing uses the TOML decoder; validation checks the
// raw document against an embedded JSON Schema so that hand-edited files
// fail with field-level messages rather than decoder errors.
package manifest

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the configuration file name at the workspace root.
const FileName = "typhoon.toml"

// Decode parses typhoon.toml bytes into a Config.
func Decode(data []byte) (*Config, error) {
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	return &c, nil
}

// Encode serializes the config to TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", FileName, err)
	}
	return data, nil
}
