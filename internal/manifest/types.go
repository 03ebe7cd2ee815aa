package manifest

// Config models typhoon.toml, the workspace-level configuration written at
// workspace creation and amended as programs are added.
type Config struct {
	Workspace WorkspaceConfig `toml:"workspace"`
	Build     BuildConfig     `toml:"build"`
	Test      TestConfig      `toml:"test"`
	Bindings  BindingsConfig  `toml:"bindings"`
}

// WorkspaceConfig names the workspace and lists its programs.
type WorkspaceConfig struct {
	Name     string   `toml:"name"`
	Programs []string `toml:"programs"`
}

// BuildConfig controls IDL generation during builds.
type BuildConfig struct {
	IDL    bool   `toml:"idl"`
	IDLOut string `toml:"idl-out"`
}

// TestConfig sets the command the test runner invokes.
type TestConfig struct {
	Command string `toml:"command"`
}

// BindingsConfig controls client binding generation.
type BindingsConfig struct {
	Languages []string `toml:"languages"`
	Output    string   `toml:"output"`
}

// New returns a config with the standard defaults for a fresh workspace.
func New(workspaceName string, programs ...string) *Config {
	if programs == nil {
		programs = []string{}
	}
	return &Config{
		Workspace: WorkspaceConfig{
			Name:     workspaceName,
			Programs: programs,
		},
		Build: BuildConfig{
			IDL:    true,
			IDLOut: "target/idl",
		},
		Test: TestConfig{
			Command: "cargo test-sbf",
		},
		Bindings: BindingsConfig{
			Languages: []string{"typescript"},
			Output:    "sdk",
		},
	}
}

// AddProgram appends a program name to the workspace program list.
func (c *Config) AddProgram(name string) {
	c.Workspace.Programs = append(c.Workspace.Programs, name)
}
