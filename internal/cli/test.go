package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/typhoonlabs/typhoon/internal/project"
	"github.com/typhoonlabs/typhoon/internal/toolchain"
)

func init() {
	rootCmd.AddCommand(testCmd)
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run the program's integration tests",
	Long: `Run cargo test-sbf in the current directory. The program must have been
built first so the compiled binary is available to the test validator.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
		fsys := afero.NewOsFs()

		if !toolchain.IsRustProject(fsys, cwd) {
			return fmt.Errorf("no Cargo.toml in %s; run from a program directory", cwd)
		}
		if !toolchain.HasTyphoonDependency(fsys, cwd) {
			return fmt.Errorf("crate in %s does not depend on typhoon; nothing to test", cwd)
		}
		if err := toolchain.CheckInstalled(cmd.Context()); err != nil {
			return err
		}

		crate, err := toolchain.PackageName(fsys, cwd)
		if err != nil {
			return err
		}
		name, err := project.Derive(crate)
		if err != nil {
			return err
		}

		binary := filepath.Join(cwd, "target", "deploy", name.BinaryFile())
		if ok, _ := afero.Exists(fsys, binary); !ok {
			return fmt.Errorf("%s not found; run 'typhoon build' first", name.BinaryFile())
		}

		return toolchain.Test(cmd.Context(), cwd)
	},
}
