package cli

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/typhoonlabs/typhoon/internal/keypair"
	"github.com/typhoonlabs/typhoon/internal/project"
	"github.com/typhoonlabs/typhoon/internal/toolchain"
)

func init() {
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile the program in the current directory",
	Long: `Compile the program with cargo build-sbf. Generates the deploy keypair
under target/deploy on the first build; the resulting program ID stays
stable across rebuilds.`,
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
			return fmt.Errorf("crate in %s does not depend on typhoon; nothing to build", cwd)
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

		programID, err := keypair.Ensure(fsys, cwd, name.BinaryStem)
		if err != nil {
			return err
		}
		fmt.Printf("Program ID: %s\n", programID)

		if err := toolchain.Build(cmd.Context(), cwd); err != nil {
			return err
		}
		fmt.Printf("Built %s\n", name.BinaryFile())
		return nil
	},
}
