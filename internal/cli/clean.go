package cli

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/typhoonlabs/typhoon/internal/toolchain"
)

func init() {
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove build artifacts",
	Long: `Run cargo clean in the current directory. The deploy keypair under
target/deploy is removed with the rest of the target directory, so the next
build generates a new program ID.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		if !toolchain.IsRustProject(afero.NewOsFs(), cwd) {
			return fmt.Errorf("no Cargo.toml in %s; run from a program directory", cwd)
		}

		return toolchain.Clean(cmd.Context(), cwd)
	},
}
