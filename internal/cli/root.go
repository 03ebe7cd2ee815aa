package cli

import (
	"github.com/spf13/cobra"

	"github.com/typhoonlabs/typhoon/internal/branding"
	"github.com/typhoonlabs/typhoon/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds, builds, and tests on-chain Solana programs.

Start a new project with 'typhoon init', add programs to a workspace with
'typhoon add program', then compile with 'typhoon build'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
