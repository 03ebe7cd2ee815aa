package cli

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/typhoonlabs/typhoon/internal/config"
	"github.com/typhoonlabs/typhoon/internal/scaffold"
)

var (
	initTemplate  string
	initWorkspace bool
)

func init() {
	initCmd.Flags().StringVarP(&initTemplate, "template", "t", "", "Template to scaffold from (counter, hello-world)")
	initCmd.Flags().BoolVarP(&initWorkspace, "workspace", "w", false, "Create a multi-program workspace")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Create a new Typhoon project",
	Long: `Create a new Typhoon project in a directory named after the project.

Without flags, scaffolds a standalone program from the default template.
With --workspace, creates a workspace whose first program is named
'<name>-program'; add more with 'typhoon add program'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		template := initTemplate
		if template == "" {
			template = config.DefaultTemplateName()
		}

		res, err := scaffold.Init(afero.NewOsFs(), cwd, args[0], template, initWorkspace, config.License())
		if err != nil {
			return err
		}

		fmt.Printf("Created project in %s\n", res.Root)
		for _, path := range res.Paths {
			fmt.Printf("  %s\n", path)
		}
		if initWorkspace {
			fmt.Printf("\nWorkspace ready. Add programs with 'typhoon add program <name>'.\n")
		}
		fmt.Printf("Build it with 'cd %s && typhoon build'.\n", args[0])
		return nil
	},
}
