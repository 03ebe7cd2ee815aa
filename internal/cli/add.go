package cli

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/typhoonlabs/typhoon/internal/config"
	"github.com/typhoonlabs/typhoon/internal/scaffold"
	"github.com/typhoonlabs/typhoon/internal/workspace"
)

var addProgramTemplate string

func init() {
	addProgramCmd.Flags().StringVarP(&addProgramTemplate, "template", "t", "", "Template to scaffold from (counter, hello-world)")
	addCmd.AddCommand(addProgramCmd)
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add components to an existing workspace",
}

var addProgramCmd = &cobra.Command{
	Use:   "program <name>",
	Short: "Add a program to the current workspace",
	Long: `Scaffold an additional program under programs/ and register it as a
workspace member. Must be run from the workspace root.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		template := addProgramTemplate
		if template == "" {
			template = config.DefaultTemplateName()
		}

		res, err := scaffold.AddProgram(afero.NewOsFs(), cwd, args[0], template, config.License())
		if err != nil {
			return err
		}

		fmt.Printf("Added program %s\n", res.Program.Dir)
		fmt.Printf("  %s\n", workspace.MemberPath(res.Program.Dir))
		return nil
	},
}
