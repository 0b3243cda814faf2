package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/michaelhelvey/gh-env-sync/pkg/github"
)

var validateCmd = &cobra.Command{
	Use:   "validate [config-file.yaml]",
	Short: "Validate a configuration document",
	Long: `Validate a configuration document for syntax and structural errors
without contacting GitHub.

Checks performed:
• YAML syntax
• Top level is a mapping of environment names to variable mappings
• Variable names contain only alphanumeric characters and underscores
• Variable values are strings (numeric or boolean-looking values must be quoted)

Examples:
  gh-env-sync validate
  gh-env-sync validate envs.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	path := "github_environments.yaml"
	if len(args) == 1 {
		path = args[0]
	}

	doc, err := github.LoadDocumentFromFile(path)
	if err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}

	fmt.Printf("✓ Configuration is valid: %d environments, %d variables\n",
		len(doc), doc.VariableCount())
	for _, name := range doc.EnvironmentNames() {
		fmt.Printf("  - %s (%d variables)\n", name, len(doc[name]))
	}

	return nil
}
