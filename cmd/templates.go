package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/codepane-dev/codepane/internal/assist/config"
	"github.com/codepane-dev/codepane/internal/assist/prompt"
)

// templatesCmd represents the templates command
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available instruction templates",
	Long: `List all available instruction templates from the configured template
directories, including those in subdirectories.

A template is a TOML file with an "instruction" key holding the system
instruction. It may use the placeholders {{problem_statement}},
{{programming_language}}, and {{user_code}}.

Template names are displayed as relative paths from the template directory
root. For example, a file at ${template_dir}/foo/bar.toml is displayed as
"foo/bar".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "Template directories: %v\n", cfg.TemplateDirs)
		}

		names, err := prompt.List(cfg.TemplateDirs)
		if err != nil {
			return fmt.Errorf("listing templates: %w", err)
		}

		if len(names) == 0 {
			fmt.Println("No templates found.")
			fmt.Println("\nCreate one with:")
			fmt.Println("  codepane init")
			return nil
		}

		sort.Strings(names)
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
