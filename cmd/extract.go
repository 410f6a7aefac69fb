package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codepane-dev/codepane/internal/assist/config"
	"github.com/codepane-dev/codepane/internal/assist/editor"
	"github.com/codepane-dev/codepane/internal/assist/extract"
)

var extractPage string

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Print the code currently in the page's editor",
	Long: `Print the code currently rendered in the page editor.

The editor's visible line markup is read from the page document and
cleaned: synthetic wrapper tags are stripped, each rendered line becomes
one text line, and indentation is preserved. This is exactly the code the
assistant sees when composing a prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if extractPage == "" {
			extractPage = cfg.PageFile
		}
		if extractPage == "" {
			return fmt.Errorf("no page document: pass --page or set page_file in the config")
		}

		markup, err := editor.NewDocument(extractPage).ReadMarkup()
		if err != nil {
			return fmt.Errorf("reading editor: %w", err)
		}

		fmt.Println(extract.Code(markup))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractPage, "page", "", "host page HTML document (overrides config)")
}
