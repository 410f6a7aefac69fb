package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/codepane-dev/codepane/internal/assist/config"
	"github.com/codepane-dev/codepane/internal/assist/editor"
)

var applyPage string

// applyCmd represents the apply command
var applyCmd = &cobra.Command{
	Use:   "apply [file]",
	Short: "Write code into the page's editor region",
	Long: `Write code into the page editor's editable region.

The code is read from the given file, or from stdin when no file is
provided. The editable region is located by its role attribute; if the
page has none, nothing is mutated and an error is reported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if applyPage == "" {
			applyPage = cfg.PageFile
		}
		if applyPage == "" {
			return fmt.Errorf("no page document: pass --page or set page_file in the config")
		}

		var code []byte
		if len(args) > 0 {
			code, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading code file: %w", err)
			}
		} else {
			code, err = io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading from stdin: %w", err)
			}
		}

		surface := editor.NewDocument(applyPage)
		if err := surface.WriteCode(string(code)); err != nil {
			return turnError(err)
		}

		fmt.Fprintln(os.Stderr, "Applied code to the page editor.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringVar(&applyPage, "page", "", "host page HTML document (overrides config)")
}
