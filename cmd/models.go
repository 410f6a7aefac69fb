package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/codepane-dev/codepane/internal/assist"
)

// modelsCmd represents the models command
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the selectable models",
	Long: `List the models the assistant can talk to.

The set is fixed; the --model flag and the :model session command are
validated against it. The default model is marked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDESCRIPTION\tDEFAULT")
		fmt.Fprintln(w, "--\t-----------\t-------")

		for _, m := range assist.Models() {
			mark := ""
			if m.IsDefault {
				mark = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", m.ID, m.Description, mark)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
