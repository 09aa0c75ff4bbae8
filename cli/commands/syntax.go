package commands

import (
	_ "embed"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/forte-go/cli/internal/ui"
)

//go:embed syntax.md
var syntaxDoc string

var syntaxCmd = &cobra.Command{
	Use:   "syntax",
	Short: "Show the query language reference",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return ui.PrintMarkdown(syntaxDoc)
	},
}

func init() {
	rootCmd.AddCommand(syntaxCmd)
}
