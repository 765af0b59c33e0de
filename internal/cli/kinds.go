package cli

import (
	"github.com/spf13/cobra"

	"github.com/crimson-sun/strictwatch/internal/engine/taxonomy"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List violation kinds in detection order",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		renderKinds(cmd.OutOrStdout(), taxonomy.Default())
	},
}
