package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/kaleido/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, version.Info())
		for _, component := range []string{"lexer", "parser", "registry", "cli"} {
			fmt.Fprintf(out, "  %-9s %s\n", component+":", version.ComponentVersion(component))
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
