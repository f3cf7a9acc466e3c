package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "appanvil version %s\n", rootCmd.Version)
		fmt.Fprintln(w, "Windows install script generator")
		fmt.Fprintln(w, "https://github.com/arc-language/appanvil")
	},
}
