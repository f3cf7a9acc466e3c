package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/appanvil/pkg/catalog"
	"github.com/arc-language/appanvil/pkg/platform"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List provider programs found on this machine",
	RunE:  runProviders,
}

func runProviders(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	plat := platform.Detect()

	fmt.Fprintf(w, "Platform: %s/%s\n\n", plat.OS, plat.Arch)
	fmt.Fprintf(w, "Providers:\n")
	for _, p := range catalog.AllProviders {
		if plat.Has(p) {
			marker := " "
			if p == plat.Preferred {
				marker = "*"
			}
			printSuccess(w, fmt.Sprintf("%s %s", marker, p))
		} else {
			printError(w, fmt.Sprintf("  %s (not found)", p))
		}
	}

	if plat.Preferred != "" {
		fmt.Fprintf(w, "\n* = preferred provider\n")
	}
	if !plat.IsWindows() {
		printWarning(w, "Generated scripts run on Windows only")
	}

	return nil
}
