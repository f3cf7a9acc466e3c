package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/arc-language/appanvil/pkg/plan"
)

var planCmd = &cobra.Command{
	Use:   "plan <app-id...>",
	Short: "Show how a selection would be installed",
	Long: `Resolve the selected apps and show which provider installs each one,
the exact command line, and which apps were skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlan,
}

func init() {
	addOptionFlags(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	g, err := openGenerator(cmd.Context())
	if err != nil {
		return err
	}

	opts := resolveOptions(cmd, config.Defaults)
	res, err := g.Plan(args, opts)
	if err != nil {
		return err
	}

	printSection(w, "Install plan")
	if len(res.Items) == 0 {
		printEmptyState(w, "Nothing to install")
	}

	rows := make([][]string, 0, len(res.Items))
	for _, item := range res.Items {
		name := item.Record().Name
		if item.Record().NeedsVerification {
			name += " (verify)"
		}
		rows = append(rows, []string{name, string(item.Method()), plan.PackageID(item), item.Install(opts).String()})
	}
	printTable(w, []string{"APP", "VIA", "PACKAGE", "COMMAND"}, rows)

	if skipped := res.SkippedNames(); len(skipped) > 0 {
		printSection(w, "Skipped")
		printList(w, skipped, 1)
	}
	if excluded := res.StoreExcludedNames(); len(excluded) > 0 {
		printLabelValue(w, "Store apps excluded by policy", strings.Join(excluded, ", "))
	}

	return nil
}
