package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arc-language/appanvil"
	"github.com/arc-language/appanvil/pkg/emit"
	"github.com/arc-language/appanvil/pkg/platform"
)

var (
	generateFrom   string
	generateOut    string
	generateFormat string
)

var generateCmd = &cobra.Command{
	Use:   "generate [app-id...]",
	Short: "Generate install scripts for a selection",
	Long: `Generate install artifacts for the selected apps.

The selection comes from app ids or from --from, which accepts a share token,
a share link or a selection JSON file. With --out every artifact is written to
the directory; otherwise the artifact named by --format (default ps1) is
printed to stdout.

Examples:
  appanvil generate vscode git 7zip --out ./setup
  appanvil generate vscode --format winget
  appanvil generate --from https://appanvil.dev/#/share/XQAAAA... --out .
  appanvil generate --from selection.json --format cmd`,
	RunE: runGenerate,
}

func init() {
	addOptionFlags(generateCmd)
	generateCmd.Flags().StringVar(&generateFrom, "from", "", "share token, share link or selection JSON file")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "write every artifact to this directory")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "", "artifact to print: ps1, cmd, launcher, winget, choco, scoop, json")
	generateCmd.MarkFlagsMutuallyExclusive("out", "format")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	g, err := openGenerator(cmd.Context())
	if err != nil {
		return err
	}

	ids, opts, err := selection(cmd, g, args)
	if err != nil {
		return err
	}

	out, err := g.Generate(ids, opts)
	if err != nil {
		return err
	}

	reportPlan(stderr, out)

	if generateOut != "" {
		return writeArtifacts(stdout, generateOut, out)
	}

	format := emit.FormatPowerShell
	if generateFormat != "" {
		if format, err = emit.ParseFormat(generateFormat); err != nil {
			return err
		}
	}
	content, ok := out.Get(format)
	if !ok {
		return fmt.Errorf("no %s output: the plan has no %s items", format, format)
	}
	_, err = io.WriteString(stdout, content)
	return err
}

// selection returns the ids and options to generate for, from --from or the
// positional ids.
func selection(cmd *cobra.Command, g *appanvil.Generator, args []string) ([]string, appanvil.Options, error) {
	if generateFrom == "" {
		if len(args) == 0 {
			return nil, appanvil.Options{}, fmt.Errorf("%w: pass app ids or --from", appanvil.ErrEmptySelection)
		}
		return args, resolveOptions(cmd, config.Defaults), nil
	}

	if len(args) > 0 {
		return nil, appanvil.Options{}, fmt.Errorf("app ids cannot be combined with --from")
	}

	text, err := readInput(generateFrom)
	if err != nil {
		return nil, appanvil.Options{}, err
	}
	sel, err := g.Import(text)
	if err != nil {
		return nil, appanvil.Options{}, err
	}
	if len(sel.Unknown) > 0 {
		printWarning(cmd.ErrOrStderr(), "Ignoring ids not in the catalog: "+strings.Join(sel.Unknown, ", "))
	}
	return sel.IDs, resolveOptions(cmd, sel.Options), nil
}

// reportPlan prints skipped apps, mappings needing verification and
// providers missing on this machine.
func reportPlan(w io.Writer, out appanvil.Outputs) {
	res := out.Resolution

	if skipped := res.SkippedNames(); len(skipped) > 0 {
		printWarning(w, "Skipped (Microsoft Store apps excluded): "+strings.Join(skipped, ", "))
	}

	var verify []string
	for _, item := range res.Items {
		if item.Record().NeedsVerification {
			verify = append(verify, item.Record().Name)
		}
	}
	if len(verify) > 0 {
		printWarning(w, "Mappings that may need manual confirmation: "+strings.Join(verify, ", "))
	}

	if plat := platform.Detect(); plat.IsWindows() {
		for _, m := range platform.Missing(res, plat) {
			printWarning(w, fmt.Sprintf("%s is needed by this plan but was not found on PATH", m))
		}
	}
}

func writeArtifacts(w io.Writer, dir string, out appanvil.Outputs) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	artifacts := out.Artifacts()
	for _, a := range artifacts {
		path := filepath.Join(dir, a.FileName)
		if err := os.WriteFile(path, []byte(a.Content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", a.FileName, err)
		}
		logger.Printf("Wrote %s (%d bytes)", path, len(a.Content))
		printSuccess(w, "Wrote "+path)
	}

	printSuccess(w, fmt.Sprintf("Generated %s for %s",
		pluralize(len(artifacts), "artifact", "artifacts"),
		pluralize(len(out.Resolution.Items), "app", "apps")))
	return nil
}
