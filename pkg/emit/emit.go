// Package emit renders a resolved install plan as reviewable artifacts: a
// PowerShell installer, a batch installer, a self-extracting launcher, raw
// per-provider command lists and the selection JSON.
//
// Emitters are pure. Every provider command line comes from plan.Item.Install,
// so all formats agree on provider, flags and buckets for the same plan.
package emit

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arc-language/appanvil/pkg/plan"
	"github.com/arc-language/appanvil/pkg/scoop"
	"github.com/arc-language/appanvil/pkg/share"
)

const verifyComment = "# VERIFY: %s mapping may need manual confirmation."

// PowerShell renders the interactive PowerShell installer.
func PowerShell(res plan.Resolution, opts plan.Options) string {
	return render("install.ps1.tmpl", newScriptData(res, opts))
}

// Batch renders the cmd.exe installer.
func Batch(res plan.Resolution, opts plan.Options) string {
	return render("installer.cmd.tmpl", newScriptData(res, opts))
}

// Launcher wraps a PowerShell installer in a .cmd file that extracts and
// runs it.
func Launcher(ps1 string) string {
	return render("launcher.cmd.tmpl", struct {
		Marker     string
		ScriptName string
		LogName    string
		Script     string
	}{
		Marker:     LauncherMarker,
		ScriptName: FileNames[FormatPowerShell],
		LogName:    LogName,
		Script:     ps1,
	})
}

// WingetCommands lists one winget command per winget plan item.
func WingetCommands(res plan.Resolution, opts plan.Options) string {
	lines := []string{"# AppAnvil Winget commands", "# Review scripts before running."}

	if excluded := res.StoreExcludedNames(); !opts.IncludeMsStoreApps && len(excluded) > 0 {
		lines = append(lines, fmt.Sprintf("# Skipped msstore apps (%d): %s", len(excluded), strings.Join(oneLines(excluded), ", ")))
	}

	items := res.ByMethod(plan.MethodWinget)
	if len(items) == 0 {
		lines = append(lines, "# No winget-compatible apps in this selection.")
		return strings.Join(lines, "\n")
	}

	for _, item := range items {
		lines = appendVerify(lines, item)
		lines = append(lines, oneLine(item.Install(opts).String()))
	}

	return strings.Join(lines, "\n")
}

// ChocoScript lists the Chocolatey installs of the plan. It reports false
// when no item installs through Chocolatey.
func ChocoScript(res plan.Resolution, opts plan.Options) (string, bool) {
	items := res.ByMethod(plan.MethodChoco)
	if len(items) == 0 {
		return "", false
	}

	lines := []string{"# AppAnvil Chocolatey commands", "# Only apps planned for Chocolatey are included."}
	for _, item := range items {
		lines = appendVerify(lines, item)
		lines = append(lines, oneLine(item.Install(opts).String()))
	}

	return strings.Join(lines, "\n"), true
}

// ScoopScript lists the Scoop installs of the plan, preceded by one bucket
// add per distinct non-default bucket in first-seen order. It reports false
// when no item installs through Scoop.
func ScoopScript(res plan.Resolution, opts plan.Options) (string, bool) {
	items := res.ByMethod(plan.MethodScoop)
	if len(items) == 0 {
		return "", false
	}

	lines := []string{"# AppAnvil Scoop commands", "# Only apps planned for Scoop are included."}

	buckets := scoop.NewBucketSet()
	for _, item := range items {
		if it, ok := item.(plan.ScoopItem); ok && buckets.Add(it.Mapping.Bucket) {
			lines = append(lines, oneLine(it.BucketAdd().String()))
		}
	}

	for _, item := range items {
		lines = appendVerify(lines, item)
		lines = append(lines, oneLine(item.Install(opts).String()))
	}

	return strings.Join(lines, "\n"), true
}

// SelectionJSON renders the selection payload for the resolved records with
// two-space indentation. share.Codec parses it back.
func SelectionJSON(res plan.Resolution, opts plan.Options) string {
	payload := share.NewPayload(res.IDs(), opts)

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		panic(fmt.Sprintf("emit: encoding selection: %v", err))
	}
	return string(data)
}

func appendVerify(lines []string, item plan.Item) []string {
	if rec := item.Record(); rec.NeedsVerification {
		return append(lines, fmt.Sprintf(verifyComment, oneLine(rec.Name)))
	}
	return lines
}
