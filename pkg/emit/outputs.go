package emit

import (
	"fmt"
	"strings"

	"github.com/arc-language/appanvil/pkg/catalog"
	"github.com/arc-language/appanvil/pkg/plan"
)

// Format names one generated artifact.
type Format string

const (
	FormatPowerShell Format = "ps1"
	FormatBatch      Format = "cmd"
	FormatLauncher   Format = "launcher"
	FormatWinget     Format = "winget"
	FormatChoco      Format = "choco"
	FormatScoop      Format = "scoop"
	FormatSelection  Format = "json"
)

// Formats lists every format in presentation order.
var Formats = []Format{
	FormatPowerShell,
	FormatBatch,
	FormatLauncher,
	FormatWinget,
	FormatChoco,
	FormatScoop,
	FormatSelection,
}

// FileNames are the default file names of each artifact.
var FileNames = map[Format]string{
	FormatPowerShell: "appanvil-install.ps1",
	FormatBatch:      "appanvil-installer.cmd",
	FormatLauncher:   "appanvil-launcher.cmd",
	FormatWinget:     "appanvil-winget.txt",
	FormatChoco:      "appanvil-choco.ps1",
	FormatScoop:      "appanvil-scoop.ps1",
	FormatSelection:  "appanvil-selection.json",
}

// ParseFormat resolves a format name. A few common aliases are accepted.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ps1", "powershell":
		return FormatPowerShell, nil
	case "cmd", "bat", "batch":
		return FormatBatch, nil
	case "launcher", "installer":
		return FormatLauncher, nil
	case "winget":
		return FormatWinget, nil
	case "choco", "chocolatey":
		return FormatChoco, nil
	case "scoop":
		return FormatScoop, nil
	case "json", "selection":
		return FormatSelection, nil
	}
	return "", fmt.Errorf("unknown format %q", name)
}

// Outputs holds every artifact generated for one selection. Choco and Scoop
// are empty when the plan has no item for that provider.
type Outputs struct {
	Resolution plan.Resolution
	Options    plan.Options

	PowerShell string
	Batch      string
	Launcher   string
	Winget     string
	Choco      string
	Scoop      string
	Selection  string
}

// Artifact is one generated file.
type Artifact struct {
	Format   Format
	FileName string
	Content  string
}

// Generate resolves records and renders every format.
func Generate(records []catalog.Record, opts plan.Options) Outputs {
	res := plan.Resolve(records, opts)

	out := Outputs{
		Resolution: res,
		Options:    opts,
		PowerShell: PowerShell(res, opts),
		Batch:      Batch(res, opts),
		Winget:     WingetCommands(res, opts),
		Selection:  SelectionJSON(res, opts),
	}
	out.Launcher = Launcher(out.PowerShell)
	out.Choco, _ = ChocoScript(res, opts)
	out.Scoop, _ = ScoopScript(res, opts)

	return out
}

// Get returns the content of format and whether it was generated.
func (o Outputs) Get(format Format) (string, bool) {
	var content string
	switch format {
	case FormatPowerShell:
		content = o.PowerShell
	case FormatBatch:
		content = o.Batch
	case FormatLauncher:
		content = o.Launcher
	case FormatWinget:
		content = o.Winget
	case FormatChoco:
		content = o.Choco
	case FormatScoop:
		content = o.Scoop
	case FormatSelection:
		content = o.Selection
	}
	return content, content != ""
}

// Artifacts returns the generated artifacts in Formats order, leaving out
// absent ones.
func (o Outputs) Artifacts() []Artifact {
	var out []Artifact
	for _, format := range Formats {
		if content, ok := o.Get(format); ok {
			out = append(out, Artifact{Format: format, FileName: FileNames[format], Content: content})
		}
	}
	return out
}
