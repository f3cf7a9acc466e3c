package emit

import (
	"github.com/arc-language/appanvil/pkg/choco"
	"github.com/arc-language/appanvil/pkg/plan"
	"github.com/arc-language/appanvil/pkg/scoop"
	"github.com/arc-language/appanvil/pkg/winget"
)

// LogName is the log file generated scripts write under %TEMP%\AppAnvil.
const LogName = "appanvil-install.log"

// LauncherMarker separates the launcher from its embedded PowerShell.
const LauncherMarker = "::APPANVIL_PS::"

type scriptItem struct {
	Name              string
	Method            string
	Runner            string
	Args              []string
	Command           string // batch-safe command line
	AddBucket         string
	BatchBucket       string // AddBucket with cmd.exe syntax dropped
	NeedsVerification bool
}

type program struct {
	Command string
	Missing string
	Hint    string
}

type scriptData struct {
	LogName         string
	Items           []scriptItem
	Skipped         []string
	Programs        []program
	ContinueOnError bool
}

var programs = map[plan.Method]program{
	plan.MethodWinget: {
		Command: winget.Command,
		Missing: "winget was not found on this machine.",
		Hint:    "Install Microsoft App Installer from " + winget.InstallURL,
	},
	plan.MethodChoco: {
		Command: choco.Command,
		Missing: "Chocolatey (choco) is required for selected apps but was not found.",
		Hint:    "Install Chocolatey from " + choco.InstallURL,
	},
	plan.MethodScoop: {
		Command: scoop.Command,
		Missing: "Scoop is required for selected apps but was not found.",
		Hint:    "Install Scoop from " + scoop.InstallURL,
	},
}

// newScriptData flattens a resolution into the rows both script formats
// render. Each distinct non-default Scoop bucket is attached to the first
// item installing from it.
func newScriptData(res plan.Resolution, opts plan.Options) scriptData {
	data := scriptData{
		LogName:         LogName,
		Items:           make([]scriptItem, 0, len(res.Items)),
		Skipped:         oneLines(res.SkippedNames()),
		ContinueOnError: opts.ContinueOnError,
	}

	buckets := scoop.NewBucketSet()
	for _, item := range res.Items {
		cmd := item.Install(opts)
		row := scriptItem{
			Name:              item.Record().Name,
			Method:            string(item.Method()),
			Runner:            cmd.Runner,
			Args:              cmd.Args,
			Command:           batchCommand(cmd),
			NeedsVerification: item.Record().NeedsVerification,
		}

		if it, ok := item.(plan.ScoopItem); ok && buckets.Add(it.Mapping.Bucket) {
			row.AddBucket = it.Mapping.Bucket
			row.BatchBucket = batchArg(it.Mapping.Bucket)
		}

		data.Items = append(data.Items, row)
	}

	for _, m := range res.Methods() {
		data.Programs = append(data.Programs, programs[m])
	}

	return data
}

func oneLines(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = oneLine(v)
	}
	return out
}
