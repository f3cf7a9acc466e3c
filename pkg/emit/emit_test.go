package emit

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/arc-language/appanvil/pkg/catalog"
	"github.com/arc-language/appanvil/pkg/plan"
	"github.com/arc-language/appanvil/pkg/share"
)

func vscode() catalog.Record {
	return catalog.Record{
		ID:   "vscode",
		Name: "Visual Studio Code",
		Providers: catalog.Providers{
			Winget: &catalog.WingetMapping{PackageID: "Microsoft.VisualStudioCode", Source: "winget", SupportsSilent: true},
		},
	}
}

func chocoOnly() catalog.Record {
	return catalog.Record{ID: "choco-app", Name: "Choco App", Providers: catalog.Providers{
		Choco: &catalog.ChocoMapping{PackageID: "vendor-choco-only"},
	}}
}

func scoopOnly(id, bucket string) catalog.Record {
	return catalog.Record{ID: id, Name: "Scoop " + id, Providers: catalog.Providers{
		Scoop: &catalog.ScoopMapping{PackageID: "vendor-" + id, Bucket: bucket},
	}}
}

func storeOnly() catalog.Record {
	return catalog.Record{ID: "whatsapp", Name: "WhatsApp", NeedsVerification: true, Providers: catalog.Providers{
		Winget: &catalog.WingetMapping{PackageID: "9NKSQGP7F2NH", Source: "msstore", SupportsSilent: true},
	}}
}

func TestWingetCommands_VSCodeScenario(t *testing.T) {
	out := Generate([]catalog.Record{vscode()}, plan.DefaultOptions())

	lines := strings.Split(out.Winget, "\n")
	assert.Equal(t, "# AppAnvil Winget commands", lines[0])
	assert.Contains(t, lines,
		"winget install --id Microsoft.VisualStudioCode --exact --accept-source-agreements --accept-package-agreements --silent")
}

func TestWingetCommands_SkippedAndVerify(t *testing.T) {
	storeWithFallback := storeOnly()
	storeWithFallback.ID = "spotify"
	storeWithFallback.Name = "Spotify"
	storeWithFallback.NeedsVerification = false
	storeWithFallback.Providers.Choco = &catalog.ChocoMapping{PackageID: "spotify"}

	flagged := vscode()
	flagged.NeedsVerification = true

	res := plan.Resolve([]catalog.Record{flagged, storeOnly(), storeWithFallback}, plan.DefaultOptions())
	out := WingetCommands(res, plan.DefaultOptions())

	assert.Equal(t, strings.Join([]string{
		"# AppAnvil Winget commands",
		"# Review scripts before running.",
		"# Skipped msstore apps (2): Spotify, WhatsApp",
		"# VERIFY: Visual Studio Code mapping may need manual confirmation.",
		"winget install --id Microsoft.VisualStudioCode --exact --accept-source-agreements --accept-package-agreements --silent",
	}, "\n"), out)
}

func TestWingetCommands_Empty(t *testing.T) {
	out := WingetCommands(plan.Resolve([]catalog.Record{chocoOnly()}, plan.DefaultOptions()), plan.DefaultOptions())
	assert.True(t, strings.HasSuffix(out, "# No winget-compatible apps in this selection."))
}

func TestWingetCommands_QuotesSpaces(t *testing.T) {
	rec := vscode()
	rec.Providers.Winget.Source = "corp source"
	out := WingetCommands(plan.Resolve([]catalog.Record{rec}, plan.DefaultOptions()), plan.DefaultOptions())
	assert.Contains(t, out, `--source "corp source" --silent`)
}

func TestProviderScripts_ChocoScoopScenario(t *testing.T) {
	res := plan.Resolve([]catalog.Record{chocoOnly(), scoopOnly("scoop-app", "main")}, plan.DefaultOptions())
	opts := plan.DefaultOptions()

	chocoOut, ok := ChocoScript(res, opts)
	require.True(t, ok)
	assert.Contains(t, chocoOut, "choco install vendor-choco-only -y")
	assert.NotContains(t, chocoOut, "vendor-scoop-app")

	scoopOut, ok := ScoopScript(res, opts)
	require.True(t, ok)
	assert.Contains(t, scoopOut, "scoop install vendor-scoop-app")
	assert.NotContains(t, scoopOut, "vendor-choco-only")
	assert.NotContains(t, scoopOut, "bucket add")
}

func TestProviderScripts_AbsentWhenNotPlanned(t *testing.T) {
	res := plan.Resolve([]catalog.Record{vscode()}, plan.DefaultOptions())

	out, ok := ChocoScript(res, plan.DefaultOptions())
	assert.False(t, ok)
	assert.Empty(t, out)

	out, ok = ScoopScript(res, plan.DefaultOptions())
	assert.False(t, ok)
	assert.Empty(t, out)
}

func TestProviderScripts_OnlyPlannedItems(t *testing.T) {
	// vscode also maps to choco, but the plan installs it with winget.
	rec := vscode()
	rec.Providers.Choco = &catalog.ChocoMapping{PackageID: "vscode"}

	_, ok := ChocoScript(plan.Resolve([]catalog.Record{rec}, plan.DefaultOptions()), plan.DefaultOptions())
	assert.False(t, ok)
}

func TestScoopScript_BucketsFirstSeenOrder(t *testing.T) {
	records := []catalog.Record{
		scoopOnly("a1", "extras"),
		scoopOnly("a2", "games"),
		scoopOnly("a3", "extras"),
		scoopOnly("a4", "main"),
	}
	out, ok := ScoopScript(plan.Resolve(records, plan.DefaultOptions()), plan.DefaultOptions())
	require.True(t, ok)

	assert.Equal(t, strings.Join([]string{
		"# AppAnvil Scoop commands",
		"# Only apps planned for Scoop are included.",
		"scoop bucket add extras",
		"scoop bucket add games",
		"scoop install vendor-a1",
		"scoop install vendor-a2",
		"scoop install vendor-a3",
		"scoop install vendor-a4",
	}, "\n"), out)
}

func TestPowerShell(t *testing.T) {
	records := []catalog.Record{vscode(), chocoOnly(), scoopOnly("s1", "extras"), scoopOnly("s2", "extras"), storeOnly()}
	opts := plan.DefaultOptions()
	opts.ContinueOnError = false

	out := PowerShell(plan.Resolve(records, opts), opts)

	assert.True(t, strings.HasPrefix(out, "# AppAnvil generated PowerShell installer\n"))
	assert.Contains(t, out, "$logFile = Join-Path $logRoot 'appanvil-install.log'")
	assert.Contains(t, out, "Write-Warning 'Run PowerShell as Administrator for best results.'")
	assert.Contains(t, out, "Args = @('install', '--id', 'Microsoft.VisualStudioCode', '--exact', '--accept-source-agreements', '--accept-package-agreements', '--silent')")
	assert.Contains(t, out, "Args = @('install', 'vendor-choco-only', '-y')")
	assert.Equal(t, 1, strings.Count(out, "AddBucket = 'extras'"))
	assert.Contains(t, out, "# Skipped msstore apps without fallback: WhatsApp")
	assert.Contains(t, out, "if (-not (Get-Command winget -ErrorAction SilentlyContinue))")
	assert.Contains(t, out, "if (-not (Get-Command choco -ErrorAction SilentlyContinue))")
	assert.Contains(t, out, "if (-not (Get-Command scoop -ErrorAction SilentlyContinue))")
	assert.Contains(t, out, "Install Microsoft App Installer from https://aka.ms/getwinget")
	assert.Contains(t, out, "$continueOnError = $false")
	assert.Contains(t, out, "Write-Host ('Log file: {0}' -f $logFile)")
}

func TestPowerShell_EscapesNames(t *testing.T) {
	rec := vscode()
	rec.Name = "Bob's Editor"
	out := PowerShell(plan.Resolve([]catalog.Record{rec}, plan.DefaultOptions()), plan.DefaultOptions())
	assert.Contains(t, out, "Name = 'Bob''s Editor'")

	rec.Name = "Bob\u2019s Editor"
	out = PowerShell(plan.Resolve([]catalog.Record{rec}, plan.DefaultOptions()), plan.DefaultOptions())
	assert.Contains(t, out, "Name = 'Bob\u2019\u2019s Editor'")
}

func TestPowerShell_EmptyPlan(t *testing.T) {
	out := PowerShell(plan.Resolve(nil, plan.DefaultOptions()), plan.DefaultOptions())
	assert.Contains(t, out, "$installPlan = @()")
	assert.NotContains(t, out, "Get-Command")
	assert.Contains(t, out, "No installable apps were generated for this selection.")
}

func TestPowerShell_OnlyNeededProgramChecks(t *testing.T) {
	out := PowerShell(plan.Resolve([]catalog.Record{chocoOnly()}, plan.DefaultOptions()), plan.DefaultOptions())
	assert.Contains(t, out, "Get-Command choco")
	assert.NotContains(t, out, "Get-Command winget")
	assert.NotContains(t, out, "Get-Command scoop")
}

func TestBatch(t *testing.T) {
	flagged := chocoOnly()
	flagged.NeedsVerification = true
	flagged.Name = `Tom & "Jerry" 100%`

	records := []catalog.Record{vscode(), flagged, scoopOnly("s1", "extras"), scoopOnly("s2", "extras")}
	out := Batch(plan.Resolve(records, plan.DefaultOptions()), plan.DefaultOptions())

	assert.True(t, strings.HasPrefix(out, "@echo off\n"))
	assert.Contains(t, out, `set "LOGFILE=%LOGDIR%\appanvil-install.log"`)
	assert.Contains(t, out, `call :install_item "Visual Studio Code" 0 winget install --id Microsoft.VisualStudioCode --exact --accept-source-agreements --accept-package-agreements --silent`)
	assert.Contains(t, out, `call :install_item "Tom and 'Jerry' 100" 1 choco install vendor-choco-only -y`)
	assert.Equal(t, 1, strings.Count(out, `call :add_bucket "extras"`))
	assert.Less(t, strings.Index(out, `call :add_bucket "extras"`), strings.Index(out, "scoop install vendor-s1"))
	assert.Contains(t, out, "echo ERROR: Chocolatey ^(choco^) is required for selected apps but was not found.")
	assert.Contains(t, out, `set "CONTINUE_ON_ERROR=1"`)
	assert.Contains(t, out, "set /a TOTAL=4")
}

func TestBatch_SummaryListsSucceeded(t *testing.T) {
	out := Batch(plan.Resolve([]catalog.Record{vscode()}, plan.DefaultOptions()), plan.DefaultOptions())

	assert.Contains(t, out, `set "SUCCEEDED_LIST="`)
	assert.Contains(t, out, `set "SUCCEEDED_LIST=%SUCCEEDED_LIST% %ITEM_NAME%;"`)
	assert.Contains(t, out, "if defined SUCCEEDED_LIST echo  %SUCCEEDED_LIST%")
	assert.Less(t, strings.Index(out, "echo Succeeded: %SUCCEEDED%"), strings.Index(out, "if defined SUCCEEDED_LIST"))
}

func TestBatch_BucketFailureCountsItem(t *testing.T) {
	opts := plan.DefaultOptions()
	out := Batch(plan.Resolve([]catalog.Record{scoopOnly("s1", "extras")}, opts), opts)

	assert.Contains(t, out, strings.Join([]string{
		`call :add_bucket "extras" "Scoop s1"`,
		"if defined STOPPED goto summary",
		`if not defined BUCKET_FAILED call :install_item "Scoop s1" 0 scoop install vendor-s1`,
	}, "\n"))

	label := out[strings.Index(out, ":bucket_failed\n"):]
	label = label[:strings.Index(label, "exit /b 0")]
	assert.Contains(t, label, `set "BUCKET_FAILED=1"`)
	assert.Contains(t, label, "set /a FAILED+=1")
	assert.Contains(t, label, `set "FAILED_LIST=%FAILED_LIST% %~2;"`)
	assert.Contains(t, label, `if "%CONTINUE_ON_ERROR%"=="0" set "STOPPED=1"`)
	assert.NotContains(t, label, "\nset \"STOPPED=1\"")
}

func TestPowerShell_BucketFailureHonorsContinueOnError(t *testing.T) {
	opts := plan.DefaultOptions()
	out := PowerShell(plan.Resolve([]catalog.Record{scoopOnly("s1", "extras")}, opts), opts)

	failure := out[strings.Index(out, "could not add Scoop bucket"):]
	assert.True(t, strings.HasPrefix(failure, strings.Join([]string{
		"could not add Scoop bucket ' + $item.AddBucket) '31')",
		"      if (-not $continueOnError) {",
		"        break",
		"      }",
		"      continue",
	}, "\n")))
}

func hostileRecords() []catalog.Record {
	return []catalog.Record{
		{ID: "evil-choco", Name: "Evil\r\ndel /q C:\\x", NeedsVerification: true, Providers: catalog.Providers{
			Choco: &catalog.ChocoMapping{PackageID: "pkg&calc"},
		}},
		{ID: "evil-scoop", Name: `Scoop"evil`, Providers: catalog.Providers{
			Scoop: &catalog.ScoopMapping{PackageID: "tool|calc", Bucket: `b" & calc & "`},
		}},
	}
}

func TestGenerate_HostileCatalogText(t *testing.T) {
	out := Generate(hostileRecords(), plan.DefaultOptions())

	assert.Contains(t, out.Batch, `call :install_item "Evil  del /q C:\x" 1 choco install pkgcalc -y`)
	assert.Contains(t, out.Batch, `call :add_bucket "b  calc  " "Scoop'evil"`)
	assert.Contains(t, out.Batch, `if not defined BUCKET_FAILED call :install_item "Scoop'evil" 0 scoop install toolcalc`)

	assert.Contains(t, out.PowerShell, "Name = 'Evil  del /q C:\\x'")
	assert.Contains(t, out.PowerShell, "Args = @('install', 'pkg&calc', '-y')")
	assert.Contains(t, out.Choco, "# VERIFY: Evil  del /q C:\\x mapping may need manual confirmation.")

	for name, text := range map[string]string{
		"batch":    out.Batch,
		"ps1":      out.PowerShell,
		"launcher": out.Launcher,
		"choco":    out.Choco,
		"scoop":    out.Scoop,
	} {
		assert.NotContains(t, text, "\r", name)
		for _, line := range strings.Split(text, "\n") {
			assert.False(t, strings.HasPrefix(strings.TrimSpace(line), "del "), "%s: %q", name, line)
		}
	}

	for _, line := range strings.Split(out.Batch, "\n") {
		if !strings.Contains(line, "call :install_item") && !strings.HasPrefix(line, "call :add_bucket") {
			continue
		}
		assert.Zero(t, strings.Count(line, `"`)%2, line)
		assert.NotContains(t, line, "&", line)
		assert.NotContains(t, line, "|", line)
	}
}

func TestBatchArg(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"vendor-choco-only", "vendor-choco-only"},
		{"corp source", "corp source"},
		{"pkg&calc", "pkgcalc"},
		{`b" & calc & "`, "b  calc  "},
		{"a\r\nb", "ab"},
		{"%PATH%!x!^(y)<z>|", "PATHxyz"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, batchArg(tt.in), tt.in)
	}

	cmd := plan.Command{Runner: "winget", Args: []string{"install", "--source", "corp source", "x&y"}}
	assert.Equal(t, `winget install --source "corp source" xy`, batchCommand(cmd))
}

func TestOneLine(t *testing.T) {
	assert.Equal(t, "a  b c", oneLine("a\r\nb\tc"))
	assert.Equal(t, "Visual Studio Code", oneLine("Visual Studio Code"))
}

func TestLauncher(t *testing.T) {
	ps1 := PowerShell(plan.Resolve([]catalog.Record{vscode()}, plan.DefaultOptions()), plan.DefaultOptions())
	out := Launcher(ps1)

	assert.True(t, strings.HasPrefix(out, "@echo off\n"))
	idx := strings.Index(out, "\n"+LauncherMarker+"\n")
	require.Positive(t, idx)
	assert.Equal(t, ps1, out[idx+len(LauncherMarker)+2:])
	assert.Contains(t, out, "'appanvil-install.ps1'")
	assert.Contains(t, out, "$raw.IndexOf([string][char]10 + $marker)")
}

func TestLauncher_MarkerInScript(t *testing.T) {
	ps1 := "Write-Host a\n" + LauncherMarker + "\nWrite-Host b\n"
	out := Launcher(ps1)

	idx := strings.Index(out, "\n"+LauncherMarker+"\n")
	require.Positive(t, idx)
	assert.Equal(t, ps1, out[idx+len(LauncherMarker)+2:])
}

func TestSelectionJSON(t *testing.T) {
	records := []catalog.Record{vscode(), chocoOnly(), vscode(), storeOnly()}
	res := plan.Resolve(records, plan.DefaultOptions())
	out := SelectionJSON(res, plan.DefaultOptions())

	assert.Equal(t, `{
  "version": 1,
  "selectedIds": [
    "choco-app",
    "vscode",
    "whatsapp"
  ],
  "options": {
    "silentInstall": true,
    "continueOnError": true,
    "includeMsStoreApps": false
  }
}`, out)

	parsed, err := share.ParseSelectionJSON(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"choco-app", "vscode", "whatsapp"}, parsed.SelectedIDs)
	assert.Equal(t, plan.DefaultOptions(), parsed.Options)
}

func TestGenerate_Artifacts(t *testing.T) {
	out := Generate([]catalog.Record{vscode(), scoopOnly("s1", "extras")}, plan.DefaultOptions())

	var names []string
	for _, a := range out.Artifacts() {
		names = append(names, a.FileName)
		assert.NotEmpty(t, a.Content)
	}
	assert.Equal(t, []string{
		"appanvil-install.ps1",
		"appanvil-installer.cmd",
		"appanvil-launcher.cmd",
		"appanvil-winget.txt",
		"appanvil-scoop.ps1",
		"appanvil-selection.json",
	}, names)

	_, ok := out.Get(FormatChoco)
	assert.False(t, ok)
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{
		"ps1":        FormatPowerShell,
		"PowerShell": FormatPowerShell,
		"bat":        FormatBatch,
		"installer":  FormatLauncher,
		"winget":     FormatWinget,
		"chocolatey": FormatChoco,
		"scoop":      FormatScoop,
		"selection":  FormatSelection,
	} {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseFormat("yaml")
	assert.Error(t, err)
}

func genRecords() *rapid.Generator[[]catalog.Record] {
	return rapid.Custom(func(t *rapid.T) []catalog.Record {
		n := rapid.IntRange(0, 10).Draw(t, "n")
		records := make([]catalog.Record, 0, n)
		for i := 0; i < n; i++ {
			id := fmt.Sprintf("app%d", i)
			rec := catalog.Record{
				ID:                id,
				Name:              rapid.StringMatching(`[A-Z][a-z]{0,6}`).Draw(t, "name"),
				NeedsVerification: rapid.Bool().Draw(t, "verify"),
			}
			if rapid.Bool().Draw(t, "winget") {
				rec.Providers.Winget = &catalog.WingetMapping{
					PackageID:      "Vendor." + id,
					Source:         rapid.SampledFrom([]string{"winget", "msstore"}).Draw(t, "source"),
					SupportsSilent: rapid.Bool().Draw(t, "supportsSilent"),
				}
			}
			if rapid.Bool().Draw(t, "choco") {
				rec.Providers.Choco = &catalog.ChocoMapping{PackageID: "choco-" + id}
			}
			if rapid.Bool().Draw(t, "scoop") {
				rec.Providers.Scoop = &catalog.ScoopMapping{
					PackageID: "scoop-" + id,
					Bucket:    rapid.SampledFrom([]string{"main", "extras", "games"}).Draw(t, "bucket"),
				}
			}
			records = append(records, rec)
		}
		return records
	})
}

func genOptions() *rapid.Generator[plan.Options] {
	return rapid.Custom(func(t *rapid.T) plan.Options {
		return plan.Options{
			SilentInstall:      rapid.Bool().Draw(t, "silentInstall"),
			ContinueOnError:    rapid.Bool().Draw(t, "continueOnError"),
			IncludeMsStoreApps: rapid.Bool().Draw(t, "includeMsStoreApps"),
		}
	})
}

func TestEmitters_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		opts := genOptions().Draw(t, "opts")
		out := Generate(genRecords().Draw(t, "records"), opts)
		res := out.Resolution

		buckets := map[string]bool{}
		for _, item := range res.Items {
			cmd := item.Install(opts)

			// Every format renders the same command line for an item.
			if !strings.Contains(out.Batch, " "+cmd.String()+"\n") {
				t.Fatalf("batch is missing %q", cmd.String())
			}
			if !strings.Contains(out.PowerShell, "Args = "+psArray(cmd.Args)+"\n") {
				t.Fatalf("ps1 is missing args %v", cmd.Args)
			}

			switch it := item.(type) {
			case plan.WingetItem:
				if !strings.Contains(out.Winget, cmd.String()) {
					t.Fatalf("winget list is missing %q", cmd.String())
				}
				hasSilent := strings.HasSuffix(cmd.String(), " --silent")
				if hasSilent != (opts.SilentInstall && it.Mapping.SupportsSilent) {
					t.Fatalf("silent flag mismatch for %s", it.Mapping.PackageID)
				}
				if !opts.IncludeMsStoreApps && it.Mapping.Source == "msstore" {
					t.Fatalf("store item %s planned", it.Mapping.PackageID)
				}
			case plan.ChocoItem:
				if !strings.Contains(out.Choco, cmd.String()) {
					t.Fatalf("choco script is missing %q", cmd.String())
				}
			case plan.ScoopItem:
				if !strings.Contains(out.Scoop, cmd.String()) {
					t.Fatalf("scoop script is missing %q", cmd.String())
				}
				if it.Mapping.Bucket != "main" {
					buckets[it.Mapping.Bucket] = true
				}
			}
		}

		for _, bucket := range []string{"extras", "games", "main"} {
			want := 0
			if buckets[bucket] {
				want = 1
			}
			if got := strings.Count(out.PowerShell, "AddBucket = '"+bucket+"'"); got != want {
				t.Fatalf("ps1 adds bucket %s %d times, want %d", bucket, got, want)
			}
			if got := strings.Count(out.Batch, `call :add_bucket "`+bucket+`"`); got != want {
				t.Fatalf("batch adds bucket %s %d times, want %d", bucket, got, want)
			}
			if got := strings.Count(out.Scoop, "scoop bucket add "+bucket+"\n"); got != want {
				t.Fatalf("scoop script adds bucket %s %d times, want %d", bucket, got, want)
			}
		}

		if (out.Choco != "") != res.Needs(plan.MethodChoco) {
			t.Fatalf("choco presence mismatch")
		}
		if (out.Scoop != "") != res.Needs(plan.MethodScoop) {
			t.Fatalf("scoop presence mismatch")
		}
	})
}
