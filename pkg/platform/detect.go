// Package platform reports which provider programs exist on this machine.
package platform

import (
	"fmt"
	"runtime"

	"github.com/arc-language/appanvil/pkg/catalog"
	"github.com/arc-language/appanvil/pkg/choco"
	"github.com/arc-language/appanvil/pkg/plan"
	"github.com/arc-language/appanvil/pkg/scoop"
	"github.com/arc-language/appanvil/pkg/winget"
)

// Platform represents the detected system platform
type Platform struct {
	OS        string             // linux, darwin, windows
	Arch      string             // amd64, arm64, 386, arm
	Available []catalog.Provider // Providers found on PATH
	Preferred catalog.Provider   // First available in fallback order
}

// commands maps each provider to the executable it is invoked through.
var commands = map[catalog.Provider]string{
	catalog.ProviderWinget: winget.Command,
	catalog.ProviderChoco:  choco.Command,
	catalog.ProviderScoop:  scoop.Command,
}

// Detect detects the current platform and which providers are installed.
// Generated scripts only run on Windows, but detection works anywhere so
// the CLI can report what a plan would need.
func Detect() *Platform {
	p := &Platform{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Available: []catalog.Provider{},
	}

	for _, provider := range catalog.AllProviders {
		if commandExists(commands[provider]) {
			p.Available = append(p.Available, provider)
		}
	}

	if len(p.Available) > 0 {
		p.Preferred = p.Available[0]
	}

	return p
}

// Has reports whether provider was found.
func (p *Platform) Has(provider catalog.Provider) bool {
	return contains(p.Available, provider)
}

// IsWindows reports whether generated scripts can run here.
func (p *Platform) IsWindows() bool {
	return p.OS == "windows"
}

// Missing returns the providers res needs that were not detected, in
// fallback order.
func Missing(res plan.Resolution, detected *Platform) []catalog.Provider {
	var out []catalog.Provider
	for _, m := range res.Methods() {
		if detected == nil || !detected.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

// String returns a string representation of the platform
func (p *Platform) String() string {
	return fmt.Sprintf("%s/%s (available: %v, preferred: %s)",
		p.OS, p.Arch, p.Available, p.Preferred)
}
