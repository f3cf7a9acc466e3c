// Package catalog holds the package records a selection is made from, and
// loads them from JSON, YAML or TOML catalog files, over HTTP or from a git
// checkout.
package catalog

// Provider names a package-manager distribution channel.
type Provider string

const (
	// ProviderWinget is the Windows Package Manager.
	ProviderWinget Provider = "winget"
	// ProviderChoco is Chocolatey.
	ProviderChoco Provider = "choco"
	// ProviderScoop is Scoop.
	ProviderScoop Provider = "scoop"
)

// AllProviders lists every provider in fallback priority order.
var AllProviders = []Provider{ProviderWinget, ProviderChoco, ProviderScoop}

// Default mapping values applied when a catalog file leaves them out.
const (
	DefaultWingetSource = "winget"
	DefaultScoopBucket  = "main"
)

// Record is a single installable application.
type Record struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	Category          string    `json:"category,omitempty"`
	Tags              []string  `json:"tags,omitempty"`
	Popularity        int       `json:"popularity,omitempty"`
	AddedAt           string    `json:"addedAt,omitempty"` // YYYY-MM-DD
	Homepage          string    `json:"homepage,omitempty"`
	License           string    `json:"license,omitempty"`
	Providers         Providers `json:"providers"`
	NeedsVerification bool      `json:"needsVerification"`
}

// Providers holds the per-provider mappings of a record. A nil mapping means
// the package is not available through that provider.
type Providers struct {
	Winget *WingetMapping `json:"winget,omitempty"`
	Choco  *ChocoMapping  `json:"choco,omitempty"`
	Scoop  *ScoopMapping  `json:"scoop,omitempty"`
}

// Has reports whether a mapping for p is present.
func (p Providers) Has(provider Provider) bool {
	switch provider {
	case ProviderWinget:
		return p.Winget != nil
	case ProviderChoco:
		return p.Choco != nil
	case ProviderScoop:
		return p.Scoop != nil
	}
	return false
}

// Any reports whether at least one mapping is present.
func (p Providers) Any() bool {
	return p.Winget != nil || p.Choco != nil || p.Scoop != nil
}

// WingetMapping maps a record onto a winget package.
type WingetMapping struct {
	PackageID      string `json:"packageId"`
	Source         string `json:"source"` // "winget", "msstore", ...
	SupportsSilent bool   `json:"supportsSilent"`
	Notes          string `json:"notes,omitempty"`
}

// ChocoMapping maps a record onto a Chocolatey package.
type ChocoMapping struct {
	PackageID string `json:"packageId"`
	Notes     string `json:"notes,omitempty"`
}

// ScoopMapping maps a record onto a Scoop app.
type ScoopMapping struct {
	PackageID string `json:"packageId"`
	Bucket    string `json:"bucket"`
	Notes     string `json:"notes,omitempty"`
}

// IsPopular reports whether the record counts as popular for filtering.
func (r Record) IsPopular() bool {
	if r.Popularity >= 80 {
		return true
	}
	for _, tag := range r.Tags {
		if tag == "popular" {
			return true
		}
	}
	return false
}
