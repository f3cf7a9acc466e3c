package winget

// PackageEntry represents a package summary from the winget.run API
type PackageEntry struct {
	ID        string      `json:"Id"`
	Versions  []string    `json:"Versions"`
	Latest    VersionInfo `json:"Latest"`
	UpdatedAt string      `json:"UpdatedAt"` // string to tolerate the API's non-standard time formats
}

// VersionInfo contains metadata about a specific version
type VersionInfo struct {
	Name        string   `json:"Name"`
	Publisher   string   `json:"Publisher"`
	Description string   `json:"Description"`
	Homepage    string   `json:"Homepage"`
	License     string   `json:"License"`
	Tags        []string `json:"Tags"`
}

// LatestVersion returns the newest known version, or "" when the API lists
// none.
func (e *PackageEntry) LatestVersion() string {
	if len(e.Versions) > 0 {
		return e.Versions[len(e.Versions)-1]
	}
	return ""
}
