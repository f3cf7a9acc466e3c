// Package scoop holds the Scoop command conventions and a manifest client for
// the official buckets.
package scoop

const (
	// DefaultBucket is always added by Scoop itself.
	DefaultBucket = "main"

	// RawBaseURL serves bucket manifests.
	RawBaseURL = "https://raw.githubusercontent.com"

	// InstallURL is where users are sent when scoop is missing.
	InstallURL = "https://scoop.sh/"

	// Command is the executable name.
	Command = "scoop"
)

// KnownBuckets maps the official bucket names to their GitHub repositories.
var KnownBuckets = map[string]string{
	"main":         "ScoopInstaller/Main",
	"extras":       "ScoopInstaller/Extras",
	"versions":     "ScoopInstaller/Versions",
	"nerd-fonts":   "matthewjberger/scoop-nerd-fonts",
	"java":         "ScoopInstaller/Java",
	"games":        "Calinou/scoop-games",
	"nonportable":  "ScoopInstaller/Nonportable",
	"php":          "ScoopInstaller/PHP",
	"sysinternals": "niheaven/scoop-sysinternals",
}
