package plan

// Options controls how a plan is resolved and how generated scripts behave.
type Options struct {
	SilentInstall      bool `json:"silentInstall" yaml:"silent_install"`
	ContinueOnError    bool `json:"continueOnError" yaml:"continue_on_error"`
	IncludeMsStoreApps bool `json:"includeMsStoreApps" yaml:"include_msstore_apps"`
}

// DefaultOptions returns silent, keep-going installs without store apps.
func DefaultOptions() Options {
	return Options{
		SilentInstall:      true,
		ContinueOnError:    true,
		IncludeMsStoreApps: false,
	}
}
