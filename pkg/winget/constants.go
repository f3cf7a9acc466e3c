package winget

const (
	// APIBaseURL is the base URL for the winget.run community API
	APIBaseURL = "https://api.winget.run/v2"

	// DefaultSource is the community repository winget installs from when no
	// --source is given.
	DefaultSource = "winget"

	// StoreSource marks packages distributed through the Microsoft Store.
	StoreSource = "msstore"

	// InstallURL is where users are sent when winget is missing.
	InstallURL = "https://aka.ms/getwinget"

	// Command is the executable name.
	Command = "winget"
)
