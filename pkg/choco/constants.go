package choco

const (
	// DefaultRepositoryURL is the main Chocolatey community repository
	DefaultRepositoryURL = "https://community.chocolatey.org/api/v2"

	// InstallURL is where users are sent when choco is missing.
	InstallURL = "https://chocolatey.org/install"

	// Command is the executable name.
	Command = "choco"
)
