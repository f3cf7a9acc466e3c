package winget

import (
	"strings"

	"github.com/arc-language/appanvil/pkg/catalog"
)

// InstallArgs builds the winget arguments for installing m. --source is only
// passed for non-default sources and --silent only when the caller asks for a
// silent install and the package supports one.
func InstallArgs(m catalog.WingetMapping, silent bool) []string {
	args := []string{
		"install",
		"--id", m.PackageID,
		"--exact",
		"--accept-source-agreements",
		"--accept-package-agreements",
	}

	if source := strings.TrimSpace(m.Source); source != "" && !strings.EqualFold(source, DefaultSource) {
		args = append(args, "--source", source)
	}

	if silent && m.SupportsSilent {
		args = append(args, "--silent")
	}

	return args
}

// IsStoreSource reports whether source names the Microsoft Store channel.
func IsStoreSource(source string) bool {
	return strings.EqualFold(strings.TrimSpace(source), StoreSource)
}
