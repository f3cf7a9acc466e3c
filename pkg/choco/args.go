package choco

import "github.com/arc-language/appanvil/pkg/catalog"

// InstallArgs builds the choco arguments for installing m unattended.
func InstallArgs(m catalog.ChocoMapping) []string {
	return []string{"install", m.PackageID, "-y"}
}
