package plan

import (
	"github.com/arc-language/appanvil/pkg/catalog"
	"github.com/arc-language/appanvil/pkg/choco"
	"github.com/arc-language/appanvil/pkg/scoop"
	"github.com/arc-language/appanvil/pkg/winget"
)

// Method is the provider a plan item installs through.
type Method = catalog.Provider

const (
	MethodWinget = catalog.ProviderWinget
	MethodChoco  = catalog.ProviderChoco
	MethodScoop  = catalog.ProviderScoop
)

// Item is one resolved installation. The concrete types are WingetItem,
// ChocoItem and ScoopItem.
type Item interface {
	// Record is the catalog record being installed.
	Record() catalog.Record
	// Method is the provider chosen for the record.
	Method() Method
	// Install is the command that installs the record.
	Install(opts Options) Command

	isItem()
}

// WingetItem installs a record with winget.
type WingetItem struct {
	App     catalog.Record
	Mapping catalog.WingetMapping
}

func (i WingetItem) Record() catalog.Record { return i.App }
func (i WingetItem) Method() Method         { return MethodWinget }
func (i WingetItem) isItem()                {}

func (i WingetItem) Install(opts Options) Command {
	return Command{Runner: winget.Command, Args: winget.InstallArgs(i.Mapping, opts.SilentInstall)}
}

// ChocoItem installs a record with Chocolatey.
type ChocoItem struct {
	App     catalog.Record
	Mapping catalog.ChocoMapping
}

func (i ChocoItem) Record() catalog.Record { return i.App }
func (i ChocoItem) Method() Method         { return MethodChoco }
func (i ChocoItem) isItem()                {}

func (i ChocoItem) Install(Options) Command {
	return Command{Runner: choco.Command, Args: choco.InstallArgs(i.Mapping)}
}

// ScoopItem installs a record with Scoop.
type ScoopItem struct {
	App     catalog.Record
	Mapping catalog.ScoopMapping
}

func (i ScoopItem) Record() catalog.Record { return i.App }
func (i ScoopItem) Method() Method         { return MethodScoop }
func (i ScoopItem) isItem()                {}

func (i ScoopItem) Install(Options) Command {
	return Command{Runner: scoop.Command, Args: scoop.InstallArgs(i.Mapping)}
}

// BucketAdd returns the command adding the item's bucket.
func (i ScoopItem) BucketAdd() Command {
	return Command{Runner: scoop.Command, Args: scoop.BucketAddArgs(i.Mapping.Bucket)}
}

// PackageID returns the provider package identifier of item.
func PackageID(item Item) string {
	switch it := item.(type) {
	case WingetItem:
		return it.Mapping.PackageID
	case ChocoItem:
		return it.Mapping.PackageID
	case ScoopItem:
		return it.Mapping.PackageID
	}
	return ""
}
