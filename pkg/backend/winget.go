package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/arc-language/appanvil/pkg/catalog"
	"github.com/arc-language/appanvil/pkg/winget"
)

type WingetBackend struct {
	client *winget.Client
	config *Config
}

func NewWingetBackend(config *Config) (*WingetBackend, error) {
	if config == nil {
		config = DefaultConfig()
	}

	client := winget.NewClient(config.Timeout, config.Logger)
	if config.WingetAPIURL != "" {
		client.WithBaseURL(config.WingetAPIURL)
	}

	return &WingetBackend{
		client: client,
		config: config,
	}, nil
}

func (b *WingetBackend) Lookup(ctx context.Context, rec catalog.Record) (*PackageInfo, error) {
	m := rec.Providers.Winget
	if m == nil {
		return nil, ErrNotMapped
	}

	entry, err := b.client.GetPackage(ctx, m.PackageID)
	if err != nil {
		if errors.Is(err, winget.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, m.PackageID)
		}
		return nil, err
	}

	return &PackageInfo{
		ID:          entry.ID,
		Name:        entry.Latest.Name,
		Version:     entry.LatestVersion(),
		Description: entry.Latest.Description,
		Homepage:    entry.Latest.Homepage,
		License:     entry.Latest.License,
		Backend:     BackendWinget,
	}, nil
}

func (b *WingetBackend) Name() BackendType {
	return BackendWinget
}

func (b *WingetBackend) Close() error {
	return nil
}
