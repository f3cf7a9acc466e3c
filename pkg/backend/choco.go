package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/arc-language/appanvil/pkg/catalog"
	"github.com/arc-language/appanvil/pkg/choco"
)

// ChocoBackend implements the Backend interface for Chocolatey packages
type ChocoBackend struct {
	repo   *choco.Repository
	config *Config
}

// NewChocoBackend creates a new Chocolatey backend
func NewChocoBackend(config *Config) (*ChocoBackend, error) {
	if config == nil {
		config = DefaultConfig()
	}

	repo := choco.NewRepository(&choco.Config{
		RepositoryURL: config.ChocoRepositoryURL,
		Timeout:       config.Timeout,
		Debug:         config.Debug,
		Logger:        config.Logger,
	})

	return &ChocoBackend{
		repo:   repo,
		config: config,
	}, nil
}

// Lookup retrieves package information from Chocolatey
func (b *ChocoBackend) Lookup(ctx context.Context, rec catalog.Record) (*PackageInfo, error) {
	m := rec.Providers.Choco
	if m == nil {
		return nil, ErrNotMapped
	}

	pkgInfo, err := b.repo.GetPackageInfo(ctx, m.PackageID)
	if err != nil {
		if errors.Is(err, choco.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, m.PackageID)
		}
		return nil, fmt.Errorf("getting package info: %w", err)
	}

	return &PackageInfo{
		ID:          pkgInfo.ID,
		Name:        pkgInfo.Title,
		Version:     pkgInfo.Version,
		Description: pkgInfo.Description,
		Homepage:    pkgInfo.ProjectURL,
		License:     pkgInfo.LicenseURL,
		Backend:     BackendChoco,
	}, nil
}

// Name returns the backend name
func (b *ChocoBackend) Name() BackendType {
	return BackendChoco
}

// Close cleans up resources
func (b *ChocoBackend) Close() error {
	return nil
}
