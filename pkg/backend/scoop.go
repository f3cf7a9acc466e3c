package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/arc-language/appanvil/pkg/catalog"
	"github.com/arc-language/appanvil/pkg/scoop"
)

// ScoopBackend implements the Backend interface for Scoop apps
type ScoopBackend struct {
	client *scoop.Client
	config *Config
}

// NewScoopBackend creates a new Scoop backend
func NewScoopBackend(config *Config) (*ScoopBackend, error) {
	if config == nil {
		config = DefaultConfig()
	}

	client := scoop.NewClient(config.Timeout, config.Logger)
	if config.ScoopRawURL != "" {
		client.WithBaseURL(config.ScoopRawURL)
	}

	return &ScoopBackend{
		client: client,
		config: config,
	}, nil
}

// Lookup fetches the bucket manifest for rec's Scoop mapping
func (b *ScoopBackend) Lookup(ctx context.Context, rec catalog.Record) (*PackageInfo, error) {
	m := rec.Providers.Scoop
	if m == nil {
		return nil, ErrNotMapped
	}

	manifest, err := b.client.GetManifest(ctx, m.Bucket, m.PackageID)
	if err != nil {
		if errors.Is(err, scoop.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, m.Bucket, m.PackageID)
		}
		return nil, err
	}

	return &PackageInfo{
		ID:          m.PackageID,
		Name:        m.PackageID,
		Version:     manifest.Version,
		Description: manifest.Description,
		Homepage:    manifest.Homepage,
		License:     manifest.LicenseID(),
		Backend:     BackendScoop,
	}, nil
}

// Name returns the backend name
func (b *ScoopBackend) Name() BackendType {
	return BackendScoop
}

// Close cleans up resources
func (b *ScoopBackend) Close() error {
	return nil
}
