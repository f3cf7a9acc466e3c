package backend

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/arc-language/appanvil/pkg/catalog"
)

// BackendType represents the package manager backend
type BackendType = catalog.Provider

const (
	// BackendWinget looks packages up in the winget.run API
	BackendWinget = catalog.ProviderWinget
	// BackendChoco looks packages up in the Chocolatey community feed
	BackendChoco = catalog.ProviderChoco
	// BackendScoop looks packages up in the official Scoop buckets
	BackendScoop = catalog.ProviderScoop
)

var (
	// ErrNotFound indicates the provider has no package for a mapping
	ErrNotFound = errors.New("package not found")

	// ErrNotMapped indicates the record has no mapping for the backend
	ErrNotMapped = errors.New("record has no mapping for this provider")
)

// Backend looks up the package a catalog record maps to for one provider.
type Backend interface {
	// Lookup retrieves the provider's metadata for rec's mapping
	Lookup(ctx context.Context, rec catalog.Record) (*PackageInfo, error)

	// Name returns the provider this backend serves
	Name() BackendType

	// Close cleans up resources
	Close() error
}

// PackageInfo contains metadata about a package
type PackageInfo struct {
	ID          string // Provider package id
	Name        string // Display name
	Version     string // Latest version
	Description string
	Homepage    string
	License     string
	Backend     BackendType
}

// Config holds configuration for the verification backends
type Config struct {
	// Timeout for network operations
	Timeout time.Duration

	// Debug enables debug logging
	Debug bool

	// Logger for custom logging
	Logger *log.Logger

	// WingetAPIURL overrides the winget.run API root
	WingetAPIURL string

	// ChocoRepositoryURL overrides the Chocolatey feed
	ChocoRepositoryURL string

	// ScoopRawURL overrides the raw content host for Scoop buckets
	ScoopRawURL string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}

// New creates the backend for t.
func New(t BackendType, config *Config) (Backend, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch t {
	case BackendWinget:
		return NewWingetBackend(config)
	case BackendChoco:
		return NewChocoBackend(config)
	case BackendScoop:
		return NewScoopBackend(config)
	}
	return nil, errors.New("unsupported backend type: " + string(t))
}

// NewAll creates one backend per provider in catalog.AllProviders.
func NewAll(config *Config) ([]Backend, error) {
	backends := make([]Backend, 0, len(catalog.AllProviders))
	for _, t := range catalog.AllProviders {
		b, err := New(t, config)
		if err != nil {
			return nil, err
		}
		backends = append(backends, b)
	}
	return backends, nil
}
