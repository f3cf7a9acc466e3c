package choco

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"strings"
	"time"
)

// ErrNotFound is returned when the feed has no package for an id.
var ErrNotFound = errors.New("chocolatey package not found")

// Repository looks up package metadata in a NuGet v2 feed.
type Repository struct {
	client *Client
	config *Config
	logger *log.Logger
}

// NewRepository creates a repository client, filling config defaults.
func NewRepository(cfg *Config) *Repository {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.RepositoryURL == "" {
		cfg.RepositoryURL = DefaultRepositoryURL
	}
	cfg.RepositoryURL = strings.TrimRight(cfg.RepositoryURL, "/")
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Minute
	}

	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stderr, "[CHOCO] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	return &Repository{
		client: NewClientWithTimeout(cfg.Timeout),
		config: cfg,
		logger: logger,
	}
}

// GetPackageInfo retrieves the latest version of packageID.
func (r *Repository) GetPackageInfo(ctx context.Context, packageID string) (*PackageInfo, error) {
	id := strings.ReplaceAll(strings.ToLower(packageID), "'", "''")
	filter := fmt.Sprintf("(tolower(Id) eq '%s') and IsLatestVersion", id)
	endpoint := fmt.Sprintf("%s/Packages()?$filter=%s&$top=1", r.config.RepositoryURL, url.QueryEscape(filter))

	r.logger.Printf("Fetching package metadata: %s", endpoint)

	resp, err := r.client.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetching package info: %w", err)
	}
	defer resp.Body.Close()

	packages, err := ParseFeed(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing package info: %w", err)
	}

	if len(packages) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, packageID)
	}

	return packages[0], nil
}
