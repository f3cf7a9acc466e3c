// Package core holds the appanvil configuration file.
package core

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/arc-language/appanvil/pkg/catalog"
	"github.com/arc-language/appanvil/pkg/plan"
)

// Config holds appanvil configuration
type Config struct {
	CatalogPath   string       `yaml:"catalog_path"`
	CatalogURL    string       `yaml:"catalog_url"`
	CatalogRepo   string       `yaml:"catalog_repo"`
	CatalogBranch string       `yaml:"catalog_branch"`
	CachePath     string       `yaml:"cache_path"`
	ShareBaseURL  string       `yaml:"share_base_url"`
	Debug         bool         `yaml:"debug"`
	Defaults      plan.Options `yaml:"defaults"`
}

// DefaultShareBaseURL is where share links point when none is configured.
const DefaultShareBaseURL = "https://appanvil.dev/"

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	cfg := &Config{
		CatalogRepo:   catalog.DefaultRepoURL,
		CatalogBranch: catalog.DefaultRepoBranch,
		CachePath:     getDefaultCachePath(),
		ShareBaseURL:  DefaultShareBaseURL,
		Debug:         false,
		Defaults:      plan.DefaultOptions(),
	}
	applyEnv(cfg)
	return cfg
}

// DefaultPath returns $HOME/.config/appanvil/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "appanvil", "config.yaml"), nil
}

// LoadConfig loads configuration from file. Keys absent from the file keep
// their defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	applyEnv(cfg)

	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// CatalogSource returns the catalog location to load, in priority order:
// explicit path, URL, then the synced cache. It returns "" when nothing is
// configured or cached.
func (c *Config) CatalogSource() string {
	switch {
	case c.CatalogPath != "":
		return c.CatalogPath
	case c.CatalogURL != "":
		return c.CatalogURL
	}
	if p, ok := catalog.CachedPath(c.CachePath); ok {
		return p
	}
	return ""
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("APPANVIL_CATALOG"); v != "" {
		cfg.CatalogPath = v
	}
	if v := os.Getenv("APPANVIL_CACHE_PATH"); v != "" {
		cfg.CachePath = v
	}
}

func getDefaultCachePath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "appanvil")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "appanvil")
	}

	return filepath.Join(home, ".appanvil")
}
