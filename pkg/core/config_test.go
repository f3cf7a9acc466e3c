package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/appanvil/pkg/catalog"
	"github.com/arc-language/appanvil/pkg/plan"
)

func TestLoadConfig_MissingFileGivesDefaults(t *testing.T) {
	t.Setenv("APPANVIL_CATALOG", "")
	t.Setenv("APPANVIL_CACHE_PATH", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, plan.DefaultOptions(), cfg.Defaults)
	assert.Equal(t, catalog.DefaultRepoURL, cfg.CatalogRepo)
	assert.Equal(t, DefaultShareBaseURL, cfg.ShareBaseURL)
	assert.NotEmpty(t, cfg.CachePath)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv("APPANVIL_CATALOG", "")
	t.Setenv("APPANVIL_CACHE_PATH", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog_path: /srv/apps.yaml\ndefaults:\n  silent_install: false\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/apps.yaml", cfg.CatalogPath)
	assert.False(t, cfg.Defaults.SilentInstall)
	assert.True(t, cfg.Defaults.ContinueOnError)
	assert.Equal(t, catalog.DefaultRepoBranch, cfg.CatalogBranch)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APPANVIL_CATALOG", "/env/apps.json")
	t.Setenv("APPANVIL_CACHE_PATH", "/env/cache")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog_path: /file/apps.json\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/env/apps.json", cfg.CatalogPath)
	assert.Equal(t, "/env/cache", cfg.CachePath)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: [unclosed"), 0644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	t.Setenv("APPANVIL_CATALOG", "")
	t.Setenv("APPANVIL_CACHE_PATH", "")

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.CatalogURL = "https://example.test/apps.json"
	cfg.Defaults.IncludeMsStoreApps = true

	require.NoError(t, SaveConfig(cfg, path))
	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestCatalogSource(t *testing.T) {
	cache := t.TempDir()
	cfg := &Config{CachePath: cache}
	assert.Equal(t, "", cfg.CatalogSource())

	require.NoError(t, os.WriteFile(filepath.Join(cache, "apps.json"), []byte("[]"), 0644))
	assert.Equal(t, filepath.Join(cache, "apps.json"), cfg.CatalogSource())

	cfg.CatalogURL = "https://example.test/apps.json"
	assert.Equal(t, cfg.CatalogURL, cfg.CatalogSource())

	cfg.CatalogPath = "local.yaml"
	assert.Equal(t, "local.yaml", cfg.CatalogSource())
}
