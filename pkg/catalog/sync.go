package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

const (
	// DefaultRepoURL hosts the published catalog.
	DefaultRepoURL = "https://github.com/arc-language/appanvil"
	// DefaultRepoBranch is the branch the catalog is read from.
	DefaultRepoBranch = "main"
)

// catalogCandidates are the repository paths searched for a catalog file, in
// order.
var catalogCandidates = []string{
	filepath.Join("catalog", "apps.json"),
	filepath.Join("catalog", "apps.yaml"),
	filepath.Join("catalog", "apps.toml"),
	filepath.Join("public", "data", "apps.json"),
}

// SyncOptions configures Sync.
type SyncOptions struct {
	RepoURL  string // default DefaultRepoURL
	Branch   string // default DefaultRepoBranch
	CacheDir string // required
	Progress io.Writer
	Logger   *log.Logger
}

// Sync shallow-clones the catalog repository and copies its catalog file into
// the cache directory, returning the cached path.
func Sync(ctx context.Context, opts SyncOptions) (string, error) {
	if opts.CacheDir == "" {
		return "", fmt.Errorf("cache directory is required")
	}
	if opts.RepoURL == "" {
		opts.RepoURL = DefaultRepoURL
	}
	if opts.Branch == "" {
		opts.Branch = DefaultRepoBranch
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	tempDir, err := os.MkdirTemp("", "appanvil-clone-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	logger.Printf("[catalog] Cloning %s (%s)", opts.RepoURL, opts.Branch)

	_, err = git.PlainCloneContext(ctx, tempDir, false, &git.CloneOptions{
		URL:           opts.RepoURL,
		ReferenceName: plumbing.NewBranchReferenceName(opts.Branch),
		SingleBranch:  true,
		Depth:         1,
		Progress:      opts.Progress,
	})
	if err != nil {
		return "", fmt.Errorf("git clone failed: %w", err)
	}

	for _, candidate := range catalogCandidates {
		src := filepath.Join(tempDir, candidate)
		if _, err := os.Stat(src); err != nil {
			continue
		}

		// Parse before replacing the cached copy so a bad upstream catalog
		// never overwrites a good one.
		if _, err := Load(src); err != nil {
			return "", fmt.Errorf("validating synced catalog: %w", err)
		}

		if err := os.MkdirAll(opts.CacheDir, 0755); err != nil {
			return "", fmt.Errorf("creating cache dir: %w", err)
		}
		dst := filepath.Join(opts.CacheDir, "apps"+filepath.Ext(src))
		if err := copyFile(src, dst); err != nil {
			return "", fmt.Errorf("copying catalog: %w", err)
		}

		logger.Printf("[catalog] Cached %s", dst)
		return dst, nil
	}

	return "", fmt.Errorf("no catalog file found in %s", opts.RepoURL)
}

// CachedPath returns the catalog previously stored by Sync in cacheDir.
func CachedPath(cacheDir string) (string, bool) {
	for _, ext := range []string{".json", ".yaml", ".toml"} {
		path := filepath.Join(cacheDir, "apps"+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
