package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// MaxCatalogSize caps how much of a remote catalog is read.
const MaxCatalogSize = 16 << 20

// Fetcher downloads catalogs over HTTP.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	logger     *log.Logger
}

// NewFetcher creates a fetcher with the given request timeout.
func NewFetcher(timeout time.Duration, logger *log.Logger) *Fetcher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "appanvil/1.0",
		logger:     logger,
	}
}

// Fetch downloads and parses the catalog at rawURL. The format follows the
// URL path extension and defaults to JSON.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Catalog, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog URL: %w", err)
	}

	format, err := FormatFromPath(u.Path)
	if err != nil {
		format = FormatJSON
	}

	f.logger.Printf("[catalog] Fetching %s (%s)", rawURL, format)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog request failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxCatalogSize))
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	c, err := Parse(data, format)
	if err != nil {
		return nil, err
	}

	f.logger.Printf("[catalog] Loaded %d records", c.Len())
	return c, nil
}
