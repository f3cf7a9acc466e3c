package scoop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a bucket has no manifest for an app.
	ErrNotFound = errors.New("scoop manifest not found")

	// ErrUnknownBucket is returned for buckets outside KnownBuckets.
	ErrUnknownBucket = errors.New("unknown scoop bucket")
)

// Manifest is the subset of a Scoop app manifest we read.
type Manifest struct {
	Version     string          `json:"version"`
	Description string          `json:"description"`
	Homepage    string          `json:"homepage"`
	License     json.RawMessage `json:"license"` // string or {identifier, url}
}

// LicenseID returns the SPDX identifier of the manifest license.
func (m *Manifest) LicenseID() string {
	if len(m.License) == 0 {
		return ""
	}
	var id string
	if err := json.Unmarshal(m.License, &id); err == nil {
		return id
	}
	var obj struct {
		Identifier string `json:"identifier"`
	}
	if err := json.Unmarshal(m.License, &obj); err == nil {
		return obj.Identifier
	}
	return ""
}

// Client fetches manifests from bucket repositories on GitHub.
type Client struct {
	httpClient *http.Client
	baseURL    string
	branch     string
	logger     *log.Logger
}

func NewClient(timeout time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    RawBaseURL,
		branch:     "master",
		logger:     logger,
	}
}

// WithBaseURL points the client at another raw-content host.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// GetManifest fetches the manifest of app in bucket.
func (c *Client) GetManifest(ctx context.Context, bucket, app string) (*Manifest, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}
	repo, ok := KnownBuckets[strings.ToLower(bucket)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBucket, bucket)
	}

	endpoint := fmt.Sprintf("%s/%s/%s/bucket/%s.json", c.baseURL, repo, c.branch, url.PathEscape(app))
	c.logger.Printf("[Scoop] Fetching Manifest: %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, bucket, app)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("manifest request failed with status: %d", resp.StatusCode)
	}

	var manifest Manifest
	if err := json.NewDecoder(resp.Body).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}

	return &manifest, nil
}
