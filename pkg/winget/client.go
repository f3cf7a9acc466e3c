package winget

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

// ErrNotFound is returned when the API has no package for an id.
var ErrNotFound = errors.New("winget package not found")

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *log.Logger
}

func NewClient(timeout time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: APIBaseURL,
		logger:  logger,
	}
}

// WithBaseURL points the client at another API root.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// GetPackage fetches details for a specific package ID directly
func (c *Client) GetPackage(ctx context.Context, id string) (*PackageEntry, error) {
	// Winget IDs are typically Publisher.Package.
	parts := strings.SplitN(id, ".", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid package ID format: %s (expected Publisher.Package)", id)
	}

	publisher := url.PathEscape(parts[0])
	packageName := url.PathEscape(parts[1])

	endpoint := fmt.Sprintf("%s/packages/%s/%s", c.baseURL, publisher, packageName)
	c.logger.Printf("[Winget API] Fetching Package: %s", endpoint)

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
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status: %d", resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// The API answers either { "Package": ... } or the bare entry.
	var wrapped struct {
		Package PackageEntry `json:"Package"`
	}
	if err := json.Unmarshal(bodyBytes, &wrapped); err == nil && wrapped.Package.ID != "" {
		return &wrapped.Package, nil
	}

	var entry PackageEntry
	if err := json.Unmarshal(bodyBytes, &entry); err == nil && entry.ID != "" {
		return &entry, nil
	}

	return nil, fmt.Errorf("failed to decode package response")
}
