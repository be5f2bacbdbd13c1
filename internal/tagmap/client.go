// Package tagmap talks to the external tag mapping service. The service
// owns the canonical tag vocabulary; the pipeline fetches the full
// original→mapped table once per run. The service being down is an expected
// condition and every failure mode here reduces to "no mappings available".
package tagmap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ignite/constituent-reconciler/internal/pkg/httpretry"
)

// Client is the tag mapping service API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpretry.HTTPDoer
}

// NewClient creates a new tag mapping service client.
func NewClient(config Config) *Client {
	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		apiKey:  config.APIKey,
		httpClient: httpretry.NewRetryClient(&http.Client{
			Timeout: timeout,
		}, config.MaxRetries),
	}
}

// SetHTTPClient sets a custom HTTP client (useful for testing).
func (c *Client) SetHTTPClient(client httpretry.HTTPDoer) {
	c.httpClient = client
}

// FetchMapping retrieves the full tag mapping table. Blank originals are
// dropped; duplicate originals keep the first entry.
func (c *Client) FetchMapping(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/tag-mappings", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var payload mappingResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode mapping response: %w", err)
	}

	mapping := make(map[string]string, len(payload.Mappings))
	for _, m := range payload.Mappings {
		original := strings.TrimSpace(m.Original)
		if original == "" {
			continue
		}
		if _, dup := mapping[original]; dup {
			continue
		}
		mapping[original] = strings.TrimSpace(m.Mapped)
	}
	return mapping, nil
}
