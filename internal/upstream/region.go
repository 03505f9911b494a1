package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// RegionClient calls the external region-lookup API. No auth is required by
// that service.
type RegionClient struct {
	baseURL string
	http    *http.Client
}

// NewRegionClient creates a region-lookup client.
func NewRegionClient(baseURL string, timeout time.Duration) *RegionClient {
	return &RegionClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Lookup queries the region API for a user/server pair. The upstream field
// types are loose (ids arrive as strings or numbers), so the decoded body is
// returned as an open map for the caller to reshape.
func (c *RegionClient) Lookup(ctx context.Context, game, userID, serverID string) (map[string]interface{}, error) {
	query := url.Values{}
	query.Set("user_id", userID)
	query.Set("server_id", serverID)

	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, url.PathEscape(game), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build region request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("region request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("region API returned status %d", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode region response: %w", err)
	}

	return body, nil
}
