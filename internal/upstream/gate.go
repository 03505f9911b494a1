package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// GateClient calls the external account-check API. The proxy relays its
// status and body verbatim, so Check returns both untouched.
type GateClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewGateClient creates an account-check client. The API key is sent as the
// X-API-KEY header.
func NewGateClient(baseURL, apiKey string, timeout time.Duration) *GateClient {
	return &GateClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Check forwards an account check and returns the upstream status code and
// raw body. serverID is optional and omitted from the query when empty.
func (c *GateClient) Check(ctx context.Context, game, userID, serverID string) (int, []byte, error) {
	query := url.Values{}
	query.Set("game", game)
	query.Set("user_id", userID)
	if serverID != "" {
		query.Set("server_id", serverID)
	}

	endpoint := fmt.Sprintf("%s/check?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build check request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("check request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read check response: %w", err)
	}

	return resp.StatusCode, body, nil
}
