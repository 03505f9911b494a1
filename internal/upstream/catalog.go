// Package upstream holds the HTTP clients for the three external APIs this
// system talks to: the game catalog, the account-check gate, and the
// region-lookup service. Every client carries a fixed request timeout so an
// upstream hang cannot stall a job or a request.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// CatalogClient calls the external game-catalog API.
type CatalogClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewCatalogClient creates a catalog API client. The API key is sent as the
// x-api-key header on every request.
func NewCatalogClient(baseURL, apiKey string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// gamesEnvelope is the upstream list response: {data:{games:[...]}}.
type gamesEnvelope struct {
	Data struct {
		Games []map[string]interface{} `json:"games"`
	} `json:"data"`
}

// FetchGames fetches the full game list in one call.
func (c *CatalogClient) FetchGames(ctx context.Context) ([]map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/games", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("catalog API returned status %d", resp.StatusCode)
	}

	var envelope gamesEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return envelope.Data.Games, nil
}

// FetchGameDetail fetches one game's detail payload. Returns the `data`
// subtree and the full verbatim response body. A 2xx response without a
// `data` field returns (nil, body, nil); callers treat that as a skip.
func (c *CatalogClient) FetchGameDetail(ctx context.Context, slug string) (map[string]interface{}, map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/game/%s", c.baseURL, url.PathEscape(slug))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build detail request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("detail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, nil, fmt.Errorf("catalog API returned status %d for %s", resp.StatusCode, slug)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, nil, fmt.Errorf("failed to decode detail response for %s: %w", slug, err)
	}

	data, _ := body["data"].(map[string]interface{})
	return data, body, nil
}
