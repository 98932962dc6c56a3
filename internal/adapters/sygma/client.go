package sygma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
)

const requestTimeout = 30 * time.Second

// Client talks to the bridge's shared configuration and indexer services
type Client struct {
	httpClient *http.Client
	overrides  config.Endpoints
	log        *slog.Logger
}

// NewClient creates a new bridge services client
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	var overrides config.Endpoints
	if cfg.Multichain != nil {
		overrides = cfg.Multichain.Endpoints
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		overrides: overrides,
		log:       log.With("component", "sygma"),
	}
}

func (c *Client) endpoints(env domain.Environment) (Endpoints, error) {
	return ResolveEndpoints(env, c.overrides)
}

// getJSON fetches url and decodes the body into out. A 404 maps to
// domain.ErrNotFound.
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug("GET", "url", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	c.log.Debug("response", "url", url, "status", resp.StatusCode, "bytes", len(body))

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", url, domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
