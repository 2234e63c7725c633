// Package ratefeed implements the external exchange rate lookup over HTTP.
package ratefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	portssvc "github.com/BekhzodS/china_shop_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// Client calls a JSON rate API of the form
// GET {base}/api/rates?from=CNY&to=RUB -> {"from":"CNY","to":"RUB","rate":"13.45"}.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a rate feed client. The timeout bounds the whole request;
// the feed is treated as unreliable and callers fall back on error.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ portssvc.RateFeed = (*Client)(nil)

type rateResponse struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}

// FetchRate retrieves the current from->to exchange rate.
func (c *Client) FetchRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if c.baseURL == "" {
		return decimal.Zero, fmt.Errorf("rate feed base URL is not configured")
	}

	endpoint := fmt.Sprintf("%s/api/rates?from=%s&to=%s", c.baseURL, url.QueryEscape(from), url.QueryEscape(to))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build rate feed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate feed returned status %d", resp.StatusCode)
	}

	var body rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode rate feed response: %w", err)
	}

	if body.Rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("rate feed returned non-positive rate %s for %s->%s", body.Rate, from, to)
	}

	return body.Rate, nil
}
