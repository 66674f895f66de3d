// Package exchangerate fetches USD-based currency conversion rates from
// exchangerate-api.com.
package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/goldify/goldify_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Client fetches exchange rates over HTTP with a bounded timeout.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an exchange rate client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type latestResponse struct {
	Result          string                     `json:"result"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
}

// FetchRates returns conversion rates from USD to every supported currency.
func (c *Client) FetchRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s/latest/USD", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build exchange rate request: %v", apperrors.ErrUpstream, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch exchange rates: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: exchange rate API returned %d", apperrors.ErrUpstream, resp.StatusCode)
	}

	var payload latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode exchange rate response: %v", apperrors.ErrUpstream, err)
	}
	if payload.Result != "success" {
		return nil, fmt.Errorf("%w: exchange rate API result %q", apperrors.ErrUpstream, payload.Result)
	}

	return payload.ConversionRates, nil
}
