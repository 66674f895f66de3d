// Package goldapi fetches the spot gold price (XAU/USD) from api.gold-api.com.
package goldapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goldify/goldify_backend/internal/apperrors"
	"github.com/goldify/goldify_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Client fetches the spot price over HTTP with a bounded timeout.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a spot price client. The timeout bounds each fetch; a
// timed-out fetch is treated the same as any other upstream failure.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type priceResponse struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Symbol    string          `json:"symbol"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// FetchSpotPrice returns the current USD price per troy ounce of gold.
func (c *Client) FetchSpotPrice(ctx context.Context) (domain.SpotPrice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return domain.SpotPrice{}, fmt.Errorf("%w: build spot price request: %v", apperrors.ErrUpstream, err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.SpotPrice{}, fmt.Errorf("%w: fetch spot price: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.SpotPrice{}, fmt.Errorf("%w: gold API returned %d: %s", apperrors.ErrUpstream, resp.StatusCode, string(body))
	}

	var payload priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.SpotPrice{}, fmt.Errorf("%w: decode spot price response: %v", apperrors.ErrUpstream, err)
	}
	if payload.Price.IsZero() {
		return domain.SpotPrice{}, fmt.Errorf("%w: gold API returned no price", apperrors.ErrUpstream)
	}

	asOf := payload.UpdatedAt
	if asOf.IsZero() {
		asOf = time.Now()
	}
	return domain.SpotPrice{USDPerOunce: payload.Price, AsOf: asOf}, nil
}
