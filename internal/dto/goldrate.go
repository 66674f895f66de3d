package dto

import (
	"time"

	"github.com/goldify/goldify_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LatestRatesResponse is the envelope for the latest-rates endpoint.
// Source reports where the data came from: "realtime-cache",
// "realtime-fetch" or "database-fallback".
type LatestRatesResponse struct {
	Success bool                 `json:"success"`
	Data    *domain.RateSnapshot `json:"data"`
	Source  string               `json:"source"`
	Stats   domain.FetchStats    `json:"stats"`
}

// CountryRateResponse is a single country's rate plus the underlying spot price.
type CountryRateResponse struct {
	domain.CountryRate
	SpotUSD   decimal.Decimal `json:"goldXAUUSD"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// RateHistoryResponse carries persisted snapshots plus chart points for a period.
type RateHistoryResponse struct {
	Success   bool                      `json:"success"`
	Count     int                       `json:"count"`
	Period    string                    `json:"period"`
	Currency  string                    `json:"currency,omitempty"`
	Data      []domain.RateSnapshot     `json:"data"`
	ChartData []domain.RateHistoryPoint `json:"chartData"`
}
