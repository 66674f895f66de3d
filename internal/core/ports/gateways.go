// Package ports defines the boundaries between the core services and the
// outside world: upstream price feeds here, storage and service facades in
// the repositories and services sub-packages.
package ports

import (
	"context"

	"github.com/goldify/goldify_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SpotPriceFetcher fetches the current spot gold price.
// Failures wrap apperrors.ErrUpstream.
type SpotPriceFetcher interface {
	FetchSpotPrice(ctx context.Context) (domain.SpotPrice, error)
}

// ExchangeRateFetcher fetches USD-based currency exchange rates.
// Failures wrap apperrors.ErrUpstream.
type ExchangeRateFetcher interface {
	FetchRates(ctx context.Context) (map[string]decimal.Decimal, error)
}
