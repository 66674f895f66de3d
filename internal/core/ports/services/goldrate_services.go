package services

import (
	"context"

	"github.com/goldify/goldify_backend/internal/core/domain"
	"github.com/goldify/goldify_backend/internal/utils/countries"
)

// GoldRateReaderSvc defines the read side of the rate engine.
type GoldRateReaderSvc interface {
	// GetLatestRates serves the realtime cache when fresh, recomputes when
	// stale and falls back to the last durable snapshot when upstream is
	// down. The returned source is one of "realtime-cache", "realtime-fetch"
	// or "database-fallback".
	GetLatestRates(ctx context.Context) (*domain.RateSnapshot, string, error)

	// GetRateForCountry resolves the rate for one currency via the same
	// cache-or-recompute path. Returns apperrors.ErrNotFound for a currency
	// outside the country table.
	GetRateForCountry(ctx context.Context, currencyCode string) (*domain.RateSnapshot, *domain.CountryRate, error)

	// ListCountries returns the static country/currency table.
	ListCountries() []countries.Country

	// GetRateHistory returns persisted snapshots for a lookback period
	// ("1h", "6h", "12h", "24h", "7d", "30d") plus chart points; when a
	// currency is given the chart points carry that currency's rates.
	GetRateHistory(ctx context.Context, period, currencyCode string, limit int) ([]domain.RateSnapshot, []domain.RateHistoryPoint, error)

	// Stats reports upstream fetch counters.
	Stats() domain.FetchStats
}

// GoldRateRefresherSvc defines the write side of the rate engine.
type GoldRateRefresherSvc interface {
	// Refresh forces a recompute from upstream. With persist, the result is
	// stored as the single active durable snapshot.
	Refresh(ctx context.Context, persist bool) (*domain.RateSnapshot, error)
}

// GoldRateSvcFacade combines the rate engine interfaces.
type GoldRateSvcFacade interface {
	GoldRateReaderSvc
	GoldRateRefresherSvc
}
