package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/goldify/goldify_backend/internal/apperrors"
	"github.com/goldify/goldify_backend/internal/core/domain"
	"github.com/goldify/goldify_backend/internal/core/ports"
	portsrepo "github.com/goldify/goldify_backend/internal/core/ports/repositories"
	portssvc "github.com/goldify/goldify_backend/internal/core/ports/services"
	"github.com/goldify/goldify_backend/internal/platform/scheduler"
	"github.com/goldify/goldify_backend/internal/utils/countries"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const rateSource = "gold-api.com & exchangerate-api.com"

// GoldRateOptions tunes the rate engine's cache lifetimes and cadences.
type GoldRateOptions struct {
	RealtimeCacheTTL        time.Duration
	ExchangeCacheTTL        time.Duration
	RealtimeRefreshInterval time.Duration
	SnapshotSaveInterval    time.Duration

	// Clock overrides time.Now for deterministic TTL tests.
	Clock func() time.Time
}

func (o *GoldRateOptions) applyDefaults() {
	if o.RealtimeCacheTTL <= 0 {
		o.RealtimeCacheTTL = 4 * time.Second
	}
	if o.ExchangeCacheTTL <= 0 {
		o.ExchangeCacheTTL = 2 * time.Minute
	}
	if o.RealtimeRefreshInterval <= 0 {
		o.RealtimeRefreshInterval = 3 * time.Second
	}
	if o.SnapshotSaveInterval <= 0 {
		o.SnapshotSaveInterval = 6 * time.Minute
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
}

// GoldRateService combines the spot price and exchange rate feeds into
// per-country gold prices. It owns two in-process caches (the combined
// realtime result and the exchange rate table) and a durable snapshot trail.
type GoldRateService struct {
	spot         ports.SpotPriceFetcher
	exchange     ports.ExchangeRateFetcher
	snapshotRepo portsrepo.GoldRateRepositoryFacade
	logger       *slog.Logger
	opts         GoldRateOptions

	mu                sync.Mutex
	realtime          *domain.RateSnapshot
	realtimeFetchedAt time.Time
	exchangeCache     map[string]decimal.Decimal
	exchangeFetchedAt time.Time

	statsMu           sync.Mutex
	totalFetches      int64
	fetchesThisMinute int64
	lastFetch         time.Time
	minuteReset       time.Time
}

// NewGoldRateService creates the rate engine.
func NewGoldRateService(
	spot ports.SpotPriceFetcher,
	exchange ports.ExchangeRateFetcher,
	snapshotRepo portsrepo.GoldRateRepositoryFacade,
	logger *slog.Logger,
	opts GoldRateOptions,
) *GoldRateService {
	opts.applyDefaults()
	return &GoldRateService{
		spot:         spot,
		exchange:     exchange,
		snapshotRepo: snapshotRepo,
		logger:       logger,
		opts:         opts,
	}
}

var _ portssvc.GoldRateSvcFacade = (*GoldRateService)(nil)

// Tasks returns the two background jobs of the rate engine: the short-interval
// realtime cache refresh and the long-interval durable snapshot save.
func (s *GoldRateService) Tasks() []scheduler.Task {
	return []scheduler.Task{
		{
			Name:     "realtime-rate-refresh",
			Interval: s.opts.RealtimeRefreshInterval,
			Run: func(ctx context.Context) error {
				_, err := s.Refresh(ctx, false)
				return err
			},
		},
		{
			Name:     "rate-snapshot-save",
			Interval: s.opts.SnapshotSaveInterval,
			Run: func(ctx context.Context) error {
				_, err := s.Refresh(ctx, true)
				return err
			},
		},
	}
}

// GetLatestRates serves the realtime cache when it is younger than the
// realtime TTL; otherwise it recomputes synchronously (without persisting).
// When upstream is down and no cache exists, it falls back to the last
// durable snapshot.
func (s *GoldRateService) GetLatestRates(ctx context.Context) (*domain.RateSnapshot, string, error) {
	now := s.opts.Clock()

	s.mu.Lock()
	cached := s.realtime
	cachedAt := s.realtimeFetchedAt
	s.mu.Unlock()

	if cached != nil && now.Sub(cachedAt) < s.opts.RealtimeCacheTTL {
		return cached, "realtime-cache", nil
	}

	snapshot, err := s.compute(ctx)
	if err == nil {
		return snapshot, "realtime-fetch", nil
	}

	s.logger.Warn("Realtime rate fetch failed, trying database fallback", slog.String("error", err.Error()))

	// Serve the stale cache before touching the database: stale beats absent.
	if cached != nil {
		return cached, "realtime-cache", nil
	}

	stored, dbErr := s.snapshotRepo.FindLatestActive(ctx)
	if dbErr != nil {
		if errors.Is(dbErr, apperrors.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: %v", apperrors.ErrRateUnavailable, err)
		}
		return nil, "", fmt.Errorf("database fallback failed: %w", dbErr)
	}
	return stored, "database-fallback", nil
}

// GetRateForCountry resolves one currency's rate via the same
// cache-or-recompute path as GetLatestRates.
func (s *GoldRateService) GetRateForCountry(ctx context.Context, currencyCode string) (*domain.RateSnapshot, *domain.CountryRate, error) {
	code := strings.ToUpper(currencyCode)
	if _, ok := countries.Lookup(code); !ok {
		return nil, nil, fmt.Errorf("%w: no rate for currency %s", apperrors.ErrNotFound, code)
	}

	snapshot, _, err := s.GetLatestRates(ctx)
	if err != nil {
		return nil, nil, err
	}

	rate := snapshot.RateForCurrency(code)
	if rate == nil {
		return nil, nil, fmt.Errorf("%w: no rate for currency %s", apperrors.ErrNotFound, code)
	}
	return snapshot, rate, nil
}

// ListCountries returns the static country table.
func (s *GoldRateService) ListCountries() []countries.Country {
	return countries.All
}

// Refresh forces a recompute. With persist, the result becomes the single
// active durable snapshot, deactivating all prior ones.
func (s *GoldRateService) Refresh(ctx context.Context, persist bool) (*domain.RateSnapshot, error) {
	snapshot, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if persist {
		stored := *snapshot
		stored.SnapshotID = uuid.NewString()
		if err := s.snapshotRepo.SaveSnapshot(ctx, stored); err != nil {
			return nil, fmt.Errorf("failed to persist rate snapshot: %w", err)
		}
		s.logger.Info("Gold rate snapshot saved",
			slog.String("snapshot_id", stored.SnapshotID),
			slog.String("spot_usd", stored.SpotUSD.String()),
		)
		return &stored, nil
	}
	return snapshot, nil
}

// Stats reports the upstream fetch counters.
func (s *GoldRateService) Stats() domain.FetchStats {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	stats := domain.FetchStats{
		TotalFetches:      s.totalFetches,
		FetchesThisMinute: s.fetchesThisMinute,
	}
	if !s.lastFetch.IsZero() {
		t := s.lastFetch
		stats.LastFetch = &t
	}
	return stats
}

// GetRateHistory returns persisted snapshots for a lookback period plus chart
// points; with a currency the points carry that currency's derived rates.
func (s *GoldRateService) GetRateHistory(ctx context.Context, period, currencyCode string, limit int) ([]domain.RateSnapshot, []domain.RateHistoryPoint, error) {
	lookback, ok := map[string]time.Duration{
		"1h":  time.Hour,
		"6h":  6 * time.Hour,
		"12h": 12 * time.Hour,
		"24h": 24 * time.Hour,
		"7d":  7 * 24 * time.Hour,
		"30d": 30 * 24 * time.Hour,
	}[period]
	if !ok {
		lookback = 24 * time.Hour
	}
	if limit <= 0 {
		limit = 100
	}

	since := s.opts.Clock().Add(-lookback)
	snapshots, err := s.snapshotRepo.FindSince(ctx, since, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load rate history: %w", err)
	}

	code := strings.ToUpper(currencyCode)
	// Chart points run oldest first.
	points := make([]domain.RateHistoryPoint, 0, len(snapshots))
	for i := len(snapshots) - 1; i >= 0; i-- {
		snap := snapshots[i]
		point := domain.RateHistoryPoint{
			Timestamp:   snap.FetchedAt,
			SpotUSD:     snap.SpotUSD,
			BaseUSDTola: snap.BaseUSDTola,
		}
		if code != "" {
			if rate := snap.RateForCurrency(code); rate != nil {
				point.RatePerTola = &rate.RatePerTola
				point.RatePerGram = &rate.RatePerGram
				point.RatePerOunce = &rate.RatePerOunce
				point.ExchangeRate = &rate.ExchangeRate
			}
		}
		points = append(points, point)
	}
	return snapshots, points, nil
}

// compute fetches both feeds and derives the full per-country snapshot,
// updating the realtime cache on success.
func (s *GoldRateService) compute(ctx context.Context) (*domain.RateSnapshot, error) {
	spot, err := s.spot.FetchSpotPrice(ctx)
	if err != nil {
		return nil, err
	}
	s.recordFetch()

	rates, err := s.fetchExchangeRates(ctx)
	if err != nil {
		return nil, err
	}

	now := s.opts.Clock()
	baseUSDTola := spot.USDPerOunce.Mul(domain.TolaGrams).Div(domain.OunceGrams)

	countryRates := make([]domain.CountryRate, 0, len(countries.All))
	for _, country := range countries.All {
		exchangeRate, ok := rates[country.CurrencyCode]
		if !ok {
			// Degraded but non-fatal: price the currency at par with USD.
			exchangeRate = decimal.NewFromInt(1)
		}
		ratePerTola := baseUSDTola.Mul(exchangeRate)
		countryRates = append(countryRates, domain.CountryRate{
			Country:      country.Name,
			CurrencyCode: country.CurrencyCode,
			Symbol:       country.Symbol,
			RatePerTola:  ratePerTola,
			RatePerGram:  ratePerTola.Div(domain.TolaGrams),
			RatePerOunce: spot.USDPerOunce.Mul(exchangeRate),
			ExchangeRate: exchangeRate,
		})
	}

	snapshot := &domain.RateSnapshot{
		SpotUSD:       spot.USDPerOunce,
		BaseUSDTola:   baseUSDTola,
		ExchangeRates: rates,
		CountryRates:  countryRates,
		FetchedAt:     now,
		Source:        rateSource,
		IsActive:      true,
	}

	s.mu.Lock()
	s.realtime = snapshot
	s.realtimeFetchedAt = now
	s.mu.Unlock()

	return snapshot, nil
}

// fetchExchangeRates serves the exchange cache while it is younger than the
// exchange TTL. On upstream failure it serves the stale cache; the error only
// surfaces when no cache has ever been populated.
func (s *GoldRateService) fetchExchangeRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	now := s.opts.Clock()

	s.mu.Lock()
	cached := s.exchangeCache
	cachedAt := s.exchangeFetchedAt
	s.mu.Unlock()

	if cached != nil && now.Sub(cachedAt) < s.opts.ExchangeCacheTTL {
		return cached, nil
	}

	rates, err := s.exchange.FetchRates(ctx)
	if err != nil {
		if cached != nil {
			s.logger.Warn("Exchange rate fetch failed, using cached rates", slog.String("error", err.Error()))
			return cached, nil
		}
		return nil, err
	}

	s.mu.Lock()
	s.exchangeCache = rates
	s.exchangeFetchedAt = now
	s.mu.Unlock()

	return rates, nil
}

func (s *GoldRateService) recordFetch() {
	now := s.opts.Clock()

	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	s.totalFetches++
	if now.Sub(s.minuteReset) > time.Minute {
		s.fetchesThisMinute = 1
		s.minuteReset = now
	} else {
		s.fetchesThisMinute++
	}
	s.lastFetch = now
}
