package services_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/goldify/goldify_backend/internal/apperrors"
	"github.com/goldify/goldify_backend/internal/core/domain"
	"github.com/goldify/goldify_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// stubSpotFetcher answers with a fixed price and counts calls.
type stubSpotFetcher struct {
	mu    sync.Mutex
	price decimal.Decimal
	err   error
	calls int
}

func (s *stubSpotFetcher) FetchSpotPrice(ctx context.Context) (domain.SpotPrice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return domain.SpotPrice{}, s.err
	}
	s.calls++
	return domain.SpotPrice{USDPerOunce: s.price, AsOf: time.Now()}, nil
}

func (s *stubSpotFetcher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubSpotFetcher) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// stubExchangeFetcher answers with a fixed rate table and counts calls.
type stubExchangeFetcher struct {
	mu    sync.Mutex
	rates map[string]decimal.Decimal
	err   error
	calls int
}

func (s *stubExchangeFetcher) FetchRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.calls++
	return s.rates, nil
}

func (s *stubExchangeFetcher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubExchangeFetcher) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// fakeSnapshotRepo keeps persisted snapshots in memory, newest first.
type fakeSnapshotRepo struct {
	mu        sync.Mutex
	snapshots []domain.RateSnapshot
}

func (f *fakeSnapshotRepo) SaveSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.snapshots {
		f.snapshots[i].IsActive = false
	}
	snapshot.IsActive = true
	f.snapshots = append([]domain.RateSnapshot{snapshot}, f.snapshots...)
	return nil
}

func (f *fakeSnapshotRepo) FindLatestActive(ctx context.Context) (*domain.RateSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.snapshots {
		if f.snapshots[i].IsActive {
			out := f.snapshots[i]
			return &out, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeSnapshotRepo) FindSince(ctx context.Context, since time.Time, limit int) ([]domain.RateSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.RateSnapshot
	for _, snap := range f.snapshots {
		if !snap.FetchedAt.Before(since) {
			out = append(out, snap)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type GoldRateServiceTestSuite struct {
	suite.Suite
	spot     *stubSpotFetcher
	exchange *stubExchangeFetcher
	repo     *fakeSnapshotRepo
	clock    time.Time
	service  *services.GoldRateService
	ctx      context.Context
}

func (suite *GoldRateServiceTestSuite) SetupTest() {
	suite.spot = &stubSpotFetcher{price: decimal.RequireFromString("311.035")}
	suite.exchange = &stubExchangeFetcher{rates: map[string]decimal.Decimal{
		"PKR": decimal.RequireFromString("280"),
		"USD": decimal.RequireFromString("1"),
	}}
	suite.repo = &fakeSnapshotRepo{}
	suite.clock = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	suite.service = services.NewGoldRateService(
		suite.spot,
		suite.exchange,
		suite.repo,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		services.GoldRateOptions{Clock: func() time.Time { return suite.clock }},
	)
	suite.ctx = context.Background()
}

func (suite *GoldRateServiceTestSuite) advance(d time.Duration) {
	suite.clock = suite.clock.Add(d)
}

func (suite *GoldRateServiceTestSuite) TestGetLatestRates_DerivesCountryRates() {
	snapshot, source, err := suite.service.GetLatestRates(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal("realtime-fetch", source)
	// 311.035 USD/oz is exactly 10 USD/g, so 116.64 USD per tola.
	suite.Equal("116.64", snapshot.BaseUSDTola.StringFixed(2))

	pkr := snapshot.RateForCurrency("PKR")
	suite.Require().NotNil(pkr)
	suite.Equal("32659.20", pkr.RatePerTola.StringFixed(2))
	suite.Equal("2800.00", pkr.RatePerGram.StringFixed(2))
	suite.Equal("87089.80", pkr.RatePerOunce.StringFixed(2))

	// Currencies absent from the exchange table are priced at par with USD.
	aed := snapshot.RateForCurrency("AED")
	suite.Require().NotNil(aed)
	suite.Equal("1", aed.ExchangeRate.String())
	suite.True(aed.RatePerTola.Equal(snapshot.BaseUSDTola))
}

func (suite *GoldRateServiceTestSuite) TestGetLatestRates_RealtimeCacheTTL() {
	_, source, err := suite.service.GetLatestRates(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal("realtime-fetch", source)
	suite.Equal(1, suite.spot.callCount())

	suite.advance(3 * time.Second)
	_, source, err = suite.service.GetLatestRates(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal("realtime-cache", source)
	suite.Equal(1, suite.spot.callCount())

	suite.advance(2 * time.Second)
	_, source, err = suite.service.GetLatestRates(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal("realtime-fetch", source)
	suite.Equal(2, suite.spot.callCount())
}

func (suite *GoldRateServiceTestSuite) TestExchangeCacheOutlivesRealtimeCache() {
	_, _, err := suite.service.GetLatestRates(suite.ctx)
	suite.Require().NoError(err)

	// Several realtime recomputes inside the exchange TTL reuse the table.
	for i := 0; i < 3; i++ {
		suite.advance(5 * time.Second)
		_, _, err = suite.service.GetLatestRates(suite.ctx)
		suite.Require().NoError(err)
	}
	suite.Equal(4, suite.spot.callCount())
	suite.Equal(1, suite.exchange.callCount())

	suite.advance(3 * time.Minute)
	_, _, err = suite.service.GetLatestRates(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(2, suite.exchange.callCount())
}

func (suite *GoldRateServiceTestSuite) TestExchangeFailureServesStaleTable() {
	_, _, err := suite.service.GetLatestRates(suite.ctx)
	suite.Require().NoError(err)

	suite.exchange.fail(apperrors.ErrUpstream)
	suite.advance(3 * time.Minute)

	snapshot, source, err := suite.service.GetLatestRates(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal("realtime-fetch", source)
	pkr := snapshot.RateForCurrency("PKR")
	suite.Require().NotNil(pkr)
	suite.Equal("280", pkr.ExchangeRate.String())
}

func (suite *GoldRateServiceTestSuite) TestSpotFailureServesStaleRealtimeCache() {
	first, _, err := suite.service.GetLatestRates(suite.ctx)
	suite.Require().NoError(err)

	suite.spot.fail(apperrors.ErrUpstream)
	suite.advance(10 * time.Second)

	snapshot, source, err := suite.service.GetLatestRates(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal("realtime-cache", source)
	suite.True(snapshot.FetchedAt.Equal(first.FetchedAt))
}

func (suite *GoldRateServiceTestSuite) TestSpotFailureFallsBackToDatabase() {
	stored := domain.RateSnapshot{
		SnapshotID:  "stored",
		SpotUSD:     decimal.RequireFromString("300"),
		BaseUSDTola: decimal.RequireFromString("112.50"),
		FetchedAt:   suite.clock.Add(-time.Hour),
	}
	suite.Require().NoError(suite.repo.SaveSnapshot(suite.ctx, stored))

	suite.spot.fail(apperrors.ErrUpstream)

	snapshot, source, err := suite.service.GetLatestRates(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal("database-fallback", source)
	suite.Equal("stored", snapshot.SnapshotID)
}

func (suite *GoldRateServiceTestSuite) TestAllSourcesDown() {
	suite.spot.fail(apperrors.ErrUpstream)

	_, _, err := suite.service.GetLatestRates(suite.ctx)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
}

func (suite *GoldRateServiceTestSuite) TestGetRateForCountry() {
	_, rate, err := suite.service.GetRateForCountry(suite.ctx, "pkr")
	suite.Require().NoError(err)
	suite.Equal("PKR", rate.CurrencyCode)
	suite.Equal("32659.20", rate.RatePerTola.StringFixed(2))

	_, _, err = suite.service.GetRateForCountry(suite.ctx, "XYZ")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *GoldRateServiceTestSuite) TestRefreshPersistKeepsOneActiveSnapshot() {
	first, err := suite.service.Refresh(suite.ctx, true)
	suite.Require().NoError(err)
	suite.NotEmpty(first.SnapshotID)

	suite.advance(6 * time.Minute)
	second, err := suite.service.Refresh(suite.ctx, true)
	suite.Require().NoError(err)
	suite.NotEqual(first.SnapshotID, second.SnapshotID)

	active, err := suite.repo.FindLatestActive(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(second.SnapshotID, active.SnapshotID)

	activeCount := 0
	for _, snap := range suite.repo.snapshots {
		if snap.IsActive {
			activeCount++
		}
	}
	suite.Equal(1, activeCount)
}

func (suite *GoldRateServiceTestSuite) TestStatsCounters() {
	suite.Require().Nil(suite.service.Stats().LastFetch)

	_, _, err := suite.service.GetLatestRates(suite.ctx)
	suite.Require().NoError(err)
	suite.advance(5 * time.Second)
	_, _, err = suite.service.GetLatestRates(suite.ctx)
	suite.Require().NoError(err)

	stats := suite.service.Stats()
	suite.Equal(int64(2), stats.TotalFetches)
	suite.Equal(int64(2), stats.FetchesThisMinute)
	suite.Require().NotNil(stats.LastFetch)
	suite.True(stats.LastFetch.Equal(suite.clock))

	// The per-minute counter resets after a quiet minute.
	suite.advance(2 * time.Minute)
	_, _, err = suite.service.GetLatestRates(suite.ctx)
	suite.Require().NoError(err)

	stats = suite.service.Stats()
	suite.Equal(int64(3), stats.TotalFetches)
	suite.Equal(int64(1), stats.FetchesThisMinute)
}

func (suite *GoldRateServiceTestSuite) TestGetRateHistory() {
	for i := 0; i < 3; i++ {
		_, err := suite.service.Refresh(suite.ctx, true)
		suite.Require().NoError(err)
		suite.advance(6 * time.Minute)
	}

	snapshots, points, err := suite.service.GetRateHistory(suite.ctx, "24h", "PKR", 0)

	suite.Require().NoError(err)
	suite.Len(snapshots, 3)
	suite.Require().Len(points, 3)

	// Snapshots run newest first, chart points oldest first.
	suite.True(snapshots[0].FetchedAt.After(snapshots[2].FetchedAt))
	suite.True(points[0].Timestamp.Before(points[2].Timestamp))
	suite.Require().NotNil(points[0].RatePerTola)
	suite.Equal("32659.20", points[0].RatePerTola.StringFixed(2))

	// Unknown periods fall back to the 24h lookback.
	_, fallbackPoints, err := suite.service.GetRateHistory(suite.ctx, "90d", "", 0)
	suite.Require().NoError(err)
	suite.Len(fallbackPoints, 3)
	suite.Nil(fallbackPoints[0].RatePerTola)
}

func (suite *GoldRateServiceTestSuite) TestTasks() {
	tasks := suite.service.Tasks()
	suite.Require().Len(tasks, 2)
	suite.Equal("realtime-rate-refresh", tasks[0].Name)
	suite.Equal("rate-snapshot-save", tasks[1].Name)

	suite.Require().NoError(tasks[1].Run(suite.ctx))
	_, err := suite.repo.FindLatestActive(suite.ctx)
	suite.NoError(err)
}

func TestGoldRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GoldRateServiceTestSuite))
}
