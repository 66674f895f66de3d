package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/goldify/goldify_backend/internal/apperrors"
	"github.com/goldify/goldify_backend/internal/core/domain"
	portsrepo "github.com/goldify/goldify_backend/internal/core/ports/repositories"
	"github.com/goldify/goldify_backend/internal/core/services"
	"github.com/goldify/goldify_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// fakeShopRecordRepo keeps records in memory, keyed by (user, date).
type fakeShopRecordRepo struct {
	mu      sync.Mutex
	records map[string]domain.ShopRecord

	lastRangeStart time.Time
	lastRangeEnd   time.Time
}

func newFakeShopRecordRepo() *fakeShopRecordRepo {
	return &fakeShopRecordRepo{records: make(map[string]domain.ShopRecord)}
}

func recordKey(userID, dateString string) string {
	return userID + "|" + dateString
}

func (f *fakeShopRecordRepo) CreateIfAbsent(ctx context.Context, record domain.ShopRecord) (*domain.ShopRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := recordKey(record.UserID, record.DateString)
	if existing, ok := f.records[key]; ok {
		out := existing
		return &out, nil
	}
	f.records[key] = record
	out := record
	return &out, nil
}

func (f *fakeShopRecordRepo) SaveRecord(ctx context.Context, record domain.ShopRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := recordKey(record.UserID, record.DateString)
	if _, ok := f.records[key]; !ok {
		return apperrors.ErrNotFound
	}
	f.records[key] = record
	return nil
}

func (f *fakeShopRecordRepo) FindByUserAndDate(ctx context.Context, userID, dateString string) (*domain.ShopRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[recordKey(userID, dateString)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := record
	return &out, nil
}

func (f *fakeShopRecordRepo) FindInRange(ctx context.Context, userID string, start, end time.Time) ([]domain.ShopRecord, error) {
	f.mu.Lock()
	f.lastRangeStart = start
	f.lastRangeEnd = end
	f.mu.Unlock()
	return f.findWhere(userID, func(r domain.ShopRecord) bool {
		return !r.Date.Before(start) && !r.Date.After(end)
	})
}

func (f *fakeShopRecordRepo) FindRecent(ctx context.Context, userID string, limit int) ([]domain.ShopRecord, error) {
	records, err := f.findWhere(userID, func(domain.ShopRecord) bool { return true })
	if err != nil {
		return nil, err
	}
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (f *fakeShopRecordRepo) FindAllActive(ctx context.Context, userID string) ([]domain.ShopRecord, error) {
	return f.findWhere(userID, func(domain.ShopRecord) bool { return true })
}

func (f *fakeShopRecordRepo) findWhere(userID string, keep func(domain.ShopRecord) bool) ([]domain.ShopRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ShopRecord
	for _, r := range f.records {
		if r.UserID == userID && r.IsActive && keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

var _ portsrepo.ShopRecordRepositoryFacade = (*fakeShopRecordRepo)(nil)

// stubRateService always answers with a fixed configured rate.
type stubRateService struct {
	rate *domain.CustomRate
}

func (s *stubRateService) GetRate(ctx context.Context, userID string) (*domain.CustomRate, error) {
	out := *s.rate
	out.UserID = userID
	return &out, nil
}

func (s *stubRateService) SetRate(ctx context.Context, userID string, req dto.SetCustomRateRequest) (*domain.CustomRate, error) {
	panic("not used in these tests")
}

func configuredRate() *domain.CustomRate {
	return &domain.CustomRate{
		RateID:       uuid.NewString(),
		Country:      "Pakistan",
		CurrencyCode: "PKR",
		Symbol:       "Rs",
		RatePerTola:  decimal.RequireFromString("1166.40"),
		RatePerGram:  decimal.RequireFromString("100.00"),
		RatePerOunce: decimal.RequireFromString("3110.35"),
		UpdateCount:  1,
	}
}

type ShopRecordServiceTestSuite struct {
	suite.Suite
	repo    *fakeShopRecordRepo
	rateSvc *stubRateService
	service *services.ShopRecordService
	userID  string
	ctx     context.Context
}

func (suite *ShopRecordServiceTestSuite) SetupTest() {
	suite.repo = newFakeShopRecordRepo()
	suite.rateSvc = &stubRateService{rate: configuredRate()}
	suite.service = services.NewShopRecordService(suite.repo, suite.rateSvc)
	suite.userID = uuid.NewString()
	suite.ctx = context.Background()
}

func (suite *ShopRecordServiceTestSuite) addGold(weight string) *domain.ShopRecord {
	record, _, err := suite.service.AddTransaction(suite.ctx, suite.userID, dto.AddTransactionRequest{
		Type:   "add",
		Weight: decimal.RequireFromString(weight),
	})
	suite.Require().NoError(err)
	return record
}

func (suite *ShopRecordServiceTestSuite) TestGetTodayRecord_CreatesEmptyOnce() {
	first, err := suite.service.GetTodayRecord(suite.ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Empty(first.Transactions)
	suite.True(first.IsActive)
	suite.True(first.Balance.IsZero())

	second, err := suite.service.GetTodayRecord(suite.ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(first.RecordID, second.RecordID)
}

func (suite *ShopRecordServiceTestSuite) TestAddAndSubtractFlow() {
	record := suite.addGold("50")
	suite.Equal("50.000", record.Balance.StringFixed(3))

	record, txn, err := suite.service.AddTransaction(suite.ctx, suite.userID, dto.AddTransactionRequest{
		Type:   "subtract",
		Weight: decimal.RequireFromString("20"),
	})
	suite.Require().NoError(err)
	suite.Equal("30.000", record.Balance.StringFixed(3))
	suite.Equal("2000.00", record.TotalSalesAmount.StringFixed(2))

	suite.Require().NotNil(txn.SaleDetails)
	suite.Equal("2000.00", txn.SaleDetails.TotalPrice.StringFixed(2))
	suite.Equal("Walk-in Customer", txn.SaleDetails.CustomerName)
	suite.Equal("100.00", txn.Rate.RatePerGram.StringFixed(2))
}

func (suite *ShopRecordServiceTestSuite) TestSubtract_InsufficientGold() {
	suite.addGold("50")
	_, _, err := suite.service.AddTransaction(suite.ctx, suite.userID, dto.AddTransactionRequest{
		Type:   "subtract",
		Weight: decimal.RequireFromString("20"),
	})
	suite.Require().NoError(err)

	_, _, err = suite.service.AddTransaction(suite.ctx, suite.userID, dto.AddTransactionRequest{
		Type:   "subtract",
		Weight: decimal.RequireFromString("40"),
	})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateConflict)
	suite.Contains(err.Error(), "insufficient gold. Available: 30.000g")

	// The rejected transaction must not have touched the stored record.
	record, err := suite.service.GetTodayRecord(suite.ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Len(record.Transactions, 2)
	suite.Equal("30.000", record.Balance.StringFixed(3))
}

func (suite *ShopRecordServiceTestSuite) TestAddTransaction_RateNotConfigured() {
	suite.rateSvc.rate = &domain.CustomRate{Country: "Pakistan", CurrencyCode: "PKR", Symbol: "Rs"}

	_, _, err := suite.service.AddTransaction(suite.ctx, suite.userID, dto.AddTransactionRequest{
		Type:   "add",
		Weight: decimal.RequireFromString("10"),
	})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateConflict)
	suite.Contains(err.Error(), "please set your custom gold rate first")
}

func (suite *ShopRecordServiceTestSuite) TestAddTransaction_Validation() {
	_, _, err := suite.service.AddTransaction(suite.ctx, suite.userID, dto.AddTransactionRequest{
		Type:   "withdraw",
		Weight: decimal.RequireFromString("10"),
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, _, err = suite.service.AddTransaction(suite.ctx, suite.userID, dto.AddTransactionRequest{
		Type:   "add",
		Weight: decimal.Zero,
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ShopRecordServiceTestSuite) TestUpdateTransaction_Recomputes() {
	record := suite.addGold("50")
	txnID := record.Transactions[0].TransactionID

	newWeight := decimal.RequireFromString("35.5")
	updated, err := suite.service.UpdateTransaction(suite.ctx, suite.userID, txnID, dto.UpdateTransactionRequest{
		Weight: &newWeight,
	})
	suite.Require().NoError(err)
	suite.Equal("35.500", updated.Balance.StringFixed(3))
	suite.Equal("35.500", updated.AddTotal.StringFixed(3))
}

func (suite *ShopRecordServiceTestSuite) TestUpdateTransaction_NotFound() {
	suite.addGold("50")
	newWeight := decimal.RequireFromString("1")
	_, err := suite.service.UpdateTransaction(suite.ctx, suite.userID, uuid.NewString(), dto.UpdateTransactionRequest{
		Weight: &newWeight,
	})
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ShopRecordServiceTestSuite) TestDeleteTransaction_Recomputes() {
	record := suite.addGold("50")
	suite.addGold("10")
	txnID := record.Transactions[0].TransactionID

	updated, err := suite.service.DeleteTransaction(suite.ctx, suite.userID, txnID)
	suite.Require().NoError(err)
	suite.Len(updated.Transactions, 1)
	suite.Equal("10.000", updated.Balance.StringFixed(3))
}

func (suite *ShopRecordServiceTestSuite) TestClearToday() {
	suite.addGold("50")
	record, err := suite.service.ClearToday(suite.ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Empty(record.Transactions)
	suite.True(record.Balance.IsZero())
	suite.Zero(record.TotalTransactions)
}

func (suite *ShopRecordServiceTestSuite) TestGetRecordByDate_InvalidFormat() {
	_, err := suite.service.GetRecordByDate(suite.ctx, suite.userID, "01-02-2026")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ShopRecordServiceTestSuite) TestGetMonthlySummary_UsesLocalMonthBounds() {
	// Daily records are keyed by server-local dates, so a record written late
	// on the last local day of March still belongs to March regardless of
	// what UTC says.
	lastDay := time.Date(2026, time.March, 31, 22, 0, 0, 0, time.Local)
	record := domain.ShopRecord{
		RecordID:   uuid.NewString(),
		UserID:     suite.userID,
		Date:       lastDay,
		DateString: domain.DateKey(lastDay),
		IsActive:   true,
	}
	_, err := suite.repo.CreateIfAbsent(suite.ctx, record)
	suite.Require().NoError(err)

	records, _, err := suite.service.GetMonthlySummary(suite.ctx, suite.userID, 2026, 3)
	suite.Require().NoError(err)
	suite.Require().Len(records, 1)
	suite.Equal(record.DateString, records[0].DateString)

	wantStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.Local)
	suite.True(suite.repo.lastRangeStart.Equal(wantStart))
	suite.True(suite.repo.lastRangeEnd.Equal(wantStart.AddDate(0, 1, 0).Add(-time.Nanosecond)))
}

func (suite *ShopRecordServiceTestSuite) TestGetMonthlySummary_InvalidMonth() {
	_, _, err := suite.service.GetMonthlySummary(suite.ctx, suite.userID, 2026, 13)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ShopRecordServiceTestSuite) TestConcurrentMutationsKeepTotalsConsistent() {
	suite.addGold("100")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, addErr := suite.service.AddTransaction(suite.ctx, suite.userID, dto.AddTransactionRequest{
				Type:   "add",
				Weight: decimal.RequireFromString("1"),
			})
			suite.NoError(addErr)
			_, _, subErr := suite.service.AddTransaction(suite.ctx, suite.userID, dto.AddTransactionRequest{
				Type:   "subtract",
				Weight: decimal.RequireFromString("1"),
			})
			suite.NoError(subErr)
		}()
	}
	wg.Wait()

	record, err := suite.service.GetTodayRecord(suite.ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(21, record.TotalTransactions)
	suite.Equal("100.000", record.Balance.StringFixed(3))
	suite.Equal("110.000", record.AddTotal.StringFixed(3))
	suite.Equal("10.000", record.SubtractTotal.StringFixed(3))
}

func TestShopRecordServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShopRecordServiceTestSuite))
}
