package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goldify/goldify_backend/internal/apperrors"
	"github.com/goldify/goldify_backend/internal/core/domain"
	portsrepo "github.com/goldify/goldify_backend/internal/core/ports/repositories"
	portssvc "github.com/goldify/goldify_backend/internal/core/ports/services"
	"github.com/goldify/goldify_backend/internal/dto"
	"github.com/google/uuid"
)

// ShopRecordService is the daily ledger engine: one append-only gold
// transaction log per owner per calendar day, with wholesale aggregate
// recompute after every structural change.
type ShopRecordService struct {
	recordRepo portsrepo.ShopRecordRepositoryFacade
	rateSvc    portssvc.CustomRateSvcFacade
	now        func() time.Time

	// Mutations are serialized per owner so concurrent writes cannot race
	// past the balance check and the aggregate recompute.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewShopRecordService creates a new ShopRecordService.
func NewShopRecordService(recordRepo portsrepo.ShopRecordRepositoryFacade, rateSvc portssvc.CustomRateSvcFacade) *ShopRecordService {
	return &ShopRecordService{
		recordRepo: recordRepo,
		rateSvc:    rateSvc,
		now:        time.Now,
		locks:      make(map[string]*sync.Mutex),
	}
}

var _ portssvc.ShopRecordSvcFacade = (*ShopRecordService)(nil)

func (s *ShopRecordService) lockOwner(userID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	mu, ok := s.locks[userID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[userID] = mu
	}
	return mu
}

// GetTodayRecord returns today's record for the owner, lazily creating an
// empty one. Safe under concurrent first access: creation goes through the
// repository's insert-if-absent.
func (s *ShopRecordService) GetTodayRecord(ctx context.Context, userID string) (*domain.ShopRecord, error) {
	now := s.now()
	record := domain.ShopRecord{
		RecordID:     uuid.NewString(),
		UserID:       userID,
		Date:         now,
		DateString:   domain.DateKey(now),
		Transactions: []domain.GoldTransaction{},
		LastUpdated:  now,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	stored, err := s.recordRepo.CreateIfAbsent(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's record: %w", err)
	}
	return stored, nil
}

// AddTransaction appends a weighed-gold transaction to today's record.
// The owner's custom rate is copied into the transaction at append time;
// later rate changes never retroactively alter it.
func (s *ShopRecordService) AddTransaction(ctx context.Context, userID string, req dto.AddTransactionRequest) (*domain.ShopRecord, *domain.GoldTransaction, error) {
	txnType := domain.TransactionType(req.Type)
	if !txnType.Valid() {
		return nil, nil, fmt.Errorf("%w: invalid transaction type, use 'add' or 'subtract'", apperrors.ErrValidation)
	}
	if !req.Weight.IsPositive() {
		return nil, nil, fmt.Errorf("%w: weight must be a positive number", apperrors.ErrValidation)
	}

	rate, err := s.rateSvc.GetRate(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if !rate.IsConfigured() {
		return nil, nil, fmt.Errorf("%w: please set your custom gold rate first", apperrors.ErrStateConflict)
	}

	mu := s.lockOwner(userID)
	mu.Lock()
	defer mu.Unlock()

	record, err := s.GetTodayRecord(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	weight := domain.RoundWeight(req.Weight)

	if txnType == domain.TransactionSubtract && record.Balance.LessThan(weight) {
		return nil, nil, fmt.Errorf("%w: insufficient gold. Available: %sg",
			apperrors.ErrStateConflict, record.Balance.StringFixed(domain.WeightPrecision))
	}

	now := s.now()
	txn := domain.GoldTransaction{
		TransactionID: uuid.NewString(),
		Type:          txnType,
		Weight:        weight,
		CustomRateID:  rate.RateID,
		Rate: domain.TransactionRate{
			RatePerTola:  rate.RatePerTola,
			RatePerGram:  rate.RatePerGram,
			RatePerOunce: rate.RatePerOunce,
			Symbol:       rate.Symbol,
			CurrencyCode: rate.CurrencyCode,
		},
		Timestamp: now,
	}

	if txnType == domain.TransactionSubtract {
		customerName := req.CustomerName
		if customerName == "" {
			customerName = "Walk-in Customer"
		}
		txn.SaleDetails = &domain.SaleDetails{
			TotalPrice:   domain.RoundMoney(weight.Mul(rate.RatePerGram)),
			CustomerName: customerName,
			Notes:        req.Notes,
		}
	}

	record.Transactions = append(record.Transactions, txn)
	record.CalculateTotals(now)

	if err := s.saveRecord(ctx, record, userID, now); err != nil {
		return nil, nil, err
	}
	return record, &txn, nil
}

// UpdateTransaction edits weight and/or type of an existing transaction in
// today's record, then recomputes the aggregates wholesale.
func (s *ShopRecordService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.ShopRecord, error) {
	if req.Weight != nil && !req.Weight.IsPositive() {
		return nil, fmt.Errorf("%w: weight must be a positive number", apperrors.ErrValidation)
	}
	if req.Type != nil && !domain.TransactionType(*req.Type).Valid() {
		return nil, fmt.Errorf("%w: invalid transaction type", apperrors.ErrValidation)
	}

	mu := s.lockOwner(userID)
	mu.Lock()
	defer mu.Unlock()

	record, err := s.GetTodayRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := record.FindTransaction(transactionID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}

	if req.Weight != nil {
		record.Transactions[idx].Weight = domain.RoundWeight(*req.Weight)
	}
	if req.Type != nil {
		record.Transactions[idx].Type = domain.TransactionType(*req.Type)
	}

	now := s.now()
	record.CalculateTotals(now)
	if err := s.saveRecord(ctx, record, userID, now); err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteTransaction removes a transaction from today's record and recomputes
// the aggregates.
func (s *ShopRecordService) DeleteTransaction(ctx context.Context, userID, transactionID string) (*domain.ShopRecord, error) {
	mu := s.lockOwner(userID)
	mu.Lock()
	defer mu.Unlock()

	record, err := s.GetTodayRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := record.FindTransaction(transactionID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}

	record.Transactions = append(record.Transactions[:idx], record.Transactions[idx+1:]...)

	now := s.now()
	record.CalculateTotals(now)
	if err := s.saveRecord(ctx, record, userID, now); err != nil {
		return nil, err
	}
	return record, nil
}

// ClearToday empties today's transaction list; all aggregates become zero.
func (s *ShopRecordService) ClearToday(ctx context.Context, userID string) (*domain.ShopRecord, error) {
	mu := s.lockOwner(userID)
	mu.Lock()
	defer mu.Unlock()

	record, err := s.GetTodayRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	record.Transactions = []domain.GoldTransaction{}

	now := s.now()
	record.CalculateTotals(now)
	if err := s.saveRecord(ctx, record, userID, now); err != nil {
		return nil, err
	}
	return record, nil
}

// GetRecordByDate retrieves the owner's record for a YYYY-MM-DD date key.
func (s *ShopRecordService) GetRecordByDate(ctx context.Context, userID, dateString string) (*domain.ShopRecord, error) {
	if _, err := time.Parse("2006-01-02", dateString); err != nil {
		return nil, fmt.Errorf("%w: invalid date format, use YYYY-MM-DD", apperrors.ErrValidation)
	}
	record, err := s.recordRepo.FindByUserAndDate(ctx, userID, dateString)
	if err != nil {
		return nil, fmt.Errorf("failed to get record for %s: %w", dateString, err)
	}
	return record, nil
}

// GetRecordsInRange retrieves records in the inclusive date range, newest
// first, plus a summary over the per-day cached aggregates.
func (s *ShopRecordService) GetRecordsInRange(ctx context.Context, userID, startDate, endDate string) ([]domain.ShopRecord, domain.RecordRangeSummary, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, domain.RecordRangeSummary{}, fmt.Errorf("%w: invalid start date, use YYYY-MM-DD", apperrors.ErrValidation)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, domain.RecordRangeSummary{}, fmt.Errorf("%w: invalid end date, use YYYY-MM-DD", apperrors.ErrValidation)
	}

	records, err := s.recordRepo.FindInRange(ctx, userID, start, endOfDay(end))
	if err != nil {
		return nil, domain.RecordRangeSummary{}, fmt.Errorf("failed to get records in range: %w", err)
	}
	return records, domain.SummarizeRecords(records), nil
}

// GetMonthlySummary retrieves one calendar month's records and their summary.
// The summary sums the per-day cached aggregates; a single day's internal
// consistency is the unit of truth.
func (s *ShopRecordService) GetMonthlySummary(ctx context.Context, userID string, year, month int) ([]domain.ShopRecord, domain.RecordRangeSummary, error) {
	if month < 1 || month > 12 {
		return nil, domain.RecordRangeSummary{}, fmt.Errorf("%w: invalid year or month", apperrors.ErrValidation)
	}

	// Records are keyed by server-local dates, so the month window has to be
	// built in local time as well or boundary days land in the wrong month.
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	records, err := s.recordRepo.FindInRange(ctx, userID, start, end)
	if err != nil {
		return nil, domain.RecordRangeSummary{}, fmt.Errorf("failed to get monthly summary: %w", err)
	}
	return records, domain.SummarizeRecords(records), nil
}

// GetRecentRecords retrieves the owner's most recent records, newest first.
func (s *ShopRecordService) GetRecentRecords(ctx context.Context, userID string, limit int) ([]domain.ShopRecord, error) {
	if limit <= 0 {
		limit = 7
	}
	records, err := s.recordRepo.FindRecent(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent records: %w", err)
	}
	return records, nil
}

// GetStatistics aggregates today, the current month and all time.
func (s *ShopRecordService) GetStatistics(ctx context.Context, userID string) (*dto.ShopStatistics, error) {
	now := s.now()

	today, err := s.GetTodayRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	_, monthSummary, err := s.GetMonthlySummary(ctx, userID, now.Year(), int(now.Month()))
	if err != nil {
		return nil, err
	}

	allRecords, err := s.recordRepo.FindAllActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}

	return &dto.ShopStatistics{
		Today: dto.DayTotals{
			AddTotal:         today.AddTotal,
			SubtractTotal:    today.SubtractTotal,
			Balance:          today.Balance,
			TransactionCount: today.TotalTransactions,
		},
		CurrentMonth: monthSummary,
		AllTime:      domain.SummarizeRecords(allRecords),
	}, nil
}

func (s *ShopRecordService) saveRecord(ctx context.Context, record *domain.ShopRecord, userID string, now time.Time) error {
	record.LastUpdatedAt = now
	record.LastUpdatedBy = userID
	if err := s.recordRepo.SaveRecord(ctx, *record); err != nil {
		// Financial mutation: persistence failures always surface.
		return fmt.Errorf("failed to save shop record: %w", err)
	}
	return nil
}

func endOfDay(t time.Time) time.Time {
	return t.Add(24*time.Hour - time.Nanosecond)
}
