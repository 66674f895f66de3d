package services

import (
	"context"

	"github.com/goldify/goldify_backend/internal/core/domain"
	"github.com/goldify/goldify_backend/internal/dto"
)

// ShopRecordReaderSvc defines the read side of the daily ledger.
type ShopRecordReaderSvc interface {
	// GetRecordByDate retrieves the owner's record for a YYYY-MM-DD date key.
	GetRecordByDate(ctx context.Context, userID, dateString string) (*domain.ShopRecord, error)

	// GetRecordsInRange retrieves records with dates in the inclusive range
	// plus a summary that sums the per-day cached aggregates.
	GetRecordsInRange(ctx context.Context, userID, startDate, endDate string) ([]domain.ShopRecord, domain.RecordRangeSummary, error)

	// GetMonthlySummary retrieves one calendar month's records and summary.
	GetMonthlySummary(ctx context.Context, userID string, year, month int) ([]domain.ShopRecord, domain.RecordRangeSummary, error)

	// GetRecentRecords retrieves the owner's most recent records.
	GetRecentRecords(ctx context.Context, userID string, limit int) ([]domain.ShopRecord, error)

	// GetStatistics aggregates today, the current month and all time.
	GetStatistics(ctx context.Context, userID string) (*dto.ShopStatistics, error)
}

// ShopRecordWriterSvc defines the mutating side of the daily ledger. All
// mutations for the same owner are serialized and recompute the day's
// aggregates wholesale.
type ShopRecordWriterSvc interface {
	// GetTodayRecord returns today's record, lazily creating an empty one.
	GetTodayRecord(ctx context.Context, userID string) (*domain.ShopRecord, error)

	// AddTransaction appends a weighed-gold transaction to today's record,
	// snapshotting the owner's custom rate. Subtracting more than the current
	// balance fails with apperrors.ErrStateConflict.
	AddTransaction(ctx context.Context, userID string, req dto.AddTransactionRequest) (*domain.ShopRecord, *domain.GoldTransaction, error)

	// UpdateTransaction edits weight and/or type of an existing transaction
	// in today's record.
	UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.ShopRecord, error)

	// DeleteTransaction removes a transaction from today's record.
	DeleteTransaction(ctx context.Context, userID, transactionID string) (*domain.ShopRecord, error)

	// ClearToday empties today's transaction list.
	ClearToday(ctx context.Context, userID string) (*domain.ShopRecord, error)
}

// ShopRecordSvcFacade combines the daily ledger interfaces.
type ShopRecordSvcFacade interface {
	ShopRecordReaderSvc
	ShopRecordWriterSvc
}
