package repositories

import (
	"context"
	"time"

	"github.com/goldify/goldify_backend/internal/core/domain"
)

// ShopRecordReader defines read operations for daily shop records.
type ShopRecordReader interface {
	// FindByUserAndDate retrieves the active record for one owner and one
	// YYYY-MM-DD date key. Returns apperrors.ErrNotFound if absent.
	FindByUserAndDate(ctx context.Context, userID, dateString string) (*domain.ShopRecord, error)

	// FindInRange retrieves the owner's active records with dates in
	// [start, end], newest first.
	FindInRange(ctx context.Context, userID string, start, end time.Time) ([]domain.ShopRecord, error)

	// FindRecent retrieves the owner's most recent active records, newest
	// first, capped at limit.
	FindRecent(ctx context.Context, userID string, limit int) ([]domain.ShopRecord, error)

	// FindAllActive retrieves every active record for the owner.
	FindAllActive(ctx context.Context, userID string) ([]domain.ShopRecord, error)
}

// ShopRecordWriter defines write operations for daily shop records.
type ShopRecordWriter interface {
	// CreateIfAbsent inserts an empty record for the owner and date unless one
	// already exists, and returns the stored row either way. Safe under
	// concurrent first access: the (owner, date) uniqueness lives in the
	// storage layer.
	CreateIfAbsent(ctx context.Context, record domain.ShopRecord) (*domain.ShopRecord, error)

	// SaveRecord persists the record's transaction list and recomputed
	// aggregates.
	SaveRecord(ctx context.Context, record domain.ShopRecord) error
}

// ShopRecordRepositoryFacade combines all shop record repository interfaces.
type ShopRecordRepositoryFacade interface {
	ShopRecordReader
	ShopRecordWriter
}
