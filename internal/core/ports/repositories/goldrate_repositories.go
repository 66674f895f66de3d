package repositories

import (
	"context"
	"time"

	"github.com/goldify/goldify_backend/internal/core/domain"
)

// GoldRateSnapshotReader defines read operations over persisted rate snapshots.
type GoldRateSnapshotReader interface {
	// FindLatestActive retrieves the most recent snapshot with isActive=true.
	// Returns apperrors.ErrNotFound if no snapshot has ever been persisted.
	FindLatestActive(ctx context.Context) (*domain.RateSnapshot, error)

	// FindSince retrieves snapshots fetched at or after the given time, newest
	// first, capped at limit.
	FindSince(ctx context.Context, since time.Time, limit int) ([]domain.RateSnapshot, error)
}

// GoldRateSnapshotWriter defines write operations over persisted rate snapshots.
type GoldRateSnapshotWriter interface {
	// SaveSnapshot persists a new snapshot as the single active one,
	// deactivating all previously active snapshots in the same database
	// transaction.
	SaveSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error
}

// GoldRateRepositoryFacade combines all snapshot repository interfaces.
type GoldRateRepositoryFacade interface {
	GoldRateSnapshotReader
	GoldRateSnapshotWriter
}
