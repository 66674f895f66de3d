package repositories

import (
	"context"

	"github.com/goldify/goldify_backend/internal/core/domain"
)

// CustomRateReader defines read operations for per-owner custom gold rates.
type CustomRateReader interface {
	// FindByUser retrieves the owner's custom rate.
	// Returns apperrors.ErrNotFound if the owner has never set one.
	FindByUser(ctx context.Context, userID string) (*domain.CustomRate, error)
}

// CustomRateWriter defines write operations for per-owner custom gold rates.
type CustomRateWriter interface {
	// UpsertRate creates or replaces the owner's singleton rate row and
	// returns the row as stored. The storage layer enforces the
	// one-row-per-owner uniqueness so that concurrent first writes cannot
	// produce two rows; the returned UpdateCount is the stored value, which
	// may exceed the caller's in-memory count when writes race.
	UpsertRate(ctx context.Context, rate domain.CustomRate) (*domain.CustomRate, error)
}

// CustomRateRepositoryFacade combines all custom rate repository interfaces.
type CustomRateRepositoryFacade interface {
	CustomRateReader
	CustomRateWriter
}
