package services

import (
	"context"

	"github.com/goldify/goldify_backend/internal/core/domain"
	"github.com/goldify/goldify_backend/internal/dto"
)

// CustomRateSvcFacade manages an owner's manually set gold rate.
type CustomRateSvcFacade interface {
	// GetRate retrieves the owner's rate. When none has been set it returns
	// an unset sentinel (all rate fields zero, nil LastUpdated) and no error.
	GetRate(ctx context.Context, userID string) (*domain.CustomRate, error)

	// SetRate creates or updates the owner's singleton rate, recomputing the
	// per-gram and per-ounce rates from the per-tola value.
	SetRate(ctx context.Context, userID string, req dto.SetCustomRateRequest) (*domain.CustomRate, error)
}
