package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goldify/goldify_backend/internal/apperrors"
	"github.com/goldify/goldify_backend/internal/core/domain"
	portsrepo "github.com/goldify/goldify_backend/internal/core/ports/repositories"
	portssvc "github.com/goldify/goldify_backend/internal/core/ports/services"
	"github.com/goldify/goldify_backend/internal/dto"
	"github.com/google/uuid"
)

// Defaults applied when an owner sets a rate without naming a market.
const (
	defaultCountry  = "Pakistan"
	defaultCurrency = "PKR"
	defaultSymbol   = "Rs"
)

// CustomRateService manages the per-owner manually set gold rate.
type CustomRateService struct {
	rateRepo portsrepo.CustomRateRepositoryFacade
	now      func() time.Time
}

// NewCustomRateService creates a new CustomRateService.
func NewCustomRateService(rateRepo portsrepo.CustomRateRepositoryFacade) *CustomRateService {
	return &CustomRateService{rateRepo: rateRepo, now: time.Now}
}

var _ portssvc.CustomRateSvcFacade = (*CustomRateService)(nil)

// GetRate retrieves the owner's custom rate. An owner who has never set one
// gets the unset sentinel (all rate fields zero) rather than an error.
func (s *CustomRateService) GetRate(ctx context.Context, userID string) (*domain.CustomRate, error) {
	rate, err := s.rateRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.CustomRate{
				UserID:       userID,
				Country:      defaultCountry,
				CurrencyCode: defaultCurrency,
				Symbol:       defaultSymbol,
			}, nil
		}
		return nil, fmt.Errorf("failed to get custom rate: %w", err)
	}
	return rate, nil
}

// SetRate creates or updates the owner's singleton rate. RatePerGram and
// RatePerOunce are always rederived from RatePerTola; UpdateCount increments
// by exactly one per call.
func (s *CustomRateService) SetRate(ctx context.Context, userID string, req dto.SetCustomRateRequest) (*domain.CustomRate, error) {
	if req.RatePerTola.IsNegative() {
		return nil, fmt.Errorf("%w: rate must be a positive number", apperrors.ErrValidation)
	}

	now := s.now()

	rate, err := s.rateRepo.FindByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to load custom rate: %w", err)
		}
		rate = &domain.CustomRate{
			RateID: uuid.NewString(),
			UserID: userID,
			AuditFields: domain.AuditFields{
				CreatedAt: now,
				CreatedBy: userID,
			},
		}
	}

	rate.Country = valueOr(req.Country, valueOr(rate.Country, defaultCountry))
	rate.CurrencyCode = valueOr(req.CurrencyCode, valueOr(rate.CurrencyCode, defaultCurrency))
	rate.Symbol = valueOr(req.Symbol, valueOr(rate.Symbol, defaultSymbol))
	rate.CalculateFromTola(req.RatePerTola, now)
	rate.LastUpdatedAt = now
	rate.LastUpdatedBy = userID

	// The (user_id) uniqueness lives in the storage layer, so concurrent
	// first writes collapse into one row instead of racing find-then-create.
	// The stored row is authoritative: when writes race, its UpdateCount can
	// be higher than the one computed from the read above.
	stored, err := s.rateRepo.UpsertRate(ctx, *rate)
	if err != nil {
		return nil, fmt.Errorf("failed to save custom rate: %w", err)
	}
	return stored, nil
}

func valueOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
