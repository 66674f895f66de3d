package pgsql

import (
	"context"
	"errors"

	"github.com/goldify/goldify_backend/internal/apperrors"
	"github.com/goldify/goldify_backend/internal/core/domain"
	"github.com/goldify/goldify_backend/internal/models"
	"github.com/goldify/goldify_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCustomRateRepository persists per-owner custom gold rates using pgxpool.
// The one-row-per-owner invariant is a UNIQUE constraint on user_id.
type PgxCustomRateRepository struct {
	BaseRepository
}

func newPgxCustomRateRepository(db *pgxpool.Pool) *PgxCustomRateRepository {
	return &PgxCustomRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// FindByUser retrieves the owner's custom rate.
func (r *PgxCustomRateRepository) FindByUser(ctx context.Context, userID string) (*domain.CustomRate, error) {
	query := `
		SELECT rate_id, user_id, country, currency_code, symbol,
			rate_per_tola, rate_per_gram, rate_per_ounce,
			last_updated, update_count,
			created_at, created_by, last_updated_at, last_updated_by
		FROM custom_gold_rates
		WHERE user_id = $1;
	`

	var model models.CustomGoldRate
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&model.RateID, &model.UserID, &model.Country, &model.CurrencyCode, &model.Symbol,
		&model.RatePerTola, &model.RatePerGram, &model.RatePerOunce,
		&model.LastUpdated, &model.UpdateCount,
		&model.CreatedAt, &model.CreatedBy, &model.LastUpdatedAt, &model.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find custom gold rate", err)
	}

	rate := mapping.ToDomainCustomGoldRate(model)
	return &rate, nil
}

// UpsertRate creates or replaces the owner's singleton rate row. Concurrent
// first writes collapse onto one row through ON CONFLICT, so the stored row
// is read back via RETURNING rather than trusted from the caller.
func (r *PgxCustomRateRepository) UpsertRate(ctx context.Context, rate domain.CustomRate) (*domain.CustomRate, error) {
	model := mapping.ToModelCustomGoldRate(rate)

	var stored models.CustomGoldRate
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO custom_gold_rates (
			rate_id, user_id, country, currency_code, symbol,
			rate_per_tola, rate_per_gram, rate_per_ounce,
			last_updated, update_count,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id) DO UPDATE SET
			country = EXCLUDED.country,
			currency_code = EXCLUDED.currency_code,
			symbol = EXCLUDED.symbol,
			rate_per_tola = EXCLUDED.rate_per_tola,
			rate_per_gram = EXCLUDED.rate_per_gram,
			rate_per_ounce = EXCLUDED.rate_per_ounce,
			last_updated = EXCLUDED.last_updated,
			update_count = custom_gold_rates.update_count + 1,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING rate_id, user_id, country, currency_code, symbol,
			rate_per_tola, rate_per_gram, rate_per_ounce,
			last_updated, update_count,
			created_at, created_by, last_updated_at, last_updated_by`,
		model.RateID, model.UserID, model.Country, model.CurrencyCode, model.Symbol,
		model.RatePerTola, model.RatePerGram, model.RatePerOunce,
		model.LastUpdated, model.UpdateCount,
		model.CreatedAt, model.CreatedBy, model.LastUpdatedAt, model.LastUpdatedBy,
	).Scan(
		&stored.RateID, &stored.UserID, &stored.Country, &stored.CurrencyCode, &stored.Symbol,
		&stored.RatePerTola, &stored.RatePerGram, &stored.RatePerOunce,
		&stored.LastUpdated, &stored.UpdateCount,
		&stored.CreatedAt, &stored.CreatedBy, &stored.LastUpdatedAt, &stored.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to upsert custom gold rate", err)
	}

	result := mapping.ToDomainCustomGoldRate(stored)
	return &result, nil
}
