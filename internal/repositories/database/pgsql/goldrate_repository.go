package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/goldify/goldify_backend/internal/apperrors"
	"github.com/goldify/goldify_backend/internal/core/domain"
	"github.com/goldify/goldify_backend/internal/models"
	"github.com/goldify/goldify_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxGoldRateRepository persists rate snapshots using pgxpool. The exchange
// rate map and the country rate list are JSONB columns.
type PgxGoldRateRepository struct {
	BaseRepository
}

func newPgxGoldRateRepository(db *pgxpool.Pool) *PgxGoldRateRepository {
	return &PgxGoldRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveSnapshot persists a snapshot as the single active one. The deactivation
// of prior snapshots and the insert run in one transaction so readers never
// observe zero or two active rows.
func (r *PgxGoldRateRepository) SaveSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error {
	model := mapping.ToModelGoldRateSnapshot(snapshot)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `UPDATE gold_rates SET is_active = FALSE WHERE is_active = TRUE`)
	if err == nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO gold_rates (
				snapshot_id, spot_usd, base_usd_tola, exchange_rates, country_rates,
				fetched_at, source, is_active
			) VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)`,
			model.SnapshotID, model.SpotUSD, model.BaseUSDTola,
			model.ExchangeRates, model.CountryRates,
			model.FetchedAt, model.Source,
		)
	}
	if err != nil {
		_ = r.Rollback(ctx, tx)
		return apperrors.NewAppError(500, "failed to save gold rate snapshot", err)
	}

	return r.Commit(ctx, tx)
}

// FindLatestActive retrieves the most recent active snapshot.
func (r *PgxGoldRateRepository) FindLatestActive(ctx context.Context) (*domain.RateSnapshot, error) {
	query := `
		SELECT snapshot_id, spot_usd, base_usd_tola, exchange_rates, country_rates,
			fetched_at, source, is_active
		FROM gold_rates
		WHERE is_active = TRUE
		ORDER BY fetched_at DESC
		LIMIT 1;
	`

	var model models.GoldRateSnapshot
	err := r.Pool.QueryRow(ctx, query).Scan(
		&model.SnapshotID, &model.SpotUSD, &model.BaseUSDTola,
		&model.ExchangeRates, &model.CountryRates,
		&model.FetchedAt, &model.Source, &model.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find active gold rate snapshot", err)
	}

	snapshot := mapping.ToDomainGoldRateSnapshot(model)
	return &snapshot, nil
}

// FindSince retrieves snapshots fetched at or after the given time, newest first.
func (r *PgxGoldRateRepository) FindSince(ctx context.Context, since time.Time, limit int) ([]domain.RateSnapshot, error) {
	query := `
		SELECT snapshot_id, spot_usd, base_usd_tola, exchange_rates, country_rates,
			fetched_at, source, is_active
		FROM gold_rates
		WHERE fetched_at >= $1
		ORDER BY fetched_at DESC
		LIMIT $2;
	`

	rows, err := r.Pool.Query(ctx, query, since, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query gold rate history", err)
	}
	defer rows.Close()

	var snapshots []domain.RateSnapshot
	for rows.Next() {
		var model models.GoldRateSnapshot
		err := rows.Scan(
			&model.SnapshotID, &model.SpotUSD, &model.BaseUSDTola,
			&model.ExchangeRates, &model.CountryRates,
			&model.FetchedAt, &model.Source, &model.IsActive,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan gold rate snapshot", err)
		}
		snapshots = append(snapshots, mapping.ToDomainGoldRateSnapshot(model))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating gold rate snapshots", err)
	}

	return snapshots, nil
}
