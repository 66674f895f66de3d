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

const shopRecordColumns = `
	record_id, user_id, date, date_string, transactions,
	add_total, subtract_total, balance, total_sales_amount, total_transactions,
	last_updated, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxShopRecordRepository persists daily shop records using pgxpool. The
// transaction list is a JSONB column; (user_id, date_string) is UNIQUE.
type PgxShopRecordRepository struct {
	BaseRepository
}

func newPgxShopRecordRepository(db *pgxpool.Pool) *PgxShopRecordRepository {
	return &PgxShopRecordRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanShopRecord(row pgx.Row) (*models.ShopRecord, error) {
	var m models.ShopRecord
	err := row.Scan(
		&m.RecordID, &m.UserID, &m.Date, &m.DateString, &m.Transactions,
		&m.AddTotal, &m.SubtractTotal, &m.Balance, &m.TotalSalesAmount, &m.TotalTransactions,
		&m.LastUpdated, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateIfAbsent inserts an empty record for the owner and date unless one
// already exists, then returns the stored row. ON CONFLICT DO NOTHING plus a
// reselect makes concurrent first access converge on one row.
func (r *PgxShopRecordRepository) CreateIfAbsent(ctx context.Context, record domain.ShopRecord) (*domain.ShopRecord, error) {
	model := mapping.ToModelShopRecord(record)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO shop_records (`+shopRecordColumns+`
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (user_id, date_string) DO NOTHING`,
		model.RecordID, model.UserID, model.Date, model.DateString, model.Transactions,
		model.AddTotal, model.SubtractTotal, model.Balance, model.TotalSalesAmount, model.TotalTransactions,
		model.LastUpdated, model.IsActive,
		model.CreatedAt, model.CreatedBy, model.LastUpdatedAt, model.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to create shop record", err)
	}

	return r.FindByUserAndDate(ctx, record.UserID, record.DateString)
}

// SaveRecord persists the record's transaction list and recomputed aggregates.
func (r *PgxShopRecordRepository) SaveRecord(ctx context.Context, record domain.ShopRecord) error {
	model := mapping.ToModelShopRecord(record)

	tag, err := r.Pool.Exec(ctx, `
		UPDATE shop_records SET
			transactions = $1,
			add_total = $2,
			subtract_total = $3,
			balance = $4,
			total_sales_amount = $5,
			total_transactions = $6,
			last_updated = $7,
			last_updated_at = $8,
			last_updated_by = $9
		WHERE user_id = $10 AND date_string = $11 AND is_active = TRUE`,
		model.Transactions,
		model.AddTotal, model.SubtractTotal, model.Balance,
		model.TotalSalesAmount, model.TotalTransactions,
		model.LastUpdated, model.LastUpdatedAt, model.LastUpdatedBy,
		model.UserID, model.DateString,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save shop record", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindByUserAndDate retrieves the active record for one owner and date key.
func (r *PgxShopRecordRepository) FindByUserAndDate(ctx context.Context, userID, dateString string) (*domain.ShopRecord, error) {
	query := `SELECT ` + shopRecordColumns + `
		FROM shop_records
		WHERE user_id = $1 AND date_string = $2 AND is_active = TRUE;`

	model, err := scanShopRecord(r.Pool.QueryRow(ctx, query, userID, dateString))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find shop record", err)
	}

	record := mapping.ToDomainShopRecord(*model)
	return &record, nil
}

// FindInRange retrieves the owner's active records in [start, end], newest first.
func (r *PgxShopRecordRepository) FindInRange(ctx context.Context, userID string, start, end time.Time) ([]domain.ShopRecord, error) {
	query := `SELECT ` + shopRecordColumns + `
		FROM shop_records
		WHERE user_id = $1 AND date >= $2 AND date <= $3 AND is_active = TRUE
		ORDER BY date DESC;`

	return r.queryRecords(ctx, query, userID, start, end)
}

// FindRecent retrieves the owner's most recent active records, newest first.
func (r *PgxShopRecordRepository) FindRecent(ctx context.Context, userID string, limit int) ([]domain.ShopRecord, error) {
	query := `SELECT ` + shopRecordColumns + `
		FROM shop_records
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY date DESC
		LIMIT $2;`

	return r.queryRecords(ctx, query, userID, limit)
}

// FindAllActive retrieves every active record for the owner.
func (r *PgxShopRecordRepository) FindAllActive(ctx context.Context, userID string) ([]domain.ShopRecord, error) {
	query := `SELECT ` + shopRecordColumns + `
		FROM shop_records
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY date DESC;`

	return r.queryRecords(ctx, query, userID)
}

func (r *PgxShopRecordRepository) queryRecords(ctx context.Context, query string, args ...any) ([]domain.ShopRecord, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query shop records", err)
	}
	defer rows.Close()

	var records []domain.ShopRecord
	for rows.Next() {
		model, err := scanShopRecord(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan shop record", err)
		}
		records = append(records, mapping.ToDomainShopRecord(*model))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating shop records", err)
	}

	return records, nil
}
