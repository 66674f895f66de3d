package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/goldify/goldify_backend/internal/apperrors"
	"github.com/goldify/goldify_backend/internal/core/domain"
	portsrepo "github.com/goldify/goldify_backend/internal/core/ports/repositories"
	"github.com/goldify/goldify_backend/internal/models"
	"github.com/goldify/goldify_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const saleColumns = `
	sale_id, user_id, customer_name, contact_number,
	gold_weight, stone_weight, polish_per_tola, customer_gold,
	making_charges, other_charges, advance_payment, current_payment,
	charge_for_added_gold, include_customer_gold_price, gold_rate,
	calculations, payment_status, delivery_status,
	payment_history, gold_return_history,
	notes, order_date, delivery_date,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxSaleRepository persists jewelry sales using pgxpool. Calculations and
// both histories are JSONB columns.
type PgxSaleRepository struct {
	BaseRepository
}

func newPgxSaleRepository(db *pgxpool.Pool) *PgxSaleRepository {
	return &PgxSaleRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanSale(row pgx.Row) (*models.JewelrySale, error) {
	var m models.JewelrySale
	err := row.Scan(
		&m.SaleID, &m.UserID, &m.CustomerName, &m.ContactNumber,
		&m.GoldWeight, &m.StoneWeight, &m.PolishPerTola, &m.CustomerGold,
		&m.MakingCharges, &m.OtherCharges, &m.AdvancePayment, &m.CurrentPayment,
		&m.ChargeForAddedGold, &m.IncludeCustomerGoldPrice, &m.GoldRate,
		&m.Calculations, &m.PaymentStatus, &m.DeliveryStatus,
		&m.PaymentHistory, &m.GoldReturnHistory,
		&m.Notes, &m.OrderDate, &m.DeliveryDate,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveSale inserts a new sale.
func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.JewelrySale) error {
	m := mapping.ToModelJewelrySale(sale)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO jewelry_sales (`+saleColumns+`
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`,
		m.SaleID, m.UserID, m.CustomerName, m.ContactNumber,
		m.GoldWeight, m.StoneWeight, m.PolishPerTola, m.CustomerGold,
		m.MakingCharges, m.OtherCharges, m.AdvancePayment, m.CurrentPayment,
		m.ChargeForAddedGold, m.IncludeCustomerGoldPrice, m.GoldRate,
		m.Calculations, m.PaymentStatus, m.DeliveryStatus,
		m.PaymentHistory, m.GoldReturnHistory,
		m.Notes, m.OrderDate, m.DeliveryDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert sale", err)
	}
	return nil
}

// UpdateSale persists the full current state of an existing sale.
func (r *PgxSaleRepository) UpdateSale(ctx context.Context, sale domain.JewelrySale) error {
	m := mapping.ToModelJewelrySale(sale)

	tag, err := r.Pool.Exec(ctx, `
		UPDATE jewelry_sales SET
			customer_name = $1, contact_number = $2,
			gold_weight = $3, stone_weight = $4, polish_per_tola = $5, customer_gold = $6,
			making_charges = $7, other_charges = $8,
			advance_payment = $9, current_payment = $10,
			charge_for_added_gold = $11, include_customer_gold_price = $12, gold_rate = $13,
			calculations = $14, payment_status = $15, delivery_status = $16,
			payment_history = $17, gold_return_history = $18,
			notes = $19, order_date = $20, delivery_date = $21,
			last_updated_at = $22, last_updated_by = $23
		WHERE sale_id = $24 AND user_id = $25`,
		m.CustomerName, m.ContactNumber,
		m.GoldWeight, m.StoneWeight, m.PolishPerTola, m.CustomerGold,
		m.MakingCharges, m.OtherCharges,
		m.AdvancePayment, m.CurrentPayment,
		m.ChargeForAddedGold, m.IncludeCustomerGoldPrice, m.GoldRate,
		m.Calculations, m.PaymentStatus, m.DeliveryStatus,
		m.PaymentHistory, m.GoldReturnHistory,
		m.Notes, m.OrderDate, m.DeliveryDate,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.SaleID, m.UserID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update sale", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteSale removes one of the owner's sales.
func (r *PgxSaleRepository) DeleteSale(ctx context.Context, userID, saleID string) error {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM jewelry_sales WHERE sale_id = $1 AND user_id = $2`,
		saleID, userID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete sale", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindByID retrieves one of the owner's sales. Scoping by user_id makes
// another owner's sale indistinguishable from a missing one.
func (r *PgxSaleRepository) FindByID(ctx context.Context, userID, saleID string) (*domain.JewelrySale, error) {
	query := `SELECT ` + saleColumns + `
		FROM jewelry_sales
		WHERE sale_id = $1 AND user_id = $2;`

	m, err := scanSale(r.Pool.QueryRow(ctx, query, saleID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find sale", err)
	}

	sale := mapping.ToDomainJewelrySale(*m)
	return &sale, nil
}

// List retrieves the owner's sales matching the filter, newest first, along
// with the total match count before paging.
func (r *PgxSaleRepository) List(ctx context.Context, userID string, filter portsrepo.SaleFilter) ([]domain.JewelrySale, int, error) {
	baseQuery := `FROM jewelry_sales WHERE user_id = $1`
	args := []interface{}{userID}
	argNum := 2

	if filter.StartDate != nil {
		baseQuery += fmt.Sprintf(" AND order_date >= $%d", argNum)
		args = append(args, *filter.StartDate)
		argNum++
	}
	if filter.EndDate != nil {
		baseQuery += fmt.Sprintf(" AND order_date <= $%d", argNum)
		args = append(args, *filter.EndDate)
		argNum++
	}
	if filter.CustomerName != "" {
		baseQuery += fmt.Sprintf(" AND customer_name ILIKE $%d", argNum)
		args = append(args, "%"+filter.CustomerName+"%")
		argNum++
	}
	if filter.PaymentStatus != "" {
		baseQuery += fmt.Sprintf(" AND payment_status = $%d", argNum)
		args = append(args, string(filter.PaymentStatus))
		argNum++
	}
	if filter.DeliveryStatus != "" {
		baseQuery += fmt.Sprintf(" AND delivery_status = $%d", argNum)
		args = append(args, string(filter.DeliveryStatus))
		argNum++
	}

	var total int
	err := r.Pool.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count sales", err)
	}
	if total == 0 {
		return []domain.JewelrySale{}, 0, nil
	}

	baseQuery += " ORDER BY order_date DESC"
	if filter.Limit > 0 {
		baseQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.Pool.Query(ctx, "SELECT "+saleColumns+" "+baseQuery, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to list sales", err)
	}
	defer rows.Close()

	var sales []domain.JewelrySale
	for rows.Next() {
		m, err := scanSale(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan sale", err)
		}
		sales = append(sales, mapping.ToDomainJewelrySale(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating sales", err)
	}

	return sales, total, nil
}

// ListByPaymentStatuses retrieves the owner's sales whose payment status is in
// the given set, newest first.
func (r *PgxSaleRepository) ListByPaymentStatuses(ctx context.Context, userID string, statuses []domain.PaymentStatus) ([]domain.JewelrySale, error) {
	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	query := `SELECT ` + saleColumns + `
		FROM jewelry_sales
		WHERE user_id = $1 AND payment_status = ANY($2)
		ORDER BY order_date DESC;`

	rows, err := r.Pool.Query(ctx, query, userID, statusStrings)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list sales by payment status", err)
	}
	defer rows.Close()

	var sales []domain.JewelrySale
	for rows.Next() {
		m, err := scanSale(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan sale", err)
		}
		sales = append(sales, mapping.ToDomainJewelrySale(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating sales", err)
	}

	return sales, nil
}
