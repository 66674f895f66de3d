package services

import (
	"context"
	"fmt"
	"time"

	"github.com/goldify/goldify_backend/internal/apperrors"
	"github.com/goldify/goldify_backend/internal/core/domain"
	portsrepo "github.com/goldify/goldify_backend/internal/core/ports/repositories"
	portssvc "github.com/goldify/goldify_backend/internal/core/ports/services"
	"github.com/goldify/goldify_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleService manages jewelry sale orders. All derived pricing is computed
// server-side from the raw inputs; clients never submit calculations.
type SaleService struct {
	saleRepo portsrepo.SaleRepositoryFacade
	now      func() time.Time
}

// NewSaleService creates a new SaleService.
func NewSaleService(saleRepo portsrepo.SaleRepositoryFacade) *SaleService {
	return &SaleService{saleRepo: saleRepo, now: time.Now}
}

var _ portssvc.SaleSvcFacade = (*SaleService)(nil)

// CreateSale creates an order and derives its full pricing. An advance
// payment seeds the payment history.
func (s *SaleService) CreateSale(ctx context.Context, userID string, req dto.CreateSaleRequest) (*domain.JewelrySale, error) {
	if !req.GoldWeight.IsPositive() {
		return nil, fmt.Errorf("%w: goldWeight must be a positive number", apperrors.ErrValidation)
	}
	if req.StoneWeight.IsNegative() || req.PolishPerTola.IsNegative() ||
		req.CustomerGold.IsNegative() || req.MakingCharges.IsNegative() ||
		req.OtherCharges.IsNegative() || req.AdvancePayment.IsNegative() {
		return nil, fmt.Errorf("%w: weights and charges must not be negative", apperrors.ErrValidation)
	}
	if !req.GoldRate.IsPositive() {
		return nil, fmt.Errorf("%w: goldRate must be a positive number", apperrors.ErrValidation)
	}

	now := s.now()
	orderDate := now
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	chargeForAddedGold := true
	if req.ChargeForAddedGold != nil {
		chargeForAddedGold = *req.ChargeForAddedGold
	}

	sale := domain.JewelrySale{
		SaleID:        uuid.NewString(),
		UserID:        userID,
		CustomerName:  req.CustomerName,
		ContactNumber: req.ContactNumber,

		GoldWeight:    domain.RoundWeight(req.GoldWeight),
		StoneWeight:   domain.RoundWeight(req.StoneWeight),
		PolishPerTola: req.PolishPerTola,
		CustomerGold:  domain.RoundWeight(req.CustomerGold),

		MakingCharges: domain.RoundMoney(req.MakingCharges),
		OtherCharges:  domain.RoundMoney(req.OtherCharges),

		ChargeForAddedGold:       chargeForAddedGold,
		IncludeCustomerGoldPrice: req.IncludeCustomerGoldPrice,

		GoldRate: req.GoldRate,

		DeliveryStatus:    domain.DeliveryPending,
		PaymentHistory:    []domain.Payment{},
		GoldReturnHistory: []domain.GoldReturn{},

		Notes:     req.Notes,
		OrderDate: orderDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if req.AdvancePayment.IsPositive() {
		sale.AdvancePayment = domain.RoundMoney(req.AdvancePayment)
		sale.AddPayment(req.AdvancePayment, domain.PaymentMethodCash, "Initial advance payment", now)
	} else {
		sale.Recalculate()
	}

	if err := s.saleRepo.SaveSale(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}
	return &sale, nil
}

// GetSale retrieves one of the owner's sales.
func (s *SaleService) GetSale(ctx context.Context, userID, saleID string) (*domain.JewelrySale, error) {
	sale, err := s.saleRepo.FindByID(ctx, userID, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale %s: %w", saleID, err)
	}
	return sale, nil
}

// ListSales retrieves the owner's sales matching the request filters.
func (s *SaleService) ListSales(ctx context.Context, userID string, req dto.ListSalesRequest) ([]domain.JewelrySale, int, error) {
	filter, err := buildSaleFilter(req)
	if err != nil {
		return nil, 0, err
	}
	sales, total, err := s.saleRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, total, nil
}

func buildSaleFilter(req dto.ListSalesRequest) (portsrepo.SaleFilter, error) {
	page := req.Page
	if page <= 0 {
		page = 1
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}

	filter := portsrepo.SaleFilter{
		CustomerName: req.CustomerName,
		Limit:        limit,
		Offset:       (page - 1) * limit,
	}

	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid start date, use YYYY-MM-DD", apperrors.ErrValidation)
		}
		filter.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid end date, use YYYY-MM-DD", apperrors.ErrValidation)
		}
		inclusive := endOfDay(end)
		filter.EndDate = &inclusive
	}
	if req.PaymentStatus != "" {
		filter.PaymentStatus = domain.PaymentStatus(req.PaymentStatus)
	}
	if req.DeliveryStatus != "" {
		status := domain.DeliveryStatus(req.DeliveryStatus)
		if !status.Valid() {
			return filter, fmt.Errorf("%w: invalid delivery status", apperrors.ErrValidation)
		}
		filter.DeliveryStatus = status
	}
	return filter, nil
}

// UpdateSale edits an order's inputs; any pricing-input change triggers a
// full recalculation. Histories are append-only and not editable here.
func (s *SaleService) UpdateSale(ctx context.Context, userID, saleID string, req dto.UpdateSaleRequest) (*domain.JewelrySale, error) {
	sale, err := s.saleRepo.FindByID(ctx, userID, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale %s: %w", saleID, err)
	}

	if req.GoldWeight != nil && !req.GoldWeight.IsPositive() {
		return nil, fmt.Errorf("%w: goldWeight must be a positive number", apperrors.ErrValidation)
	}
	if req.GoldRate != nil && !req.GoldRate.IsPositive() {
		return nil, fmt.Errorf("%w: goldRate must be a positive number", apperrors.ErrValidation)
	}

	if req.CustomerName != nil {
		sale.CustomerName = *req.CustomerName
	}
	if req.ContactNumber != nil {
		sale.ContactNumber = *req.ContactNumber
	}
	if req.GoldWeight != nil {
		sale.GoldWeight = domain.RoundWeight(*req.GoldWeight)
	}
	if req.StoneWeight != nil {
		sale.StoneWeight = domain.RoundWeight(*req.StoneWeight)
	}
	if req.PolishPerTola != nil {
		sale.PolishPerTola = *req.PolishPerTola
	}
	if req.MakingCharges != nil {
		sale.MakingCharges = domain.RoundMoney(*req.MakingCharges)
	}
	if req.OtherCharges != nil {
		sale.OtherCharges = domain.RoundMoney(*req.OtherCharges)
	}
	if req.ChargeForAddedGold != nil {
		sale.ChargeForAddedGold = *req.ChargeForAddedGold
	}
	if req.IncludeCustomerGoldPrice != nil {
		sale.IncludeCustomerGoldPrice = *req.IncludeCustomerGoldPrice
	}
	if req.GoldRate != nil {
		sale.GoldRate = *req.GoldRate
	}
	if req.DeliveryStatus != nil {
		status := domain.DeliveryStatus(*req.DeliveryStatus)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: invalid delivery status", apperrors.ErrValidation)
		}
		sale.DeliveryStatus = status
	}
	if req.Notes != nil {
		sale.Notes = *req.Notes
	}

	sale.Recalculate()

	if err := s.saveSale(ctx, sale, userID); err != nil {
		return nil, err
	}
	return sale, nil
}

// DeleteSale removes one of the owner's sales.
func (s *SaleService) DeleteSale(ctx context.Context, userID, saleID string) error {
	if err := s.saleRepo.DeleteSale(ctx, userID, saleID); err != nil {
		return fmt.Errorf("failed to delete sale %s: %w", saleID, err)
	}
	return nil
}

// AddPayment appends a payment and rederives balance and payment status.
func (s *SaleService) AddPayment(ctx context.Context, userID, saleID string, req dto.AddPaymentRequest) (*domain.JewelrySale, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be a positive number", apperrors.ErrValidation)
	}
	method := domain.PaymentMethodCash
	if req.Method != "" {
		method = domain.PaymentMethod(req.Method)
		if !method.Valid() {
			return nil, fmt.Errorf("%w: invalid payment method", apperrors.ErrValidation)
		}
	}

	sale, err := s.saleRepo.FindByID(ctx, userID, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale %s: %w", saleID, err)
	}

	sale.AddPayment(req.Amount, method, req.Note, s.now())

	if err := s.saveSale(ctx, sale, userID); err != nil {
		return nil, err
	}
	return sale, nil
}

// AddGoldReturn records gold handed over by the customer after order creation
// and re-runs the deficit/surplus pricing rule.
func (s *SaleService) AddGoldReturn(ctx context.Context, userID, saleID string, req dto.AddGoldReturnRequest) (*domain.JewelrySale, error) {
	if !req.Weight.IsPositive() {
		return nil, fmt.Errorf("%w: gold return weight must be a positive number", apperrors.ErrValidation)
	}

	sale, err := s.saleRepo.FindByID(ctx, userID, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale %s: %w", saleID, err)
	}

	sale.AddGoldReturn(req.Weight, req.Note, s.now())

	if err := s.saveSale(ctx, sale, userID); err != nil {
		return nil, err
	}
	return sale, nil
}

// MarkDelivered marks the order delivered. Outstanding balance is carried as
// arrears rather than blocking delivery.
func (s *SaleService) MarkDelivered(ctx context.Context, userID, saleID string, deliveryDate *time.Time) (*domain.JewelrySale, error) {
	sale, err := s.saleRepo.FindByID(ctx, userID, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale %s: %w", saleID, err)
	}

	when := s.now()
	if deliveryDate != nil {
		when = *deliveryDate
	}
	sale.MarkDelivered(when)

	if err := s.saveSale(ctx, sale, userID); err != nil {
		return nil, err
	}
	return sale, nil
}

// ListPendingPayments retrieves sales still awaiting full payment.
func (s *SaleService) ListPendingPayments(ctx context.Context, userID string) ([]domain.JewelrySale, error) {
	sales, err := s.saleRepo.ListByPaymentStatuses(ctx, userID,
		[]domain.PaymentStatus{domain.PaymentPending, domain.PaymentPartial})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending payments: %w", err)
	}
	return sales, nil
}

// TotalArrears sums outstanding balances across unpaid sales.
func (s *SaleService) TotalArrears(ctx context.Context, userID string) (decimal.Decimal, error) {
	sales, err := s.ListPendingPayments(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, sale := range sales {
		if sale.Calculations.RemainingBalance.IsPositive() {
			total = total.Add(sale.Calculations.RemainingBalance)
		}
	}
	return domain.RoundMoney(total), nil
}

// GetStatistics aggregates the owner's sales over an optional order-date range.
func (s *SaleService) GetStatistics(ctx context.Context, userID string, start, end *time.Time) (*dto.SaleStatistics, error) {
	filter := portsrepo.SaleFilter{StartDate: start, EndDate: end}
	sales, _, err := s.saleRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale statistics: %w", err)
	}

	stats := dto.SaleStatistics{TotalSales: len(sales)}
	for _, sale := range sales {
		stats.TotalRevenue = stats.TotalRevenue.Add(sale.Calculations.TotalPrice)
		stats.TotalAdvance = stats.TotalAdvance.Add(sale.AdvancePayment)
		stats.TotalPayments = stats.TotalPayments.Add(sale.CurrentPayment)
		stats.TotalGoldWeight = stats.TotalGoldWeight.Add(sale.Calculations.TotalGoldWeight)
		stats.TotalCustomerGold = stats.TotalCustomerGold.Add(sale.CustomerGold)

		remaining := sale.Calculations.RemainingBalance
		if remaining.IsPositive() {
			stats.TotalBalance = stats.TotalBalance.Add(remaining)
			if sale.DeliveryStatus == domain.DeliveryDelivered {
				stats.TotalArrears = stats.TotalArrears.Add(remaining)
			}
		}

		switch sale.PaymentStatus {
		case domain.PaymentPending:
			stats.PendingSales++
		case domain.PaymentPartial:
			stats.PartialSales++
		case domain.PaymentPaid:
			stats.PaidSales++
		case domain.PaymentOverpaid:
			stats.OverpaidSales++
		}
	}

	stats.TotalRevenue = domain.RoundMoney(stats.TotalRevenue)
	stats.TotalBalance = domain.RoundMoney(stats.TotalBalance)
	stats.TotalArrears = domain.RoundMoney(stats.TotalArrears)
	stats.TotalAdvance = domain.RoundMoney(stats.TotalAdvance)
	stats.TotalPayments = domain.RoundMoney(stats.TotalPayments)
	stats.TotalGoldWeight = domain.RoundWeight(stats.TotalGoldWeight)
	stats.TotalCustomerGold = domain.RoundWeight(stats.TotalCustomerGold)
	if stats.TotalSales > 0 {
		stats.AverageSaleValue = domain.RoundMoney(
			stats.TotalRevenue.Div(decimal.NewFromInt(int64(stats.TotalSales))))
	}

	return &stats, nil
}

func (s *SaleService) saveSale(ctx context.Context, sale *domain.JewelrySale, userID string) error {
	sale.LastUpdatedAt = s.now()
	sale.LastUpdatedBy = userID
	if err := s.saleRepo.UpdateSale(ctx, *sale); err != nil {
		return fmt.Errorf("failed to save sale: %w", err)
	}
	return nil
}
