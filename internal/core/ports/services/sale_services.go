package services

import (
	"context"
	"time"

	"github.com/goldify/goldify_backend/internal/core/domain"
	"github.com/goldify/goldify_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// SaleReaderSvc defines the read side of the sales engine.
type SaleReaderSvc interface {
	// GetSale retrieves one of the owner's sales.
	GetSale(ctx context.Context, userID, saleID string) (*domain.JewelrySale, error)

	// ListSales retrieves the owner's sales matching the request filters,
	// newest first, plus the total match count.
	ListSales(ctx context.Context, userID string, req dto.ListSalesRequest) ([]domain.JewelrySale, int, error)

	// ListPendingPayments retrieves sales with pending or partial payment.
	ListPendingPayments(ctx context.Context, userID string) ([]domain.JewelrySale, error)

	// TotalArrears sums outstanding arrears across unpaid sales.
	TotalArrears(ctx context.Context, userID string) (decimal.Decimal, error)

	// GetStatistics aggregates the owner's sales over an optional date range.
	GetStatistics(ctx context.Context, userID string, start, end *time.Time) (*dto.SaleStatistics, error)
}

// SaleWriterSvc defines the mutating side of the sales engine. Every pricing
// input change triggers a full recalculation of the derived fields.
type SaleWriterSvc interface {
	CreateSale(ctx context.Context, userID string, req dto.CreateSaleRequest) (*domain.JewelrySale, error)
	UpdateSale(ctx context.Context, userID, saleID string, req dto.UpdateSaleRequest) (*domain.JewelrySale, error)
	DeleteSale(ctx context.Context, userID, saleID string) error

	// AddPayment appends to the sale's payment history and rederives balance
	// and payment status.
	AddPayment(ctx context.Context, userID, saleID string, req dto.AddPaymentRequest) (*domain.JewelrySale, error)

	// AddGoldReturn appends to the gold-return history and re-runs the
	// deficit/surplus pricing rule.
	AddGoldReturn(ctx context.Context, userID, saleID string, req dto.AddGoldReturnRequest) (*domain.JewelrySale, error)

	// MarkDelivered sets the delivery status; payment completion is not a
	// precondition.
	MarkDelivered(ctx context.Context, userID, saleID string, deliveryDate *time.Time) (*domain.JewelrySale, error)
}

// SaleSvcFacade combines the sales engine interfaces.
type SaleSvcFacade interface {
	SaleReaderSvc
	SaleWriterSvc
}
