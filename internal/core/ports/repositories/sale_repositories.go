package repositories

import (
	"context"
	"time"

	"github.com/goldify/goldify_backend/internal/core/domain"
)

// SaleFilter narrows and pages a sale listing.
type SaleFilter struct {
	StartDate      *time.Time
	EndDate        *time.Time
	CustomerName   string
	PaymentStatus  domain.PaymentStatus
	DeliveryStatus domain.DeliveryStatus
	Limit          int
	Offset         int
}

// SaleReader defines read operations for jewelry sales.
type SaleReader interface {
	// FindByID retrieves one of the owner's sales.
	// Returns apperrors.ErrNotFound if absent or owned by someone else.
	FindByID(ctx context.Context, userID, saleID string) (*domain.JewelrySale, error)

	// List retrieves the owner's sales matching the filter, newest first,
	// along with the total match count before paging.
	List(ctx context.Context, userID string, filter SaleFilter) ([]domain.JewelrySale, int, error)

	// ListByPaymentStatuses retrieves the owner's sales whose payment status
	// is in the given set, newest first.
	ListByPaymentStatuses(ctx context.Context, userID string, statuses []domain.PaymentStatus) ([]domain.JewelrySale, error)
}

// SaleWriter defines write operations for jewelry sales.
type SaleWriter interface {
	// SaveSale inserts a new sale.
	SaveSale(ctx context.Context, sale domain.JewelrySale) error

	// UpdateSale persists the full current state of an existing sale.
	UpdateSale(ctx context.Context, sale domain.JewelrySale) error

	// DeleteSale removes one of the owner's sales.
	// Returns apperrors.ErrNotFound if absent.
	DeleteSale(ctx context.Context, userID, saleID string) error
}

// SaleRepositoryFacade combines all sale repository interfaces.
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}
