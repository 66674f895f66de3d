package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/goldify/goldify_backend/internal/apperrors"
	"github.com/goldify/goldify_backend/internal/core/domain"
	portsrepo "github.com/goldify/goldify_backend/internal/core/ports/repositories"
	"github.com/goldify/goldify_backend/internal/core/services"
	"github.com/goldify/goldify_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// fakeSaleRepo keeps sales in memory, keyed by sale ID.
type fakeSaleRepo struct {
	mu    sync.Mutex
	sales map[string]domain.JewelrySale
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[string]domain.JewelrySale)}
}

func (f *fakeSaleRepo) SaveSale(ctx context.Context, sale domain.JewelrySale) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sales[sale.SaleID] = sale
	return nil
}

func (f *fakeSaleRepo) UpdateSale(ctx context.Context, sale domain.JewelrySale) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.sales[sale.SaleID]
	if !ok || existing.UserID != sale.UserID {
		return apperrors.ErrNotFound
	}
	f.sales[sale.SaleID] = sale
	return nil
}

func (f *fakeSaleRepo) DeleteSale(ctx context.Context, userID, saleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sale, ok := f.sales[saleID]
	if !ok || sale.UserID != userID {
		return apperrors.ErrNotFound
	}
	delete(f.sales, saleID)
	return nil
}

func (f *fakeSaleRepo) FindByID(ctx context.Context, userID, saleID string) (*domain.JewelrySale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sale, ok := f.sales[saleID]
	if !ok || sale.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	out := sale
	return &out, nil
}

func (f *fakeSaleRepo) List(ctx context.Context, userID string, filter portsrepo.SaleFilter) ([]domain.JewelrySale, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.JewelrySale
	for _, sale := range f.sales {
		if sale.UserID != userID {
			continue
		}
		if filter.StartDate != nil && sale.OrderDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && sale.OrderDate.After(*filter.EndDate) {
			continue
		}
		if filter.PaymentStatus != "" && sale.PaymentStatus != filter.PaymentStatus {
			continue
		}
		if filter.DeliveryStatus != "" && sale.DeliveryStatus != filter.DeliveryStatus {
			continue
		}
		out = append(out, sale)
	}
	total := len(out)
	if filter.Offset > 0 && filter.Offset < len(out) {
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

func (f *fakeSaleRepo) ListByPaymentStatuses(ctx context.Context, userID string, statuses []domain.PaymentStatus) ([]domain.JewelrySale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.JewelrySale
	for _, sale := range f.sales {
		if sale.UserID != userID {
			continue
		}
		for _, status := range statuses {
			if sale.PaymentStatus == status {
				out = append(out, sale)
				break
			}
		}
	}
	return out, nil
}

var _ portsrepo.SaleRepositoryFacade = (*fakeSaleRepo)(nil)

type SaleServiceTestSuite struct {
	suite.Suite
	repo    *fakeSaleRepo
	service *services.SaleService
	userID  string
	ctx     context.Context
}

func (suite *SaleServiceTestSuite) SetupTest() {
	suite.repo = newFakeSaleRepo()
	suite.service = services.NewSaleService(suite.repo)
	suite.userID = uuid.NewString()
	suite.ctx = context.Background()
}

// baseRequest: 11.664g at 116640/tola prices the gold at exactly 116640,
// plus 5000 making charges.
func baseRequest() dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		CustomerName:  "Ahmed Khan",
		ContactNumber: "0300-1234567",
		GoldWeight:    decimal.RequireFromString("11.664"),
		MakingCharges: decimal.RequireFromString("5000"),
		GoldRate:      decimal.RequireFromString("116640"),
	}
}

func (suite *SaleServiceTestSuite) TestCreateSale_DerivesPricing() {
	sale, err := suite.service.CreateSale(suite.ctx, suite.userID, baseRequest())

	suite.Require().NoError(err)
	suite.Equal("116640.00", sale.Calculations.GoldPrice.StringFixed(2))
	suite.Equal("121640.00", sale.Calculations.TotalPrice.StringFixed(2))
	suite.Equal(domain.PaymentPending, sale.PaymentStatus)
	suite.Equal(domain.DeliveryPending, sale.DeliveryStatus)
	suite.True(sale.ChargeForAddedGold)
	suite.Empty(sale.PaymentHistory)

	stored, err := suite.service.GetSale(suite.ctx, suite.userID, sale.SaleID)
	suite.Require().NoError(err)
	suite.Equal(sale.SaleID, stored.SaleID)
}

func (suite *SaleServiceTestSuite) TestCreateSale_AdvanceSeedsPaymentHistory() {
	req := baseRequest()
	req.AdvancePayment = decimal.RequireFromString("21640")

	sale, err := suite.service.CreateSale(suite.ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().Len(sale.PaymentHistory, 1)
	suite.Equal("Initial advance payment", sale.PaymentHistory[0].Note)
	suite.Equal(domain.PaymentMethodCash, sale.PaymentHistory[0].Method)
	suite.Equal("21640.00", sale.CurrentPayment.StringFixed(2))
	suite.Equal("100000.00", sale.Calculations.RemainingBalance.StringFixed(2))
	suite.Equal(domain.PaymentPartial, sale.PaymentStatus)
}

func (suite *SaleServiceTestSuite) TestCreateSale_ChargeForAddedGoldDisabled() {
	req := baseRequest()
	disabled := false
	req.ChargeForAddedGold = &disabled

	sale, err := suite.service.CreateSale(suite.ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.True(sale.Calculations.GoldPrice.IsZero())
	suite.Equal("5000.00", sale.Calculations.TotalPrice.StringFixed(2))
}

func (suite *SaleServiceTestSuite) TestCreateSale_Validation() {
	req := baseRequest()
	req.GoldWeight = decimal.Zero
	_, err := suite.service.CreateSale(suite.ctx, suite.userID, req)
	suite.ErrorIs(err, apperrors.ErrValidation)

	req = baseRequest()
	req.GoldRate = decimal.Zero
	_, err = suite.service.CreateSale(suite.ctx, suite.userID, req)
	suite.ErrorIs(err, apperrors.ErrValidation)

	req = baseRequest()
	req.AdvancePayment = decimal.RequireFromString("-1")
	_, err = suite.service.CreateSale(suite.ctx, suite.userID, req)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SaleServiceTestSuite) TestGetSale_OwnerScoped() {
	sale, err := suite.service.CreateSale(suite.ctx, suite.userID, baseRequest())
	suite.Require().NoError(err)

	_, err = suite.service.GetSale(suite.ctx, uuid.NewString(), sale.SaleID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SaleServiceTestSuite) TestUpdateSale_Recalculates() {
	sale, err := suite.service.CreateSale(suite.ctx, suite.userID, baseRequest())
	suite.Require().NoError(err)

	newCharges := decimal.RequireFromString("8000")
	updated, err := suite.service.UpdateSale(suite.ctx, suite.userID, sale.SaleID, dto.UpdateSaleRequest{
		MakingCharges: &newCharges,
	})

	suite.Require().NoError(err)
	suite.Equal("124640.00", updated.Calculations.TotalPrice.StringFixed(2))
	suite.Equal("116640.00", updated.Calculations.GoldPrice.StringFixed(2))
}

func (suite *SaleServiceTestSuite) TestAddPayment_FullSettlement() {
	sale, err := suite.service.CreateSale(suite.ctx, suite.userID, baseRequest())
	suite.Require().NoError(err)

	updated, err := suite.service.AddPayment(suite.ctx, suite.userID, sale.SaleID, dto.AddPaymentRequest{
		Amount: decimal.RequireFromString("121640"),
		Method: "bank_transfer",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPaid, updated.PaymentStatus)
	suite.True(updated.Calculations.RemainingBalance.IsZero())
	suite.Require().Len(updated.PaymentHistory, 1)
	suite.Equal(domain.PaymentMethodBankTransfer, updated.PaymentHistory[0].Method)
}

func (suite *SaleServiceTestSuite) TestAddPayment_InvalidMethod() {
	sale, err := suite.service.CreateSale(suite.ctx, suite.userID, baseRequest())
	suite.Require().NoError(err)

	_, err = suite.service.AddPayment(suite.ctx, suite.userID, sale.SaleID, dto.AddPaymentRequest{
		Amount: decimal.RequireFromString("100"),
		Method: "barter",
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SaleServiceTestSuite) TestAddGoldReturn_ClearsGoldPrice() {
	sale, err := suite.service.CreateSale(suite.ctx, suite.userID, baseRequest())
	suite.Require().NoError(err)

	updated, err := suite.service.AddGoldReturn(suite.ctx, suite.userID, sale.SaleID, dto.AddGoldReturnRequest{
		Weight: decimal.RequireFromString("11.664"),
		Note:   "old bangles",
	})

	suite.Require().NoError(err)
	suite.True(updated.Calculations.GoldPrice.IsZero())
	suite.Equal("5000.00", updated.Calculations.TotalPrice.StringFixed(2))
	suite.Require().Len(updated.GoldReturnHistory, 1)
	suite.Equal("old bangles", updated.GoldReturnHistory[0].Note)
}

func (suite *SaleServiceTestSuite) TestMarkDelivered_WithOutstandingBalance() {
	sale, err := suite.service.CreateSale(suite.ctx, suite.userID, baseRequest())
	suite.Require().NoError(err)

	when := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	updated, err := suite.service.MarkDelivered(suite.ctx, suite.userID, sale.SaleID, &when)

	suite.Require().NoError(err)
	suite.Equal(domain.DeliveryDelivered, updated.DeliveryStatus)
	suite.Require().NotNil(updated.DeliveryDate)
	suite.True(updated.DeliveryDate.Equal(when))
	suite.Equal("121640.00", updated.Calculations.Arrears.StringFixed(2))
}

func (suite *SaleServiceTestSuite) TestDeleteSale() {
	sale, err := suite.service.CreateSale(suite.ctx, suite.userID, baseRequest())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.DeleteSale(suite.ctx, suite.userID, sale.SaleID))

	_, err = suite.service.GetSale(suite.ctx, suite.userID, sale.SaleID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SaleServiceTestSuite) TestListSales_InvalidDeliveryStatus() {
	_, _, err := suite.service.ListSales(suite.ctx, suite.userID, dto.ListSalesRequest{
		DeliveryStatus: "shipped",
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SaleServiceTestSuite) TestPendingPaymentsAndArrears() {
	// One fully paid, one partial, one untouched.
	paid, err := suite.service.CreateSale(suite.ctx, suite.userID, baseRequest())
	suite.Require().NoError(err)
	_, err = suite.service.AddPayment(suite.ctx, suite.userID, paid.SaleID, dto.AddPaymentRequest{
		Amount: decimal.RequireFromString("121640"),
	})
	suite.Require().NoError(err)

	partialReq := baseRequest()
	partialReq.AdvancePayment = decimal.RequireFromString("21640")
	_, err = suite.service.CreateSale(suite.ctx, suite.userID, partialReq)
	suite.Require().NoError(err)

	_, err = suite.service.CreateSale(suite.ctx, suite.userID, baseRequest())
	suite.Require().NoError(err)

	pending, err := suite.service.ListPendingPayments(suite.ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Len(pending, 2)

	arrears, err := suite.service.TotalArrears(suite.ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Equal("221640.00", arrears.StringFixed(2))
}

func (suite *SaleServiceTestSuite) TestGetStatistics() {
	req := baseRequest()
	req.AdvancePayment = decimal.RequireFromString("21640")
	sale, err := suite.service.CreateSale(suite.ctx, suite.userID, req)
	suite.Require().NoError(err)
	_, err = suite.service.MarkDelivered(suite.ctx, suite.userID, sale.SaleID, nil)
	suite.Require().NoError(err)

	_, err = suite.service.CreateSale(suite.ctx, suite.userID, baseRequest())
	suite.Require().NoError(err)

	stats, err := suite.service.GetStatistics(suite.ctx, suite.userID, nil, nil)

	suite.Require().NoError(err)
	suite.Equal(2, stats.TotalSales)
	suite.Equal("243280.00", stats.TotalRevenue.StringFixed(2))
	suite.Equal("21640.00", stats.TotalPayments.StringFixed(2))
	suite.Equal("221640.00", stats.TotalBalance.StringFixed(2))
	// Only the delivered sale's outstanding balance counts as arrears.
	suite.Equal("100000.00", stats.TotalArrears.StringFixed(2))
	suite.Equal(1, stats.PartialSales)
	suite.Equal(1, stats.PendingSales)
	suite.Equal("121640.00", stats.AverageSaleValue.StringFixed(2))
}

func TestSaleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
