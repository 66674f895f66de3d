package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest defines the data needed to create a jewelry sale order.
// All derived pricing is computed server-side from these inputs.
type CreateSaleRequest struct {
	CustomerName  string `json:"customerName" binding:"required"`
	ContactNumber string `json:"contactNumber"`

	GoldWeight    decimal.Decimal `json:"goldWeight" binding:"required"`
	StoneWeight   decimal.Decimal `json:"stoneWeight"`
	PolishPerTola decimal.Decimal `json:"polishPerTola"`
	CustomerGold  decimal.Decimal `json:"customerGold"`

	MakingCharges  decimal.Decimal `json:"makingCharges"`
	OtherCharges   decimal.Decimal `json:"otherCharges"`
	AdvancePayment decimal.Decimal `json:"advancePayment"`

	// ChargeForAddedGold defaults to true when omitted.
	ChargeForAddedGold       *bool `json:"chargeForAddedGold"`
	IncludeCustomerGoldPrice bool  `json:"includeCustomerGoldPrice"`

	GoldRate decimal.Decimal `json:"goldRate" binding:"required"`

	Notes     string     `json:"notes"`
	OrderDate *time.Time `json:"orderDate"`
}

// UpdateSaleRequest defines the editable fields of an existing sale.
// Nil fields are left unchanged; any pricing-input change triggers a full
// recalculation. Payment and gold-return histories are append-only and are
// not editable here.
type UpdateSaleRequest struct {
	CustomerName  *string `json:"customerName"`
	ContactNumber *string `json:"contactNumber"`

	GoldWeight    *decimal.Decimal `json:"goldWeight"`
	StoneWeight   *decimal.Decimal `json:"stoneWeight"`
	PolishPerTola *decimal.Decimal `json:"polishPerTola"`

	MakingCharges *decimal.Decimal `json:"makingCharges"`
	OtherCharges  *decimal.Decimal `json:"otherCharges"`

	ChargeForAddedGold       *bool `json:"chargeForAddedGold"`
	IncludeCustomerGoldPrice *bool `json:"includeCustomerGoldPrice"`

	GoldRate *decimal.Decimal `json:"goldRate"`

	DeliveryStatus *string `json:"deliveryStatus"`
	Notes          *string `json:"notes"`
}

// ListSalesRequest filters and pages a sale listing (query parameters).
type ListSalesRequest struct {
	Page           int    `form:"page,default=1"`
	Limit          int    `form:"limit,default=50"`
	StartDate      string `form:"startDate"`
	EndDate        string `form:"endDate"`
	CustomerName   string `form:"customerName"`
	PaymentStatus  string `form:"paymentStatus"`
	DeliveryStatus string `form:"deliveryStatus"`
}

// AddPaymentRequest records one payment against a sale.
type AddPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method"`
	Note   string          `json:"note"`
}

// AddGoldReturnRequest records gold handed over by the customer after order
// creation.
type AddGoldReturnRequest struct {
	Weight decimal.Decimal `json:"weight" binding:"required"`
	Note   string          `json:"note"`
}

// MarkDeliveredRequest optionally overrides the delivery date.
type MarkDeliveredRequest struct {
	DeliveryDate *time.Time `json:"deliveryDate"`
}

// SaleStatistics aggregates an owner's sales over an optional date range.
type SaleStatistics struct {
	TotalSales        int             `json:"totalSales"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalBalance      decimal.Decimal `json:"totalBalance"`
	TotalArrears      decimal.Decimal `json:"totalArrears"`
	TotalAdvance      decimal.Decimal `json:"totalAdvance"`
	TotalPayments     decimal.Decimal `json:"totalPayments"`
	TotalGoldWeight   decimal.Decimal `json:"totalGoldWeight"`
	TotalCustomerGold decimal.Decimal `json:"totalCustomerGold"`
	AverageSaleValue  decimal.Decimal `json:"averageSaleValue"`
	PendingSales      int             `json:"pendingSales"`
	PartialSales      int             `json:"partialSales"`
	PaidSales         int             `json:"paidSales"`
	OverpaidSales     int             `json:"overpaidSales"`
}
