package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is one element of a sale's payment_history JSONB column.
type Payment struct {
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
	Method string          `json:"method"`
	Note   string          `json:"note"`
}

// GoldReturn is one element of a sale's gold_return_history JSONB column.
type GoldReturn struct {
	Weight decimal.Decimal `json:"weight"`
	Date   time.Time       `json:"date"`
	Note   string          `json:"note"`
}

// SaleCalculations is the derived pricing object stored as JSONB.
type SaleCalculations struct {
	NetGoldWeight           decimal.Decimal `json:"netGoldWeight"`
	PolishWeight            decimal.Decimal `json:"polishWeight"`
	TotalGoldWeight         decimal.Decimal `json:"totalGoldWeight"`
	GoldAfterDeduction      decimal.Decimal `json:"goldAfterDeduction"`
	ExcessGoldWeight        decimal.Decimal `json:"excessGoldWeight"`
	GoldPrice               decimal.Decimal `json:"goldPrice"`
	CustomerGoldPrice       decimal.Decimal `json:"customerGoldPrice"`
	TotalPrice              decimal.Decimal `json:"totalPrice"`
	RemainingBalance        decimal.Decimal `json:"remainingBalance"`
	FinalCustomerPayment    decimal.Decimal `json:"finalCustomerPayment"`
	FinalCustomerGoldWeight decimal.Decimal `json:"finalCustomerGoldWeight"`
	Arrears                 decimal.Decimal `json:"arrears"`
}

// JewelrySale maps a row of the jewelry_sales table. Calculations and both
// histories are stored as JSONB.
type JewelrySale struct {
	SaleID        string `json:"saleID"`
	UserID        string `json:"userID"`
	CustomerName  string `json:"customerName"`
	ContactNumber string `json:"contactNumber"`

	GoldWeight    decimal.Decimal `json:"goldWeight"`
	StoneWeight   decimal.Decimal `json:"stoneWeight"`
	PolishPerTola decimal.Decimal `json:"polishPerTola"`
	CustomerGold  decimal.Decimal `json:"customerGold"`

	MakingCharges decimal.Decimal `json:"makingCharges"`
	OtherCharges  decimal.Decimal `json:"otherCharges"`

	AdvancePayment decimal.Decimal `json:"advancePayment"`
	CurrentPayment decimal.Decimal `json:"currentPayment"`

	ChargeForAddedGold       bool `json:"chargeForAddedGold"`
	IncludeCustomerGoldPrice bool `json:"includeCustomerGoldPrice"`

	GoldRate decimal.Decimal `json:"goldRate"`

	Calculations   SaleCalculations `json:"calculations"`
	PaymentStatus  string           `json:"paymentStatus"`
	DeliveryStatus string           `json:"deliveryStatus"`

	PaymentHistory    []Payment    `json:"paymentHistory"`
	GoldReturnHistory []GoldReturn `json:"goldReturnHistory"`

	Notes        string     `json:"notes"`
	OrderDate    time.Time  `json:"orderDate"`
	DeliveryDate *time.Time `json:"deliveryDate"`
	AuditFields
}
