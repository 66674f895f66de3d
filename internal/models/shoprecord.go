package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRate is the rate snapshot embedded in a stored transaction.
type TransactionRate struct {
	RatePerTola  decimal.Decimal `json:"ratePerTola"`
	RatePerGram  decimal.Decimal `json:"ratePerGram"`
	RatePerOunce decimal.Decimal `json:"ratePerOunce"`
	Symbol       string          `json:"symbol"`
	CurrencyCode string          `json:"currency"`
}

// SaleDetails is present only on subtract transactions.
type SaleDetails struct {
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	CustomerName string          `json:"customerName"`
	Notes        string          `json:"notes"`
}

// GoldTransaction is one element of a record's transactions JSONB column.
type GoldTransaction struct {
	TransactionID string          `json:"transactionID"`
	Type          string          `json:"type"`
	Weight        decimal.Decimal `json:"weight"`
	CustomRateID  string          `json:"customRateID"`
	Rate          TransactionRate `json:"rateSnapshot"`
	SaleDetails   *SaleDetails    `json:"saleDetails,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}

// ShopRecord maps a row of the shop_records table, keyed by
// (user_id, date_string). The transaction list is stored as JSONB; the
// aggregate columns are derived caches.
type ShopRecord struct {
	RecordID          string            `json:"recordID"`
	UserID            string            `json:"userID"`
	Date              time.Time         `json:"date"`
	DateString        string            `json:"dateString"`
	Transactions      []GoldTransaction `json:"transactions"`
	AddTotal          decimal.Decimal   `json:"addTotal"`
	SubtractTotal     decimal.Decimal   `json:"subtractTotal"`
	Balance           decimal.Decimal   `json:"balance"`
	TotalSalesAmount  decimal.Decimal   `json:"totalSalesAmount"`
	TotalTransactions int               `json:"totalTransactions"`
	LastUpdated       time.Time         `json:"lastUpdated"`
	IsActive          bool              `json:"isActive"`
	AuditFields
}
