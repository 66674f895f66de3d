package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether weighed gold entered or left the shop.
type TransactionType string

const (
	TransactionAdd      TransactionType = "add"
	TransactionSubtract TransactionType = "subtract"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionAdd || t == TransactionSubtract
}

// TransactionRate is the owner's custom rate copied into a transaction at
// append time. Later rate changes never retroactively alter a transaction.
type TransactionRate struct {
	RatePerTola  decimal.Decimal `json:"ratePerTola"`
	RatePerGram  decimal.Decimal `json:"ratePerGram"`
	RatePerOunce decimal.Decimal `json:"ratePerOunce"`
	Symbol       string          `json:"symbol"`
	CurrencyCode string          `json:"currency"`
}

// SaleDetails is present only on subtract (sale) transactions.
type SaleDetails struct {
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	CustomerName string          `json:"customerName"`
	Notes        string          `json:"notes"`
}

// GoldTransaction is one weighed-gold movement in a shop's daily record.
// Immutable once appended except through UpdateTransaction, which always
// triggers a wholesale aggregate recompute.
type GoldTransaction struct {
	TransactionID string          `json:"transactionID"`
	Type          TransactionType `json:"type"`
	Weight        decimal.Decimal `json:"weight"`
	CustomRateID  string          `json:"customRateID"`
	Rate          TransactionRate `json:"rateSnapshot"`
	SaleDetails   *SaleDetails    `json:"saleDetails,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}

// ShopRecord is one owner's append-only gold transaction log for a single
// calendar day, keyed by (UserID, DateString). The aggregate fields are
// derived caches recomputed deterministically from Transactions on every
// mutation; they are never independently settable.
type ShopRecord struct {
	RecordID          string            `json:"recordID"`
	UserID            string            `json:"userID"`
	Date              time.Time         `json:"date"`
	DateString        string            `json:"dateString"` // YYYY-MM-DD
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

// CalculateTotals recomputes every aggregate field wholesale from the
// transaction list. Deliberately not incremental: recomputing the sums on
// every structural change eliminates drift between the list and the caches.
func (r *ShopRecord) CalculateTotals(now time.Time) {
	addTotal := decimal.Zero
	subtractTotal := decimal.Zero
	salesAmount := decimal.Zero

	for _, txn := range r.Transactions {
		switch txn.Type {
		case TransactionAdd:
			addTotal = addTotal.Add(txn.Weight)
		case TransactionSubtract:
			subtractTotal = subtractTotal.Add(txn.Weight)
			if txn.SaleDetails != nil {
				salesAmount = salesAmount.Add(txn.SaleDetails.TotalPrice)
			}
		}
	}

	r.AddTotal = RoundWeight(addTotal)
	r.SubtractTotal = RoundWeight(subtractTotal)
	r.Balance = RoundWeight(addTotal.Sub(subtractTotal))
	r.TotalSalesAmount = RoundMoney(salesAmount)
	r.TotalTransactions = len(r.Transactions)
	r.LastUpdated = now
}

// FindTransaction returns the index of the transaction with the given ID, or -1.
func (r *ShopRecord) FindTransaction(transactionID string) int {
	for i := range r.Transactions {
		if r.Transactions[i].TransactionID == transactionID {
			return i
		}
	}
	return -1
}

// RecordRangeSummary aggregates the cached per-day totals across a date range.
// Summaries sum the per-day aggregates; they never recompute from raw
// transactions of other days.
type RecordRangeSummary struct {
	TotalDays     int             `json:"totalDays"`
	TotalAdd      decimal.Decimal `json:"totalAdd"`
	TotalSubtract decimal.Decimal `json:"totalSubtract"`
	TotalBalance  decimal.Decimal `json:"totalBalance"`
}

// SummarizeRecords folds the cached aggregates of a set of daily records.
func SummarizeRecords(records []ShopRecord) RecordRangeSummary {
	totalAdd := decimal.Zero
	totalSubtract := decimal.Zero
	for _, rec := range records {
		totalAdd = totalAdd.Add(rec.AddTotal)
		totalSubtract = totalSubtract.Add(rec.SubtractTotal)
	}
	return RecordRangeSummary{
		TotalDays:     len(records),
		TotalAdd:      RoundWeight(totalAdd),
		TotalSubtract: RoundWeight(totalSubtract),
		TotalBalance:  RoundWeight(totalAdd.Sub(totalSubtract)),
	}
}

// DateKey formats a time as the YYYY-MM-DD key used for daily records.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
