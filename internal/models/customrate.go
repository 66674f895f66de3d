package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomGoldRate maps a row of the custom_gold_rates table, one row per owner.
type CustomGoldRate struct {
	RateID       string          `json:"rateID"`
	UserID       string          `json:"userID"`
	Country      string          `json:"country"`
	CurrencyCode string          `json:"currency"`
	Symbol       string          `json:"symbol"`
	RatePerTola  decimal.Decimal `json:"ratePerTola"`
	RatePerGram  decimal.Decimal `json:"ratePerGram"`
	RatePerOunce decimal.Decimal `json:"ratePerOunce"`
	LastUpdated  *time.Time      `json:"lastUpdated"`
	UpdateCount  int64           `json:"updateCount"`
	AuditFields
}
