package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomRate is a shop owner's manually set gold price, one row per owner.
// RatePerGram and RatePerOunce are always derived from RatePerTola, never set
// independently. UpdateCount strictly increments on every write.
type CustomRate struct {
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

// CalculateFromTola sets RatePerTola and recomputes the per-gram and per-ounce
// rates from it using the fixed tola/ounce constants, rounded to 2 decimals.
func (r *CustomRate) CalculateFromTola(ratePerTola decimal.Decimal, now time.Time) {
	perGram := ratePerTola.Div(TolaGrams)
	r.RatePerTola = RoundMoney(ratePerTola)
	r.RatePerGram = RoundMoney(perGram)
	r.RatePerOunce = RoundMoney(perGram.Mul(OunceGrams))
	r.LastUpdated = &now
	r.UpdateCount++
}

// IsConfigured reports whether the owner has set a usable rate.
func (r *CustomRate) IsConfigured() bool {
	return r.RatePerTola.IsPositive()
}
