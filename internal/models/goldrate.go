package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountryRate is one element of a snapshot's country_rates JSONB column.
type CountryRate struct {
	Country      string          `json:"country"`
	CurrencyCode string          `json:"currency"`
	Symbol       string          `json:"symbol"`
	RatePerTola  decimal.Decimal `json:"ratePerTola"`
	RatePerGram  decimal.Decimal `json:"ratePerGram"`
	RatePerOunce decimal.Decimal `json:"ratePerOunce"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}

// GoldRateSnapshot maps a row of the gold_rates table. The exchange rate map
// and the per-country rate list are stored as JSONB.
type GoldRateSnapshot struct {
	SnapshotID    string                     `json:"snapshotID"`
	SpotUSD       decimal.Decimal            `json:"goldXAUUSD"`
	BaseUSDTola   decimal.Decimal            `json:"goldRateUSD"`
	ExchangeRates map[string]decimal.Decimal `json:"exchangeRates"`
	CountryRates  []CountryRate              `json:"countryRates"`
	FetchedAt     time.Time                  `json:"fetchedAt"`
	Source        string                     `json:"source"`
	IsActive      bool                       `json:"isActive"`
}
