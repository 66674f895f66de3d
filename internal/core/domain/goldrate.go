package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SpotPrice is the raw upstream quote: USD per troy ounce of gold.
type SpotPrice struct {
	USDPerOunce decimal.Decimal `json:"usdPerOunce"`
	AsOf        time.Time       `json:"asOf"`
}

// CountryRate is the derived gold price for one country's currency.
// Computed wholesale from a spot price and an exchange rate, never mutated in place.
type CountryRate struct {
	Country      string          `json:"country"`
	CurrencyCode string          `json:"currency"`
	Symbol       string          `json:"symbol"`
	RatePerTola  decimal.Decimal `json:"ratePerTola"`
	RatePerGram  decimal.Decimal `json:"ratePerGram"`
	RatePerOunce decimal.Decimal `json:"ratePerOunce"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}

// RateSnapshot is a fully computed view of gold prices across all supported
// countries. The realtime cache holds the most recent one in memory; a snapshot
// is also persisted periodically as the durable audit trail. At most one
// persisted snapshot is active at a time.
type RateSnapshot struct {
	SnapshotID    string                     `json:"snapshotID"`
	SpotUSD       decimal.Decimal            `json:"goldXAUUSD"`
	BaseUSDTola   decimal.Decimal            `json:"goldRateUSD"`
	ExchangeRates map[string]decimal.Decimal `json:"exchangeRates"`
	CountryRates  []CountryRate              `json:"countryRates"`
	FetchedAt     time.Time                  `json:"fetchedAt"`
	Source        string                     `json:"source"`
	IsActive      bool                       `json:"isActive"`
}

// RateForCurrency returns the country rate for the given currency code,
// or nil if the currency is not part of this snapshot.
func (s *RateSnapshot) RateForCurrency(currencyCode string) *CountryRate {
	for i := range s.CountryRates {
		if s.CountryRates[i].CurrencyCode == currencyCode {
			return &s.CountryRates[i]
		}
	}
	return nil
}

// FetchStats counts upstream spot-price fetches, reported alongside rate reads.
type FetchStats struct {
	TotalFetches      int64      `json:"totalFetches"`
	FetchesThisMinute int64      `json:"fetchesThisMinute"`
	LastFetch         *time.Time `json:"lastFetch"`
}

// RateHistoryPoint is a single chart point derived from a persisted snapshot.
type RateHistoryPoint struct {
	Timestamp    time.Time        `json:"timestamp"`
	SpotUSD      decimal.Decimal  `json:"goldXAUUSD"`
	BaseUSDTola  decimal.Decimal  `json:"goldRateUSD"`
	RatePerTola  *decimal.Decimal `json:"ratePerTola,omitempty"`
	RatePerGram  *decimal.Decimal `json:"ratePerGram,omitempty"`
	RatePerOunce *decimal.Decimal `json:"ratePerOunce,omitempty"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate,omitempty"`
}
