package dto

import (
	"time"

	"github.com/goldify/goldify_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetCustomRateRequest defines the data needed to set an owner's gold rate.
// Country/currency/symbol are optional; the service falls back to the
// defaults when they are not supplied.
type SetCustomRateRequest struct {
	Country      string          `json:"country"`
	CurrencyCode string          `json:"currency"`
	Symbol       string          `json:"symbol"`
	RatePerTola  decimal.Decimal `json:"ratePerTola"`
}

// CustomRateResponse defines the data returned for an owner's custom rate.
// When no rate has been set yet, the rate fields are zero and LastUpdated is nil.
type CustomRateResponse struct {
	Country      string          `json:"country"`
	CurrencyCode string          `json:"currency"`
	Symbol       string          `json:"symbol"`
	RatePerTola  decimal.Decimal `json:"ratePerTola"`
	RatePerGram  decimal.Decimal `json:"ratePerGram"`
	RatePerOunce decimal.Decimal `json:"ratePerOunce"`
	LastUpdated  *time.Time      `json:"lastUpdated"`
	UpdateCount  int64           `json:"updateCount"`
}

// ToCustomRateResponse converts a domain.CustomRate to its response DTO.
func ToCustomRateResponse(rate *domain.CustomRate) CustomRateResponse {
	return CustomRateResponse{
		Country:      rate.Country,
		CurrencyCode: rate.CurrencyCode,
		Symbol:       rate.Symbol,
		RatePerTola:  rate.RatePerTola,
		RatePerGram:  rate.RatePerGram,
		RatePerOunce: rate.RatePerOunce,
		LastUpdated:  rate.LastUpdated,
		UpdateCount:  rate.UpdateCount,
	}
}
