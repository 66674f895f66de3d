package mapping

import (
	"github.com/goldify/goldify_backend/internal/core/domain"
	"github.com/goldify/goldify_backend/internal/models"
)

// ToModelGoldRateSnapshot converts a domain RateSnapshot to its model row
func ToModelGoldRateSnapshot(d domain.RateSnapshot) models.GoldRateSnapshot {
	countryRates := make([]models.CountryRate, len(d.CountryRates))
	for i, cr := range d.CountryRates {
		countryRates[i] = models.CountryRate{
			Country:      cr.Country,
			CurrencyCode: cr.CurrencyCode,
			Symbol:       cr.Symbol,
			RatePerTola:  cr.RatePerTola,
			RatePerGram:  cr.RatePerGram,
			RatePerOunce: cr.RatePerOunce,
			ExchangeRate: cr.ExchangeRate,
		}
	}
	return models.GoldRateSnapshot{
		SnapshotID:    d.SnapshotID,
		SpotUSD:       d.SpotUSD,
		BaseUSDTola:   d.BaseUSDTola,
		ExchangeRates: d.ExchangeRates,
		CountryRates:  countryRates,
		FetchedAt:     d.FetchedAt,
		Source:        d.Source,
		IsActive:      d.IsActive,
	}
}

// ToDomainGoldRateSnapshot converts a model row to a domain RateSnapshot
func ToDomainGoldRateSnapshot(m models.GoldRateSnapshot) domain.RateSnapshot {
	countryRates := make([]domain.CountryRate, len(m.CountryRates))
	for i, cr := range m.CountryRates {
		countryRates[i] = domain.CountryRate{
			Country:      cr.Country,
			CurrencyCode: cr.CurrencyCode,
			Symbol:       cr.Symbol,
			RatePerTola:  cr.RatePerTola,
			RatePerGram:  cr.RatePerGram,
			RatePerOunce: cr.RatePerOunce,
			ExchangeRate: cr.ExchangeRate,
		}
	}
	return domain.RateSnapshot{
		SnapshotID:    m.SnapshotID,
		SpotUSD:       m.SpotUSD,
		BaseUSDTola:   m.BaseUSDTola,
		ExchangeRates: m.ExchangeRates,
		CountryRates:  countryRates,
		FetchedAt:     m.FetchedAt,
		Source:        m.Source,
		IsActive:      m.IsActive,
	}
}
