package mapping

import (
	"github.com/goldify/goldify_backend/internal/core/domain"
	"github.com/goldify/goldify_backend/internal/models"
)

// ToModelCustomGoldRate converts a domain CustomRate to its model row
func ToModelCustomGoldRate(d domain.CustomRate) models.CustomGoldRate {
	return models.CustomGoldRate{
		RateID:       d.RateID,
		UserID:       d.UserID,
		Country:      d.Country,
		CurrencyCode: d.CurrencyCode,
		Symbol:       d.Symbol,
		RatePerTola:  d.RatePerTola,
		RatePerGram:  d.RatePerGram,
		RatePerOunce: d.RatePerOunce,
		LastUpdated:  d.LastUpdated,
		UpdateCount:  d.UpdateCount,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomGoldRate converts a model row to a domain CustomRate
func ToDomainCustomGoldRate(m models.CustomGoldRate) domain.CustomRate {
	return domain.CustomRate{
		RateID:       m.RateID,
		UserID:       m.UserID,
		Country:      m.Country,
		CurrencyCode: m.CurrencyCode,
		Symbol:       m.Symbol,
		RatePerTola:  m.RatePerTola,
		RatePerGram:  m.RatePerGram,
		RatePerOunce: m.RatePerOunce,
		LastUpdated:  m.LastUpdated,
		UpdateCount:  m.UpdateCount,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
