package mapping

import (
	"github.com/goldify/goldify_backend/internal/core/domain"
	"github.com/goldify/goldify_backend/internal/models"
)

// ToModelGoldTransaction converts a domain GoldTransaction to its model form
func ToModelGoldTransaction(d domain.GoldTransaction) models.GoldTransaction {
	m := models.GoldTransaction{
		TransactionID: d.TransactionID,
		Type:          string(d.Type),
		Weight:        d.Weight,
		CustomRateID:  d.CustomRateID,
		Rate: models.TransactionRate{
			RatePerTola:  d.Rate.RatePerTola,
			RatePerGram:  d.Rate.RatePerGram,
			RatePerOunce: d.Rate.RatePerOunce,
			Symbol:       d.Rate.Symbol,
			CurrencyCode: d.Rate.CurrencyCode,
		},
		Timestamp: d.Timestamp,
	}
	if d.SaleDetails != nil {
		m.SaleDetails = &models.SaleDetails{
			TotalPrice:   d.SaleDetails.TotalPrice,
			CustomerName: d.SaleDetails.CustomerName,
			Notes:        d.SaleDetails.Notes,
		}
	}
	return m
}

// ToDomainGoldTransaction converts a model GoldTransaction to its domain form
func ToDomainGoldTransaction(m models.GoldTransaction) domain.GoldTransaction {
	d := domain.GoldTransaction{
		TransactionID: m.TransactionID,
		Type:          domain.TransactionType(m.Type),
		Weight:        m.Weight,
		CustomRateID:  m.CustomRateID,
		Rate: domain.TransactionRate{
			RatePerTola:  m.Rate.RatePerTola,
			RatePerGram:  m.Rate.RatePerGram,
			RatePerOunce: m.Rate.RatePerOunce,
			Symbol:       m.Rate.Symbol,
			CurrencyCode: m.Rate.CurrencyCode,
		},
		Timestamp: m.Timestamp,
	}
	if m.SaleDetails != nil {
		d.SaleDetails = &domain.SaleDetails{
			TotalPrice:   m.SaleDetails.TotalPrice,
			CustomerName: m.SaleDetails.CustomerName,
			Notes:        m.SaleDetails.Notes,
		}
	}
	return d
}

// ToModelShopRecord converts a domain ShopRecord to its model row
func ToModelShopRecord(d domain.ShopRecord) models.ShopRecord {
	transactions := make([]models.GoldTransaction, len(d.Transactions))
	for i, txn := range d.Transactions {
		transactions[i] = ToModelGoldTransaction(txn)
	}
	return models.ShopRecord{
		RecordID:          d.RecordID,
		UserID:            d.UserID,
		Date:              d.Date,
		DateString:        d.DateString,
		Transactions:      transactions,
		AddTotal:          d.AddTotal,
		SubtractTotal:     d.SubtractTotal,
		Balance:           d.Balance,
		TotalSalesAmount:  d.TotalSalesAmount,
		TotalTransactions: d.TotalTransactions,
		LastUpdated:       d.LastUpdated,
		IsActive:          d.IsActive,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainShopRecord converts a model row to a domain ShopRecord
func ToDomainShopRecord(m models.ShopRecord) domain.ShopRecord {
	transactions := make([]domain.GoldTransaction, len(m.Transactions))
	for i, txn := range m.Transactions {
		transactions[i] = ToDomainGoldTransaction(txn)
	}
	return domain.ShopRecord{
		RecordID:          m.RecordID,
		UserID:            m.UserID,
		Date:              m.Date,
		DateString:        m.DateString,
		Transactions:      transactions,
		AddTotal:          m.AddTotal,
		SubtractTotal:     m.SubtractTotal,
		Balance:           m.Balance,
		TotalSalesAmount:  m.TotalSalesAmount,
		TotalTransactions: m.TotalTransactions,
		LastUpdated:       m.LastUpdated,
		IsActive:          m.IsActive,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
