package mapping

import (
	"github.com/goldify/goldify_backend/internal/core/domain"
	"github.com/goldify/goldify_backend/internal/models"
)

// ToModelJewelrySale converts a domain JewelrySale to its model row
func ToModelJewelrySale(d domain.JewelrySale) models.JewelrySale {
	payments := make([]models.Payment, len(d.PaymentHistory))
	for i, p := range d.PaymentHistory {
		payments[i] = models.Payment{
			Amount: p.Amount,
			Date:   p.Date,
			Method: string(p.Method),
			Note:   p.Note,
		}
	}
	returns := make([]models.GoldReturn, len(d.GoldReturnHistory))
	for i, g := range d.GoldReturnHistory {
		returns[i] = models.GoldReturn{
			Weight: g.Weight,
			Date:   g.Date,
			Note:   g.Note,
		}
	}
	return models.JewelrySale{
		SaleID:        d.SaleID,
		UserID:        d.UserID,
		CustomerName:  d.CustomerName,
		ContactNumber: d.ContactNumber,

		GoldWeight:    d.GoldWeight,
		StoneWeight:   d.StoneWeight,
		PolishPerTola: d.PolishPerTola,
		CustomerGold:  d.CustomerGold,

		MakingCharges: d.MakingCharges,
		OtherCharges:  d.OtherCharges,

		AdvancePayment: d.AdvancePayment,
		CurrentPayment: d.CurrentPayment,

		ChargeForAddedGold:       d.ChargeForAddedGold,
		IncludeCustomerGoldPrice: d.IncludeCustomerGoldPrice,

		GoldRate: d.GoldRate,

		Calculations:   models.SaleCalculations(d.Calculations),
		PaymentStatus:  string(d.PaymentStatus),
		DeliveryStatus: string(d.DeliveryStatus),

		PaymentHistory:    payments,
		GoldReturnHistory: returns,

		Notes:        d.Notes,
		OrderDate:    d.OrderDate,
		DeliveryDate: d.DeliveryDate,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJewelrySale converts a model row to a domain JewelrySale
func ToDomainJewelrySale(m models.JewelrySale) domain.JewelrySale {
	payments := make([]domain.Payment, len(m.PaymentHistory))
	for i, p := range m.PaymentHistory {
		payments[i] = domain.Payment{
			Amount: p.Amount,
			Date:   p.Date,
			Method: domain.PaymentMethod(p.Method),
			Note:   p.Note,
		}
	}
	returns := make([]domain.GoldReturn, len(m.GoldReturnHistory))
	for i, g := range m.GoldReturnHistory {
		returns[i] = domain.GoldReturn{
			Weight: g.Weight,
			Date:   g.Date,
			Note:   g.Note,
		}
	}
	return domain.JewelrySale{
		SaleID:        m.SaleID,
		UserID:        m.UserID,
		CustomerName:  m.CustomerName,
		ContactNumber: m.ContactNumber,

		GoldWeight:    m.GoldWeight,
		StoneWeight:   m.StoneWeight,
		PolishPerTola: m.PolishPerTola,
		CustomerGold:  m.CustomerGold,

		MakingCharges: m.MakingCharges,
		OtherCharges:  m.OtherCharges,

		AdvancePayment: m.AdvancePayment,
		CurrentPayment: m.CurrentPayment,

		ChargeForAddedGold:       m.ChargeForAddedGold,
		IncludeCustomerGoldPrice: m.IncludeCustomerGoldPrice,

		GoldRate: m.GoldRate,

		Calculations:   domain.SaleCalculations(m.Calculations),
		PaymentStatus:  domain.PaymentStatus(m.PaymentStatus),
		DeliveryStatus: domain.DeliveryStatus(m.DeliveryStatus),

		PaymentHistory:    payments,
		GoldReturnHistory: returns,

		Notes:        m.Notes,
		OrderDate:    m.OrderDate,
		DeliveryDate: m.DeliveryDate,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
