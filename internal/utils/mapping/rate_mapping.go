package mapping

import (
	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	"github.com/BekhzodS/china_shop_app/internal/models"
)

// ToModelCurrencyRate converts a domain CurrencyRate to a model CurrencyRate
func ToModelCurrencyRate(d domain.CurrencyRate) models.CurrencyRate {
	return models.CurrencyRate{
		CurrencyCode: d.CurrencyCode,
		Name:         d.Name,
		Symbol:       d.Symbol,
		Rate:         d.Rate,
		Markup:       d.Markup,
		Active:       d.Active,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrencyRate converts a model CurrencyRate to a domain CurrencyRate
func ToDomainCurrencyRate(m models.CurrencyRate) domain.CurrencyRate {
	return domain.CurrencyRate{
		CurrencyCode: m.CurrencyCode,
		Name:         m.Name,
		Symbol:       m.Symbol,
		Rate:         m.Rate,
		Markup:       m.Markup,
		Active:       m.Active,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCurrencyRateSlice converts a slice of model CurrencyRates to domain CurrencyRates
func ToDomainCurrencyRateSlice(ms []models.CurrencyRate) []domain.CurrencyRate {
	ds := make([]domain.CurrencyRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrencyRate(m)
	}
	return ds
}

// ToModelPriceSnapshot converts a domain PriceSnapshot to a model PriceSnapshot
func ToModelPriceSnapshot(d domain.PriceSnapshot) models.PriceSnapshot {
	return models.PriceSnapshot{
		SnapshotID:        d.SnapshotID,
		RateUsed:          d.RateUsed,
		ConvertedAmount:   d.ConvertedAmount,
		FinalPerItemPrice: d.FinalPerItemPrice,
		ServiceFeePercent: d.ServiceFeePercent,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPriceSnapshot converts a model PriceSnapshot to a domain PriceSnapshot
func ToDomainPriceSnapshot(m models.PriceSnapshot) domain.PriceSnapshot {
	return domain.PriceSnapshot{
		SnapshotID:        m.SnapshotID,
		RateUsed:          m.RateUsed,
		ConvertedAmount:   m.ConvertedAmount,
		FinalPerItemPrice: m.FinalPerItemPrice,
		ServiceFeePercent: m.ServiceFeePercent,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
