package services

import (
	"context"

	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	portssvc "github.com/BekhzodS/china_shop_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// ServiceFeeRate is the fixed platform surcharge applied after markup.
var ServiceFeeRate = decimal.NewFromFloat(0.03)

// pricingService turns a base-currency amount into an itemized local price.
type pricingService struct {
	rates portssvc.RateResolverSvc
}

// NewPricingService creates a new pricing service.
func NewPricingService(rates portssvc.RateResolverSvc) portssvc.PricingSvcFacade {
	return &pricingService{rates: rates}
}

// ApplyPricing converts amountInSource into targetCurrency and applies
// markup and the service fee. Intermediates keep full precision; only the
// output fields are rounded to 2 decimal places. The caller is responsible
// for rejecting negative amounts before invocation.
func (s *pricingService) ApplyPricing(ctx context.Context, amountInSource decimal.Decimal, targetCurrency string) domain.PriceBreakdown {
	resolution := s.rates.Resolve(ctx, targetCurrency)

	converted := amountInSource.Mul(resolution.Rate)
	convertedWithMarkup := converted.Mul(resolution.Markup)
	serviceFeeAmount := convertedWithMarkup.Mul(ServiceFeeRate)
	finalPerItem := convertedWithMarkup.Add(serviceFeeAmount)

	return domain.PriceBreakdown{
		Rate:                resolution.Rate,
		RateWithMarkup:      resolution.Rate.Mul(resolution.Markup).Round(2),
		Converted:           converted.Round(2),
		ConvertedWithMarkup: convertedWithMarkup.Round(2),
		ServiceFeePercent:   ServiceFeeRate,
		ServiceFeeAmount:    serviceFeeAmount.Round(2),
		FinalPerItem:        finalPerItem.Round(2),
	}
}
