package dto

import (
	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PriceBreakdownResponse is the itemized pricing result returned by the
// quote endpoint and embedded in cart views.
type PriceBreakdownResponse struct {
	Rate                decimal.Decimal `json:"rate"`
	RateWithMarkup      decimal.Decimal `json:"rateWithMarkup"`
	Converted           decimal.Decimal `json:"converted"`
	ConvertedWithMarkup decimal.Decimal `json:"convertedWithMarkup"`
	ServiceFeePercent   decimal.Decimal `json:"serviceFeePercent"`
	ServiceFeeAmount    decimal.Decimal `json:"serviceFeeAmount"`
	FinalPerItem        decimal.Decimal `json:"finalPerItem"`
}

// ToPriceBreakdownResponse converts a domain.PriceBreakdown to its DTO
func ToPriceBreakdownResponse(b domain.PriceBreakdown) PriceBreakdownResponse {
	return PriceBreakdownResponse{
		Rate:                b.Rate,
		RateWithMarkup:      b.RateWithMarkup,
		Converted:           b.Converted,
		ConvertedWithMarkup: b.ConvertedWithMarkup,
		ServiceFeePercent:   b.ServiceFeePercent,
		ServiceFeeAmount:    b.ServiceFeeAmount,
		FinalPerItem:        b.FinalPerItem,
	}
}
