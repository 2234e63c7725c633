package dto

import (
	"time"

	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateCurrencyRateRequest defines the admin update of a currency rate.
// Rate and markup are optional so an admin can toggle Active alone.
type UpdateCurrencyRateRequest struct {
	Name   *string          `json:"name,omitempty"`
	Symbol *string          `json:"symbol,omitempty"`
	Rate   *decimal.Decimal `json:"rate,omitempty"`
	Markup *decimal.Decimal `json:"markup,omitempty"`
	Active *bool            `json:"active,omitempty"`
}

// CurrencyRateResponse defines the data returned for a currency rate.
type CurrencyRateResponse struct {
	CurrencyCode  string          `json:"currencyCode"`
	Name          string          `json:"name"`
	Symbol        string          `json:"symbol"`
	Rate          decimal.Decimal `json:"rate"`
	Markup        decimal.Decimal `json:"markup"`
	Active        bool            `json:"active"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToCurrencyRateResponse converts a domain.CurrencyRate to CurrencyRateResponse
func ToCurrencyRateResponse(r *domain.CurrencyRate) CurrencyRateResponse {
	return CurrencyRateResponse{
		CurrencyCode:  r.CurrencyCode,
		Name:          r.Name,
		Symbol:        r.Symbol,
		Rate:          r.Rate,
		Markup:        r.Markup,
		Active:        r.Active,
		LastUpdatedAt: r.LastUpdatedAt,
		LastUpdatedBy: r.LastUpdatedBy,
	}
}

// ToListCurrencyRateResponse converts a slice of domain.CurrencyRate to DTOs
func ToListCurrencyRateResponse(rates []domain.CurrencyRate) []CurrencyRateResponse {
	res := make([]CurrencyRateResponse, len(rates))
	for i, r := range rates {
		res[i] = ToCurrencyRateResponse(&r)
	}
	return res
}
