package domain

import "github.com/shopspring/decimal"

// CurrencyRate is an administratively managed conversion rate from the
// marketplace base currency (CNY) into a customer-facing currency.
// Rows are seeded once with defaults, updated in place and never deleted.
type CurrencyRate struct {
	CurrencyCode string          `json:"currencyCode"` // Primary Key (e.g., "RUB")
	Name         string          `json:"name"`         // e.g., "Russian Ruble"
	Symbol       string          `json:"symbol"`       // e.g., "₽"
	Rate         decimal.Decimal `json:"rate"`         // CNY -> CurrencyCode, must be > 0
	Markup       decimal.Decimal `json:"markup"`       // multiplicative surcharge, >= 1
	Active       bool            `json:"active"`
	AuditFields
}

// RateResolution is the outcome of resolving a rate for a currency code,
// either from the custom table or from the external feed.
type RateResolution struct {
	Rate     decimal.Decimal `json:"rate"`
	Markup   decimal.Decimal `json:"markup"`
	IsCustom bool            `json:"isCustom"`
}
