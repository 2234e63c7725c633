package models

import "github.com/shopspring/decimal"

// CurrencyRate is the currency_rates table row: the admin-managed CNY
// conversion rate for one target currency.
type CurrencyRate struct {
	CurrencyCode string          `db:"currency_code"`
	Name         string          `db:"name"`
	Symbol       string          `db:"symbol"`
	Rate         decimal.Decimal `db:"rate"`
	Markup       decimal.Decimal `db:"markup"`
	Active       bool            `db:"active"`
	AuditFields
}
