package services

import (
	"context"

	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PricingSvcFacade turns a base-currency amount into a fully itemized
// customer-facing price. Pure given the resolver's current resolution; it
// always returns a breakdown, possibly computed from a degraded rate.
// Callers validate the amount (>= 0) before invocation.
type PricingSvcFacade interface {
	ApplyPricing(ctx context.Context, amountInSource decimal.Decimal, targetCurrency string) domain.PriceBreakdown
}
