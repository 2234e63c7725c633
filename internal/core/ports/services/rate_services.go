package services

import (
	"context"

	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	"github.com/BekhzodS/china_shop_app/internal/dto"
)

// RateResolverSvc resolves the conversion rate and markup for a currency
// code. Resolution never fails: an unknown code, a dead external feed or a
// repository failure all degrade to the fallback constant.
type RateResolverSvc interface {
	Resolve(ctx context.Context, currencyCode string) domain.RateResolution
}

// RateAdminSvc defines the administrative surface over the rate table.
type RateAdminSvc interface {
	// ListRates retrieves all rate rows, seeding defaults first if the
	// table is empty.
	ListRates(ctx context.Context) ([]domain.CurrencyRate, error)

	// GetRate retrieves a single rate row by code.
	GetRate(ctx context.Context, currencyCode string) (*domain.CurrencyRate, error)

	// UpdateRate applies an admin update to an existing rate row. Rows are
	// never deleted, only deactivated.
	UpdateRate(ctx context.Context, currencyCode string, req dto.UpdateCurrencyRateRequest, updaterUserID string) (*domain.CurrencyRate, error)

	// EnsureDefaultRates seeds the default rate table when empty. Idempotent
	// and race-safe: duplicate inserts are treated as benign no-ops.
	EnsureDefaultRates(ctx context.Context) error
}

// RateSvcFacade combines all rate-related service interfaces
type RateSvcFacade interface {
	RateResolverSvc
	RateAdminSvc
}
