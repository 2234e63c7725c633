package repositories

import (
	"context"

	"github.com/BekhzodS/china_shop_app/internal/core/domain"
)

// RateReader defines read operations for currency rate data
type RateReader interface {
	// FindRateByCode retrieves a specific currency rate by its code.
	FindRateByCode(ctx context.Context, currencyCode string) (*domain.CurrencyRate, error)

	// ListRates retrieves all currency rates.
	ListRates(ctx context.Context) ([]domain.CurrencyRate, error)

	// CountRates returns the number of rate rows. Used to decide whether
	// default seeding is needed.
	CountRates(ctx context.Context) (int64, error)
}

// RateWriter defines write operations for currency rate data
type RateWriter interface {
	// InsertRate persists a new currency rate. Returns apperrors.ErrDuplicate
	// when a row for the code already exists (seeding races rely on this).
	InsertRate(ctx context.Context, rate domain.CurrencyRate) error

	// UpdateRate updates an existing rate row in place. Returns
	// apperrors.ErrNotFound when the code is unknown.
	UpdateRate(ctx context.Context, rate domain.CurrencyRate) error
}

// RateRepositoryFacade combines all rate-related repository interfaces
type RateRepositoryFacade interface {
	RateReader
	RateWriter
}
