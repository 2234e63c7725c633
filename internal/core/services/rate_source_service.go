package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BekhzodS/china_shop_app/internal/apperrors"
	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	portsrepo "github.com/BekhzodS/china_shop_app/internal/core/ports/repositories"
	portssvc "github.com/BekhzodS/china_shop_app/internal/core/ports/services"
	"github.com/BekhzodS/china_shop_app/internal/dto"
	"github.com/shopspring/decimal"
)

const (
	// BaseCurrency is the marketplace's native pricing currency.
	BaseCurrency = "CNY"

	// DefaultCurrency is assumed when a caller does not name a target
	// currency.
	DefaultCurrency = "RUB"

	rateCacheTTL = 5 * time.Minute

	systemUserID = "system"
)

// Fallbacks when both the custom table and the external feed fail. The
// degraded rate is the historical CNY->RUB approximation.
var (
	degradedRate  = decimal.NewFromInt(13)
	defaultMarkup = decimal.NewFromFloat(1.05)
)

// defaultRates is the seed table written once when the rate store is empty.
var defaultRates = []domain.CurrencyRate{
	{CurrencyCode: "RUB", Name: "Russian Ruble", Symbol: "₽", Rate: decimal.NewFromInt(13), Markup: decimal.NewFromFloat(1.05), Active: true},
	{CurrencyCode: "USD", Name: "US Dollar", Symbol: "$", Rate: decimal.NewFromFloat(0.14), Markup: decimal.NewFromFloat(1.05), Active: true},
	{CurrencyCode: "UZS", Name: "Uzbek Som", Symbol: "so'm", Rate: decimal.NewFromInt(1760), Markup: decimal.NewFromFloat(1.05), Active: true},
	{CurrencyCode: "TJS", Name: "Tajik Somoni", Symbol: "SM", Rate: decimal.NewFromFloat(1.5), Markup: decimal.NewFromFloat(1.05), Active: true},
	{CurrencyCode: "KZT", Name: "Kazakh Tenge", Symbol: "₸", Rate: decimal.NewFromInt(67), Markup: decimal.NewFromFloat(1.05), Active: true},
	{CurrencyCode: "CNY", Name: "Chinese Yuan", Symbol: "¥", Rate: decimal.NewFromInt(1), Markup: decimal.NewFromInt(1), Active: true},
}

// rateSourceService resolves conversion rates: custom table first, then the
// TTL-cached external feed, then the degraded constant. It also carries the
// administrative rate surface.
type rateSourceService struct {
	rateRepo portsrepo.RateRepositoryFacade
	feed     portssvc.RateFeed
	cache    *rateCache
	logger   *slog.Logger
}

// RateSourceOption configures optional dependencies of the rate source.
type RateSourceOption func(*rateSourceOptions)

type rateSourceOptions struct {
	now func() time.Time
}

// WithRateClock overrides the time source used by the rate cache. Tests use
// this to control TTL expiry.
func WithRateClock(now func() time.Time) RateSourceOption {
	return func(o *rateSourceOptions) {
		o.now = now
	}
}

// NewRateSourceService creates a new rate source.
func NewRateSourceService(rateRepo portsrepo.RateRepositoryFacade, feed portssvc.RateFeed, logger *slog.Logger, opts ...RateSourceOption) portssvc.RateSvcFacade {
	options := rateSourceOptions{now: time.Now}
	for _, opt := range opts {
		opt(&options)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &rateSourceService{
		rateRepo: rateRepo,
		feed:     feed,
		cache:    newRateCache(rateCacheTTL, options.now),
		logger:   logger,
	}
}

// Resolve returns the rate and markup for the currency code. It never fails:
// repository errors, unknown codes and a dead feed all degrade to the
// fallback constant with the default markup.
func (s *rateSourceService) Resolve(ctx context.Context, currencyCode string) domain.RateResolution {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if code == "" {
		code = DefaultCurrency
	}

	custom, err := s.rateRepo.FindRateByCode(ctx, code)
	if err == nil && custom.Active && custom.Rate.IsPositive() {
		return domain.RateResolution{Rate: custom.Rate, Markup: custom.Markup, IsCustom: true}
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.logger.Warn("custom rate lookup failed, falling back to external feed",
			slog.String("currency_code", code), slog.String("error", err.Error()))
	}

	return domain.RateResolution{Rate: s.externalRate(ctx, code), Markup: defaultMarkup, IsCustom: false}
}

// externalRate consults the TTL cache, then the live feed, then the degraded
// constant. Only successful positive fetches are cached.
func (s *rateSourceService) externalRate(ctx context.Context, code string) decimal.Decimal {
	if cached, ok := s.cache.get(BaseCurrency, code); ok {
		return cached
	}

	fetched, err := s.feed.FetchRate(ctx, BaseCurrency, code)
	if err != nil {
		s.logger.Warn("external rate lookup failed, using degraded rate",
			slog.String("currency_code", code), slog.String("error", err.Error()))
		return degradedRate
	}
	if !fetched.IsPositive() {
		s.logger.Warn("external rate lookup returned non-positive rate, using degraded rate",
			slog.String("currency_code", code), slog.String("rate", fetched.String()))
		return degradedRate
	}

	s.cache.put(BaseCurrency, code, fetched)
	return fetched
}

// EnsureDefaultRates seeds the default rate table when the store is empty.
// Safe to call concurrently: a duplicate insert lost to a racing seeder is a
// benign no-op.
func (s *rateSourceService) EnsureDefaultRates(ctx context.Context) error {
	count, err := s.rateRepo.CountRates(ctx)
	if err != nil {
		return fmt.Errorf("failed to count currency rates: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	for _, rate := range defaultRates {
		rate.AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     systemUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: systemUserID,
		}
		if err := s.rateRepo.InsertRate(ctx, rate); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				// Another instance seeded this row first.
				continue
			}
			return fmt.Errorf("failed to seed default rate %s: %w", rate.CurrencyCode, err)
		}
	}
	s.logger.Info("seeded default currency rates", slog.Int("count", len(defaultRates)))
	return nil
}

// ListRates retrieves all rate rows, seeding defaults first when needed.
func (s *rateSourceService) ListRates(ctx context.Context) ([]domain.CurrencyRate, error) {
	if err := s.EnsureDefaultRates(ctx); err != nil {
		return nil, err
	}
	rates, err := s.rateRepo.ListRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currency rates: %w", err)
	}
	return rates, nil
}

// GetRate retrieves a single rate row by code.
func (s *rateSourceService) GetRate(ctx context.Context, currencyCode string) (*domain.CurrencyRate, error) {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if len(code) != 3 {
		return nil, fmt.Errorf("%w: currency code must be 3 letters", apperrors.ErrValidation)
	}
	rate, err := s.rateRepo.FindRateByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency rate %s: %w", code, err)
	}
	return rate, nil
}

// UpdateRate applies an admin update to an existing rate row. Rows are never
// deleted; deactivation routes pricing back to the external feed.
func (s *rateSourceService) UpdateRate(ctx context.Context, currencyCode string, req dto.UpdateCurrencyRateRequest, updaterUserID string) (*domain.CurrencyRate, error) {
	existing, err := s.GetRate(ctx, currencyCode)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Symbol != nil {
		updated.Symbol = *req.Symbol
	}
	if req.Rate != nil {
		if !req.Rate.IsPositive() {
			return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
		}
		updated.Rate = *req.Rate
	}
	if req.Markup != nil {
		if req.Markup.LessThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("%w: markup must be at least 1", apperrors.ErrValidation)
		}
		updated.Markup = *req.Markup
	}
	if req.Active != nil {
		updated.Active = *req.Active
	}
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = updaterUserID

	if err := s.rateRepo.UpdateRate(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update currency rate %s: %w", updated.CurrencyCode, err)
	}
	return &updated, nil
}
