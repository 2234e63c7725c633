package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/BekhzodS/china_shop_app/internal/apperrors"
	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	portssvc "github.com/BekhzodS/china_shop_app/internal/core/ports/services"
	"github.com/BekhzodS/china_shop_app/internal/core/services"
	"github.com/BekhzodS/china_shop_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RateRepository ---
type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) FindRateByCode(ctx context.Context, currencyCode string) (*domain.CurrencyRate, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyRate), args.Error(1)
}

func (m *MockRateRepository) ListRates(ctx context.Context) ([]domain.CurrencyRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyRate), args.Error(1)
}

func (m *MockRateRepository) CountRates(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRateRepository) InsertRate(ctx context.Context, rate domain.CurrencyRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockRateRepository) UpdateRate(ctx context.Context, rate domain.CurrencyRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Mock RateFeed ---
type MockRateFeed struct {
	mock.Mock
}

func (m *MockRateFeed) FetchRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type RateSourceServiceTestSuite struct {
	suite.Suite
	mockRepo *MockRateRepository
	mockFeed *MockRateFeed
	now      time.Time
	service  portssvc.RateSvcFacade
}

func (suite *RateSourceServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockRateRepository)
	suite.mockFeed = new(MockRateFeed)
	suite.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewRateSourceService(suite.mockRepo, suite.mockFeed, nil, services.WithRateClock(func() time.Time {
		return suite.now
	}))
}

// --- Resolve ---

func (suite *RateSourceServiceTestSuite) TestResolve_CustomRateWins() {
	ctx := context.Background()
	custom := &domain.CurrencyRate{
		CurrencyCode: "RUB",
		Rate:         decimal.NewFromFloat(13.5),
		Markup:       decimal.NewFromFloat(1.10),
		Active:       true,
	}
	suite.mockRepo.On("FindRateByCode", ctx, "RUB").Return(custom, nil).Once()

	res := suite.service.Resolve(ctx, "rub")

	suite.True(res.IsCustom)
	suite.True(res.Rate.Equal(decimal.NewFromFloat(13.5)))
	suite.True(res.Markup.Equal(decimal.NewFromFloat(1.10)))
	suite.mockFeed.AssertNotCalled(suite.T(), "FetchRate")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateSourceServiceTestSuite) TestResolve_InactiveCustomFallsThrough() {
	ctx := context.Background()
	custom := &domain.CurrencyRate{
		CurrencyCode: "RUB",
		Rate:         decimal.NewFromFloat(13.5),
		Markup:       decimal.NewFromFloat(1.10),
		Active:       false,
	}
	suite.mockRepo.On("FindRateByCode", ctx, "RUB").Return(custom, nil).Once()
	suite.mockFeed.On("FetchRate", ctx, "CNY", "RUB").Return(decimal.NewFromFloat(12.8), nil).Once()

	res := suite.service.Resolve(ctx, "RUB")

	suite.False(res.IsCustom)
	suite.True(res.Rate.Equal(decimal.NewFromFloat(12.8)))
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockFeed.AssertExpectations(suite.T())
}

func (suite *RateSourceServiceTestSuite) TestResolve_DegradedWhenFeedFails() {
	ctx := context.Background()
	suite.mockRepo.On("FindRateByCode", ctx, "RUB").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockFeed.On("FetchRate", ctx, "CNY", "RUB").Return(decimal.Zero, assert.AnError).Once()

	res := suite.service.Resolve(ctx, "RUB")

	suite.False(res.IsCustom)
	suite.True(res.Rate.Equal(decimal.NewFromInt(13)), "should use the degraded fallback rate")
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockFeed.AssertExpectations(suite.T())
}

func (suite *RateSourceServiceTestSuite) TestResolve_EmptyCodeDefaultsToRUB() {
	ctx := context.Background()
	suite.mockRepo.On("FindRateByCode", ctx, "RUB").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockFeed.On("FetchRate", ctx, "CNY", "RUB").Return(decimal.NewFromFloat(12.8), nil).Once()

	res := suite.service.Resolve(ctx, "")

	suite.True(res.Rate.Equal(decimal.NewFromFloat(12.8)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateSourceServiceTestSuite) TestResolve_FeedResultCachedWithinTTL() {
	ctx := context.Background()
	suite.mockRepo.On("FindRateByCode", ctx, "RUB").Return(nil, apperrors.ErrNotFound)
	suite.mockFeed.On("FetchRate", ctx, "CNY", "RUB").Return(decimal.NewFromFloat(12.8), nil).Once()

	first := suite.service.Resolve(ctx, "RUB")
	suite.now = suite.now.Add(4 * time.Minute)
	second := suite.service.Resolve(ctx, "RUB")

	suite.True(first.Rate.Equal(second.Rate))
	suite.mockFeed.AssertNumberOfCalls(suite.T(), "FetchRate", 1)
}

func (suite *RateSourceServiceTestSuite) TestResolve_CacheExpiresAfterTTL() {
	ctx := context.Background()
	suite.mockRepo.On("FindRateByCode", ctx, "RUB").Return(nil, apperrors.ErrNotFound)
	suite.mockFeed.On("FetchRate", ctx, "CNY", "RUB").Return(decimal.NewFromFloat(12.8), nil).Once()
	suite.mockFeed.On("FetchRate", ctx, "CNY", "RUB").Return(decimal.NewFromFloat(13.2), nil).Once()

	first := suite.service.Resolve(ctx, "RUB")
	suite.now = suite.now.Add(5 * time.Minute)
	second := suite.service.Resolve(ctx, "RUB")

	suite.True(first.Rate.Equal(decimal.NewFromFloat(12.8)))
	suite.True(second.Rate.Equal(decimal.NewFromFloat(13.2)))
	suite.mockFeed.AssertNumberOfCalls(suite.T(), "FetchRate", 2)
}

func (suite *RateSourceServiceTestSuite) TestResolve_DegradedRateNotCached() {
	ctx := context.Background()
	suite.mockRepo.On("FindRateByCode", ctx, "RUB").Return(nil, apperrors.ErrNotFound)
	suite.mockFeed.On("FetchRate", ctx, "CNY", "RUB").Return(decimal.Zero, assert.AnError).Once()
	suite.mockFeed.On("FetchRate", ctx, "CNY", "RUB").Return(decimal.NewFromFloat(12.8), nil).Once()

	first := suite.service.Resolve(ctx, "RUB")
	second := suite.service.Resolve(ctx, "RUB")

	suite.True(first.Rate.Equal(decimal.NewFromInt(13)))
	suite.True(second.Rate.Equal(decimal.NewFromFloat(12.8)), "a degraded result must not poison the cache")
	suite.mockFeed.AssertNumberOfCalls(suite.T(), "FetchRate", 2)
}

// --- EnsureDefaultRates ---

func (suite *RateSourceServiceTestSuite) TestEnsureDefaultRates_SeedsWhenEmpty() {
	ctx := context.Background()
	suite.mockRepo.On("CountRates", ctx).Return(int64(0), nil).Once()
	suite.mockRepo.On("InsertRate", ctx, mock.AnythingOfType("domain.CurrencyRate")).Return(nil).Times(6)

	err := suite.service.EnsureDefaultRates(ctx)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateSourceServiceTestSuite) TestEnsureDefaultRates_NoopWhenPopulated() {
	ctx := context.Background()
	suite.mockRepo.On("CountRates", ctx).Return(int64(6), nil).Once()

	err := suite.service.EnsureDefaultRates(ctx)

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "InsertRate")
}

func (suite *RateSourceServiceTestSuite) TestEnsureDefaultRates_ToleratesRacingSeeder() {
	ctx := context.Background()
	suite.mockRepo.On("CountRates", ctx).Return(int64(0), nil).Once()
	suite.mockRepo.On("InsertRate", ctx, mock.AnythingOfType("domain.CurrencyRate")).Return(apperrors.ErrDuplicate).Times(6)

	err := suite.service.EnsureDefaultRates(ctx)

	suite.Require().NoError(err, "losing every insert race is still success")
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- UpdateRate ---

func (suite *RateSourceServiceTestSuite) TestUpdateRate_PatchesOnlyGivenFields() {
	ctx := context.Background()
	existing := &domain.CurrencyRate{
		CurrencyCode: "RUB",
		Name:         "Russian Ruble",
		Rate:         decimal.NewFromInt(13),
		Markup:       decimal.NewFromFloat(1.05),
		Active:       true,
	}
	newRate := decimal.NewFromFloat(13.7)
	suite.mockRepo.On("FindRateByCode", ctx, "RUB").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateRate", ctx, mock.MatchedBy(func(r domain.CurrencyRate) bool {
		return r.Rate.Equal(newRate) && r.Markup.Equal(existing.Markup) && r.Name == existing.Name && r.LastUpdatedBy == "admin-1"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateRate(ctx, "RUB", dto.UpdateCurrencyRateRequest{Rate: &newRate}, "admin-1")

	suite.Require().NoError(err)
	suite.True(updated.Rate.Equal(newRate))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateSourceServiceTestSuite) TestUpdateRate_RejectsNonPositiveRate() {
	ctx := context.Background()
	existing := &domain.CurrencyRate{CurrencyCode: "RUB", Rate: decimal.NewFromInt(13), Markup: decimal.NewFromFloat(1.05)}
	badRate := decimal.Zero
	suite.mockRepo.On("FindRateByCode", ctx, "RUB").Return(existing, nil).Once()

	updated, err := suite.service.UpdateRate(ctx, "RUB", dto.UpdateCurrencyRateRequest{Rate: &badRate}, "admin-1")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateRate")
}

func (suite *RateSourceServiceTestSuite) TestGetRate_RejectsBadCode() {
	ctx := context.Background()

	rate, err := suite.service.GetRate(ctx, "RUBLES")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Run Suite ---
func TestRateSourceService(t *testing.T) {
	suite.Run(t, new(RateSourceServiceTestSuite))
}
