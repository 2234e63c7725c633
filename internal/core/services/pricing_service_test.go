package services_test

import (
	"context"
	"testing"

	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	"github.com/BekhzodS/china_shop_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// stubResolver returns a fixed rate resolution.
type stubResolver struct {
	resolution domain.RateResolution
}

func (s *stubResolver) Resolve(ctx context.Context, currencyCode string) domain.RateResolution {
	return s.resolution
}

func TestApplyPricing_ItemizedBreakdown(t *testing.T) {
	resolver := &stubResolver{resolution: domain.RateResolution{
		Rate:     decimal.NewFromFloat(13.5),
		Markup:   decimal.NewFromFloat(1.10),
		IsCustom: true,
	}}
	svc := services.NewPricingService(resolver)

	b := svc.ApplyPricing(context.Background(), decimal.NewFromInt(100), "RUB")

	assert.True(t, b.Converted.Equal(decimal.NewFromInt(1350)), "converted, got %s", b.Converted)
	assert.True(t, b.ConvertedWithMarkup.Equal(decimal.NewFromInt(1485)), "converted with markup, got %s", b.ConvertedWithMarkup)
	assert.True(t, b.ServiceFeeAmount.Equal(decimal.NewFromFloat(44.55)), "service fee, got %s", b.ServiceFeeAmount)
	assert.True(t, b.FinalPerItem.Equal(decimal.NewFromFloat(1529.55)), "final per item, got %s", b.FinalPerItem)
	assert.True(t, b.ServiceFeePercent.Equal(decimal.NewFromFloat(0.03)))
	assert.True(t, b.RateWithMarkup.Equal(decimal.NewFromFloat(14.85)))
}

func TestApplyPricing_ZeroAmount(t *testing.T) {
	resolver := &stubResolver{resolution: domain.RateResolution{
		Rate:   decimal.NewFromInt(13),
		Markup: decimal.NewFromFloat(1.05),
	}}
	svc := services.NewPricingService(resolver)

	b := svc.ApplyPricing(context.Background(), decimal.Zero, "RUB")

	assert.True(t, b.Converted.IsZero())
	assert.True(t, b.ServiceFeeAmount.IsZero())
	assert.True(t, b.FinalPerItem.IsZero())
}

func TestApplyPricing_RoundsOutputsOnly(t *testing.T) {
	// 9.99 * 13.333 * 1.05 = 139.8694... ; fee and final must round to cents
	resolver := &stubResolver{resolution: domain.RateResolution{
		Rate:   decimal.NewFromFloat(13.333),
		Markup: decimal.NewFromFloat(1.05),
	}}
	svc := services.NewPricingService(resolver)

	b := svc.ApplyPricing(context.Background(), decimal.NewFromFloat(9.99), "RUB")

	assert.Equal(t, int32(-2), b.FinalPerItem.Exponent(), "final price should carry exactly 2 decimal places")
	expectedFinal := decimal.NewFromFloat(9.99).
		Mul(decimal.NewFromFloat(13.333)).
		Mul(decimal.NewFromFloat(1.05)).
		Mul(decimal.NewFromFloat(1.03)).
		Round(2)
	assert.True(t, b.FinalPerItem.Equal(expectedFinal), "got %s want %s", b.FinalPerItem, expectedFinal)
}
