package services

import (
	"testing"

	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseVariantSelector(t *testing.T) {
	tests := []struct {
		name      string
		selector  string
		wantOK    bool
		wantID    string
		wantPrice string
	}{
		{name: "empty", selector: "", wantOK: false},
		{name: "whitespace only", selector: "   ", wantOK: false},
		{name: "bare variant id", selector: "sku-42", wantOK: true, wantID: "sku-42"},
		{name: "json with variantID", selector: `{"variantID":"v1"}`, wantOK: true, wantID: "v1"},
		{name: "json with skuId alias", selector: `{"skuId":"s1"}`, wantOK: true, wantID: "s1"},
		{name: "json with price override", selector: `{"variantID":"v1","price":"12.50"}`, wantOK: true, wantID: "v1", wantPrice: "12.5"},
		{name: "json price only", selector: `{"price":"9.99"}`, wantOK: true, wantPrice: "9.99"},
		{name: "json empty object", selector: `{}`, wantOK: false},
		{name: "malformed json", selector: `{"variantID":`, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, ok := parseVariantSelector(tt.selector)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantID, token.VariantID)
			if tt.wantPrice != "" {
				assert.True(t, token.HasPrice)
				assert.Equal(t, tt.wantPrice, token.Price.String())
			}
		})
	}
}

func TestResolveUnitPrice(t *testing.T) {
	product := &domain.Product{
		ProductID: "p1",
		BasePrice: decimal.NewFromInt(100),
		Variants: []domain.ProductVariant{
			{VariantID: "priced", Price: decimal.NewFromInt(120)},
			{VariantID: "unpriced", Price: decimal.Zero},
		},
	}

	t.Run("matched variant price wins", func(t *testing.T) {
		got := resolveUnitPrice(product, "priced")
		assert.True(t, got.Equal(decimal.NewFromInt(120)))
	})

	t.Run("unmatched variant falls back to base", func(t *testing.T) {
		got := resolveUnitPrice(product, "ghost")
		assert.True(t, got.Equal(decimal.NewFromInt(100)))
	})

	t.Run("empty selector uses base", func(t *testing.T) {
		got := resolveUnitPrice(product, "")
		assert.True(t, got.Equal(decimal.NewFromInt(100)))
	})

	t.Run("token price fills in for unpriced variant", func(t *testing.T) {
		got := resolveUnitPrice(product, `{"variantID":"unpriced","price":"55"}`)
		assert.True(t, got.Equal(decimal.NewFromInt(55)))
	})

	t.Run("token price ignored when variant has its own", func(t *testing.T) {
		got := resolveUnitPrice(product, `{"variantID":"priced","price":"1"}`)
		assert.True(t, got.Equal(decimal.NewFromInt(120)))
	})

	t.Run("token price ignored without a variant match", func(t *testing.T) {
		got := resolveUnitPrice(product, `{"price":"55"}`)
		assert.True(t, got.Equal(decimal.NewFromInt(100)))
	})

	t.Run("malformed selector falls back to base", func(t *testing.T) {
		got := resolveUnitPrice(product, `{"variantID":`)
		assert.True(t, got.Equal(decimal.NewFromInt(100)))
	})
}
