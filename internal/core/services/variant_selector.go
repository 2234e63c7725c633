package services

import (
	"encoding/json"
	"strings"

	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// variantToken is the parsed form of an opaque variant selector. Selectors
// come from the storefront either as a bare variant id or as a JSON object
// carrying an id and optionally a price override.
type variantToken struct {
	VariantID string
	Price     decimal.Decimal
	HasPrice  bool
}

// parseVariantSelector tolerantly parses a selector string. It never fails:
// malformed input simply yields ok=false so pricing falls back to the
// product's base price.
func parseVariantSelector(selector string) (variantToken, bool) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return variantToken{}, false
	}

	if strings.HasPrefix(selector, "{") {
		var raw struct {
			VariantID string           `json:"variantID"`
			SkuID     string           `json:"skuId"`
			Price     *decimal.Decimal `json:"price"`
		}
		if err := json.Unmarshal([]byte(selector), &raw); err != nil {
			return variantToken{}, false
		}
		token := variantToken{VariantID: raw.VariantID}
		if token.VariantID == "" {
			token.VariantID = raw.SkuID
		}
		if raw.Price != nil {
			token.Price = *raw.Price
			token.HasPrice = true
		}
		if token.VariantID == "" && !token.HasPrice {
			return variantToken{}, false
		}
		return token, true
	}

	// A bare string is treated as a variant id.
	return variantToken{VariantID: selector}, true
}

// resolveUnitPrice picks the unit price for a product given a selector: the
// matched variant's positive price, else a positive price override carried
// by the token itself, else the product's base price.
func resolveUnitPrice(product *domain.Product, selector string) decimal.Decimal {
	token, ok := parseVariantSelector(selector)
	if !ok {
		return product.BasePrice
	}

	for _, variant := range product.Variants {
		if variant.VariantID != token.VariantID {
			continue
		}
		if variant.Price.IsPositive() {
			return variant.Price
		}
		if token.HasPrice && token.Price.IsPositive() {
			return token.Price
		}
		break
	}
	return product.BasePrice
}
