package domain

import "github.com/shopspring/decimal"

// Product is a marketplace product projection as returned by the upstream
// product client. Prices are in the marketplace base currency (CNY). Not
// persisted locally.
type Product struct {
	ProductID string           `json:"productID"`
	Title     string           `json:"title"`
	BasePrice decimal.Decimal  `json:"basePrice"`
	ImageURL  string           `json:"imageURL,omitempty"`
	Variants  []ProductVariant `json:"variants,omitempty"`
}

// ProductVariant is a purchasable variant of a product. Price may be zero
// when the variant carries no price override.
type ProductVariant struct {
	VariantID string          `json:"variantID"`
	Name      string          `json:"name,omitempty"`
	Price     decimal.Decimal `json:"price"`
}
