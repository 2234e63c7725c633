package dto

import (
	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProductVariantResponse is a purchasable variant option.
type ProductVariantResponse struct {
	VariantID string          `json:"variantID"`
	Name      string          `json:"name,omitempty"`
	Price     decimal.Decimal `json:"price"`
}

// ProductResponse is a marketplace product with localized pricing attached.
type ProductResponse struct {
	ProductID string                   `json:"productID"`
	Title     string                   `json:"title"`
	BasePrice decimal.Decimal          `json:"basePrice"` // in CNY
	ImageURL  string                   `json:"imageURL,omitempty"`
	Variants  []ProductVariantResponse `json:"variants,omitempty"`
	Pricing   *PriceBreakdownResponse  `json:"pricing,omitempty"`
}

// ToProductResponse converts a domain.Product to ProductResponse
func ToProductResponse(p *domain.Product) ProductResponse {
	variants := make([]ProductVariantResponse, len(p.Variants))
	for i, v := range p.Variants {
		variants[i] = ProductVariantResponse{VariantID: v.VariantID, Name: v.Name, Price: v.Price}
	}
	return ProductResponse{
		ProductID: p.ProductID,
		Title:     p.Title,
		BasePrice: p.BasePrice,
		ImageURL:  p.ImageURL,
		Variants:  variants,
	}
}
