package dto

import (
	"github.com/shopspring/decimal"
)

// AddCartItemRequest defines the data needed to add an item to the cart.
type AddCartItemRequest struct {
	ProductID       string `json:"productID" binding:"required"`
	VariantSelector string `json:"variantSelector"`
	Quantity        int64  `json:"quantity" binding:"required,min=1"`
	Currency        string `json:"currency" binding:"omitempty,uppercase,len=3"`
}

// CartItemResponse is a single priced cart line.
type CartItemResponse struct {
	ProductID         string          `json:"productID"`
	ProductName       string          `json:"productName"`
	ProductImageURL   string          `json:"productImageURL,omitempty"`
	VariantSelector   string          `json:"variantSelector,omitempty"`
	Quantity          int64           `json:"quantity"`
	FinalPerItemPrice decimal.Decimal `json:"finalPerItemPrice"`
	LineTotal         decimal.Decimal `json:"lineTotal"`
}

// CartResponse is the full cart view. An owner without a cart row gets
// Items: [] and Subtotal: 0.
type CartResponse struct {
	Items    []CartItemResponse `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
}
