package dto

import (
	"time"

	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OrderLineResponse is a single frozen order line.
type OrderLineResponse struct {
	ProductID            string          `json:"productID"`
	ProductName          string          `json:"productName"`
	VariantSelector      string          `json:"variantSelector,omitempty"`
	Quantity             int64           `json:"quantity"`
	FinalPriceAtPurchase decimal.Decimal `json:"finalPriceAtPurchase"`
}

// OrderResponse defines the data returned for an order.
type OrderResponse struct {
	OrderID        string              `json:"orderID"`
	FreightGroupID *string             `json:"freightGroupID,omitempty"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	DeliveryFee    decimal.Decimal     `json:"deliveryFee"`
	Total          decimal.Decimal     `json:"total"`
	Status         string              `json:"status"`
	Purchased      bool                `json:"purchased"`
	PurchasedAt    *time.Time          `json:"purchasedAt,omitempty"`
	Lines          []OrderLineResponse `json:"lines,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
}

// ToOrderResponse converts a domain.Order to OrderResponse
func ToOrderResponse(o *domain.Order) OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = OrderLineResponse{
			ProductID:            l.ProductID,
			ProductName:          l.ProductName,
			VariantSelector:      l.VariantSelector,
			Quantity:             l.Quantity,
			FinalPriceAtPurchase: l.FinalPriceAtPurchase,
		}
	}
	return OrderResponse{
		OrderID:        o.OrderID,
		FreightGroupID: o.FreightGroupID,
		Subtotal:       o.Subtotal,
		DeliveryFee:    o.DeliveryFee,
		Total:          o.Total,
		Status:         string(o.Status),
		Purchased:      o.Purchased,
		PurchasedAt:    o.PurchasedAt,
		Lines:          lines,
		CreatedAt:      o.CreatedAt,
	}
}

// ListOrdersResponse is a page of the caller's orders.
type ListOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	NextToken string          `json:"nextToken,omitempty"`
}

// OrderStatusResponse is the compact status projection.
type OrderStatusResponse struct {
	OrderID     string          `json:"orderID"`
	Status      string          `json:"status"`
	Purchased   bool            `json:"purchased"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Total       decimal.Decimal `json:"total"`
}

// UpdateOrderStatusRequest is the administrative status override. It bypasses
// the lifecycle transition table.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetPurchasedRequest toggles the procurement-side purchased flag.
type SetPurchasedRequest struct {
	Purchased *bool `json:"purchased" binding:"required"`
}
