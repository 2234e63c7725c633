package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus enumerates the order lifecycle.
type OrderStatus string

const (
	OrderStatusPendingProcessing       OrderStatus = "PENDING_PROCESSING"
	OrderStatusInTransit               OrderStatus = "IN_TRANSIT"
	OrderStatusAwaitingDeliveryPayment OrderStatus = "AWAITING_DELIVERY_PAYMENT"
	OrderStatusProcured                OrderStatus = "PROCURED"
	OrderStatusDelivered               OrderStatus = "DELIVERED"
)

// orderTransitions is the legal-transition table for the normal flow.
// The administrative status override deliberately bypasses it.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPendingProcessing:       {OrderStatusInTransit, OrderStatusProcured},
	OrderStatusInTransit:               {OrderStatusAwaitingDeliveryPayment},
	OrderStatusAwaitingDeliveryPayment: {OrderStatusProcured, OrderStatusDelivered},
	OrderStatusProcured:                {OrderStatusDelivered},
	OrderStatusDelivered:               {},
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// ValidOrderStatus reports whether the given string names a known status.
func ValidOrderStatus(s string) bool {
	_, ok := orderTransitions[OrderStatus(s)]
	return ok
}

// Order is an immutable snapshot of a purchased cart. After creation only
// DeliveryFee, Total, Status and the purchased flag may change.
type Order struct {
	OrderID        string          `json:"orderID"` // Primary Key (UUID)
	UserID         string          `json:"userID"`  // FK -> User.userID
	FreightGroupID *string         `json:"freightGroupID,omitempty"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryFee    decimal.Decimal `json:"deliveryFee"` // 0 until cargo arrival
	Total          decimal.Decimal `json:"total"`       // always Subtotal + DeliveryFee
	Status         OrderStatus     `json:"status"`
	Purchased      bool            `json:"purchased"` // procurement-side purchase confirmed
	PurchasedAt    *time.Time      `json:"purchasedAt,omitempty"`
	Lines          []OrderLine     `json:"lines,omitempty"`
	AuditFields
}

// OrderLine copies a cart line at purchase time. FinalPriceAtPurchase is the
// snapshot price active at order creation and is never recomputed.
type OrderLine struct {
	OrderLineID          string          `json:"orderLineID"` // Primary Key (UUID)
	OrderID              string          `json:"orderID"`     // FK -> Order.orderID
	ProductID            string          `json:"productID"`
	ProductName          string          `json:"productName"`
	VariantSelector      string          `json:"variantSelector"`
	Quantity             int64           `json:"quantity"`
	FinalPriceAtPurchase decimal.Decimal `json:"finalPriceAtPurchase"`
}
