package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the orders table row.
type Order struct {
	OrderID        string          `db:"order_id"`
	UserID         string          `db:"user_id"`
	FreightGroupID *string         `db:"freight_group_id"`
	Subtotal       decimal.Decimal `db:"subtotal"`
	DeliveryFee    decimal.Decimal `db:"delivery_fee"`
	Total          decimal.Decimal `db:"total"`
	Status         string          `db:"status"`
	Purchased      bool            `db:"purchased"`
	PurchasedAt    *time.Time      `db:"purchased_at"`
	AuditFields
}

// OrderLine is the order_lines table row. Insert-only.
type OrderLine struct {
	OrderLineID          string          `db:"order_line_id"`
	OrderID              string          `db:"order_id"`
	ProductID            string          `db:"product_id"`
	ProductName          string          `db:"product_name"`
	VariantSelector      string          `db:"variant_selector"`
	Quantity             int64           `db:"quantity"`
	FinalPriceAtPurchase decimal.Decimal `db:"final_price_at_purchase"`
}
