package models

// Cart is the carts table row. One row per user.
type Cart struct {
	CartID string `db:"cart_id"`
	UserID string `db:"user_id"`
	AuditFields
}

// CartLine is the cart_lines table row, unique on
// (cart_id, product_id, variant_selector).
type CartLine struct {
	CartLineID      string `db:"cart_line_id"`
	CartID          string `db:"cart_id"`
	ProductID       string `db:"product_id"`
	ProductName     string `db:"product_name"`
	ProductImageURL string `db:"product_image_url"`
	VariantSelector string `db:"variant_selector"`
	Quantity        int64  `db:"quantity"`
	SnapshotID      string `db:"snapshot_id"`
	AuditFields
}
