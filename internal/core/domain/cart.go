package domain

// Cart is a user's shopping cart. One cart per user.
type Cart struct {
	CartID string `json:"cartID"` // Primary Key (UUID)
	UserID string `json:"userID"` // FK -> User.userID, unique
	AuditFields
}

// CartLine is a single cart entry, unique per (cart, product, variant
// selector). Adding the same combination again increments Quantity and
// repoints SnapshotID to a freshly created price snapshot.
type CartLine struct {
	CartLineID      string `json:"cartLineID"` // Primary Key (UUID)
	CartID          string `json:"cartID"`     // FK -> Cart.cartID
	ProductID       string `json:"productID"`  // marketplace product identifier
	ProductName     string `json:"productName"`
	ProductImageURL string `json:"productImageURL,omitempty"`
	VariantSelector string `json:"variantSelector"` // opaque token, may be empty
	Quantity        int64  `json:"quantity"`        // >= 1
	SnapshotID      string `json:"snapshotID"`      // FK -> PriceSnapshot.snapshotID
	AuditFields

	// Snapshot is the currently referenced price snapshot, populated when
	// the line is loaded for display or order materialization.
	Snapshot *PriceSnapshot `json:"snapshot,omitempty"`
}
