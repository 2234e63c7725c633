package repositories

import (
	"context"

	"github.com/BekhzodS/china_shop_app/internal/core/domain"
)

// CartReader defines read operations for cart data
type CartReader interface {
	// FindCartByUserID retrieves the user's cart row.
	FindCartByUserID(ctx context.Context, userID string) (*domain.Cart, error)

	// ListLines retrieves all lines of a cart, each joined with its current
	// price snapshot.
	ListLines(ctx context.Context, cartID string) ([]domain.CartLine, error)
}

// CartWriter defines write operations for cart data
type CartWriter interface {
	// CreateCart persists a new cart. Returns apperrors.ErrDuplicate when
	// the user already has one (concurrent create-if-absent race).
	CreateCart(ctx context.Context, cart domain.Cart) error

	// UpsertLine inserts the line or, when (cart, product, variantSelector)
	// already exists, increments its quantity by line.Quantity and repoints
	// it to line.SnapshotID.
	UpsertLine(ctx context.Context, line domain.CartLine) error

	// DeleteLine removes a line. Returns apperrors.ErrNotFound when no such
	// line exists.
	DeleteLine(ctx context.Context, cartID, productID, variantSelector string) error

	// ClearLines removes all lines of a cart. Clearing an empty cart is not
	// an error.
	ClearLines(ctx context.Context, cartID string) error
}

// SnapshotWriter persists immutable price snapshots. Snapshots are never
// updated; a new row is written for every price resolution.
type SnapshotWriter interface {
	SaveSnapshot(ctx context.Context, snapshot domain.PriceSnapshot) error
}

// CartRepositoryFacade combines all cart-related repository interfaces
type CartRepositoryFacade interface {
	CartReader
	CartWriter
	SnapshotWriter
}
