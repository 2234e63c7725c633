package services

import (
	"context"

	"github.com/BekhzodS/china_shop_app/internal/dto"
)

// CartReaderSvc defines read operations for carts
type CartReaderSvc interface {
	// GetCart returns the user's priced cart view. A user without a cart
	// row gets an empty view, not an error.
	GetCart(ctx context.Context, userID string) (*dto.CartResponse, error)
}

// CartWriterSvc defines write operations for carts
type CartWriterSvc interface {
	// AddItem resolves the unit price, freezes it in a new snapshot and
	// upserts the cart line keyed by (cart, product, variantSelector).
	AddItem(ctx context.Context, userID string, req dto.AddCartItemRequest) (*dto.CartResponse, error)

	// RemoveLine deletes one line. Removing a nonexistent line returns
	// apperrors.ErrNotFound.
	RemoveLine(ctx context.Context, userID, productID, variantSelector string) error

	// Clear removes all lines. Clearing a nonexistent cart is a no-op.
	Clear(ctx context.Context, userID string) error
}

// CartSvcFacade combines all cart-related service interfaces
type CartSvcFacade interface {
	CartReaderSvc
	CartWriterSvc
}
