package services

import (
	"context"

	"github.com/BekhzodS/china_shop_app/internal/core/domain"
)

// OrderReaderSvc defines read operations for orders
type OrderReaderSvc interface {
	// GetOrder retrieves one of the user's orders with its lines.
	GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, error)

	// ListOrders retrieves a page of the user's orders, newest first. The
	// returned token fetches the next page; empty means no more.
	ListOrders(ctx context.Context, userID string, limit int, nextToken string) ([]domain.Order, string, error)
}

// OrderWriterSvc defines write operations for orders
type OrderWriterSvc interface {
	// CreateFromCart materializes the user's cart into an immutable order
	// and clears the cart, as a single logical transaction. Returns
	// apperrors.ErrInvalidState when the cart has no lines.
	CreateFromCart(ctx context.Context, userID string) (*domain.Order, error)

	// OverrideStatus is the administrative escape hatch: it sets any status
	// on any order, bypassing the lifecycle transition table.
	OverrideStatus(ctx context.Context, orderID string, status domain.OrderStatus, updaterUserID string) (*domain.Order, error)

	// SetPurchased toggles the procurement-side purchased flag. Setting it
	// while the order is PENDING_PROCESSING also advances it to PROCURED;
	// unsetting never reverts status.
	SetPurchased(ctx context.Context, orderID string, purchased bool, updaterUserID string) (*domain.Order, error)
}

// OrderSvcFacade combines all order-related service interfaces
type OrderSvcFacade interface {
	OrderReaderSvc
	OrderWriterSvc
}
