package repositories

import (
	"context"
	"time"

	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OrderReader defines read operations for order data
type OrderReader interface {
	// FindOrderByID retrieves an order with its lines.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrdersByUser retrieves the user's orders, newest first. A non-zero
	// createdBefore restricts to orders created strictly earlier (pagination).
	ListOrdersByUser(ctx context.Context, userID string, limit int, createdBefore time.Time) ([]domain.Order, error)

	// ListOrdersByIDs retrieves the orders matching the given ids. Unknown
	// ids are silently skipped.
	ListOrdersByIDs(ctx context.Context, orderIDs []string) ([]domain.Order, error)

	// ListOrdersByFreightGroup retrieves all orders of a freight group.
	ListOrdersByFreightGroup(ctx context.Context, freightGroupID string) ([]domain.Order, error)
}

// OrderWriter defines write operations for order data
type OrderWriter interface {
	// CreateOrderFromCart atomically inserts the order with its lines and
	// clears the source cart's lines in a single transaction.
	CreateOrderFromCart(ctx context.Context, order domain.Order, cartID string) error

	// AssignFreightGroup atomically sets the freight group and status on all
	// given orders (bulk update by id-set).
	AssignFreightGroup(ctx context.Context, orderIDs []string, freightGroupID string, status domain.OrderStatus, updaterUserID string) error

	// UpdateDeliveryFee sets deliveryFee, total and status on one order.
	UpdateDeliveryFee(ctx context.Context, orderID string, fee, total decimal.Decimal, status domain.OrderStatus, updaterUserID string) error

	// UpdateStatus sets the order status. Returns apperrors.ErrNotFound when
	// the order is unknown.
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, updaterUserID string) error

	// SetPurchased sets the purchased flag and timestamp.
	SetPurchased(ctx context.Context, orderID string, purchased bool, purchasedAt *time.Time, updaterUserID string) error
}

// OrderRepositoryFacade combines all order-related repository interfaces
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
}
