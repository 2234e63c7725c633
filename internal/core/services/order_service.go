package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BekhzodS/china_shop_app/internal/apperrors"
	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	portsrepo "github.com/BekhzodS/china_shop_app/internal/core/ports/repositories"
	portssvc "github.com/BekhzodS/china_shop_app/internal/core/ports/services"
	"github.com/BekhzodS/china_shop_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultOrderPageSize = 20
	maxOrderPageSize     = 100
)

// orderService materializes carts into immutable orders and owns the order
// lifecycle operations.
type orderService struct {
	orderRepo portsrepo.OrderRepositoryFacade
	cartRepo  portsrepo.CartRepositoryFacade
	activity  portssvc.ActivityRecorder
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo portsrepo.OrderRepositoryFacade, cartRepo portsrepo.CartRepositoryFacade, activity portssvc.ActivityRecorder) portssvc.OrderSvcFacade {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		activity:  activity,
	}
}

// CreateFromCart freezes the user's cart into an order. The subtotal is
// recomputed from the live snapshots at this instant; each order line copies
// the snapshot's final price, which is never recomputed afterwards. Order
// insert and cart clearing happen in one repository transaction.
func (s *orderService) CreateFromCart(ctx context.Context, userID string) (*domain.Order, error) {
	cart, err := s.cartRepo.FindCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: cart is empty", apperrors.ErrInvalidState)
		}
		return nil, fmt.Errorf("failed to find cart for user %s: %w", userID, err)
	}

	lines, err := s.cartRepo.ListLines(ctx, cart.CartID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart lines: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", apperrors.ErrInvalidState)
	}

	now := time.Now()
	orderID := uuid.NewString()
	subtotal := decimal.Zero
	orderLines := make([]domain.OrderLine, len(lines))
	for i, line := range lines {
		price := decimal.Zero
		if line.Snapshot != nil {
			price = line.Snapshot.FinalPerItemPrice
		}
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(line.Quantity)))
		orderLines[i] = domain.OrderLine{
			OrderLineID:          uuid.NewString(),
			OrderID:              orderID,
			ProductID:            line.ProductID,
			ProductName:          line.ProductName,
			VariantSelector:      line.VariantSelector,
			Quantity:             line.Quantity,
			FinalPriceAtPurchase: price,
		}
	}
	subtotal = subtotal.Round(2)

	order := domain.Order{
		OrderID:     orderID,
		UserID:      userID,
		Subtotal:    subtotal,
		DeliveryFee: decimal.Zero,
		Total:       subtotal,
		Status:      domain.OrderStatusPendingProcessing,
		Lines:       orderLines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.orderRepo.CreateOrderFromCart(ctx, order, cart.CartID); err != nil {
		return nil, fmt.Errorf("failed to create order from cart: %w", err)
	}

	// Best effort; never fails the order.
	for _, line := range orderLines {
		s.activity.Record(userID, "purchase", map[string]any{
			"order_id":   orderID,
			"product_id": line.ProductID,
			"quantity":   line.Quantity,
			"price":      line.FinalPriceAtPurchase.String(),
		})
	}

	return &order, nil
}

// GetOrder retrieves one of the user's orders. Another user's order is
// reported as not found.
func (s *orderService) GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("%w: order %s", apperrors.ErrNotFound, orderID)
	}
	return order, nil
}

// ListOrders returns a page of the user's orders, newest first.
func (s *orderService) ListOrders(ctx context.Context, userID string, limit int, nextToken string) ([]domain.Order, string, error) {
	if limit <= 0 {
		limit = defaultOrderPageSize
	}
	if limit > maxOrderPageSize {
		limit = maxOrderPageSize
	}

	var createdBefore time.Time
	if nextToken != "" {
		decoded, err := pagination.DecodeDateBasedToken(nextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		createdBefore = decoded
	}

	orders, err := s.orderRepo.ListOrdersByUser(ctx, userID, limit, createdBefore)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}

	token := ""
	if len(orders) == limit {
		token = pagination.EncodeDateBasedToken(orders[len(orders)-1].CreatedAt)
	}
	return orders, token, nil
}

// OverrideStatus is the administrative escape hatch. It deliberately skips
// the lifecycle transition table and writes any known status directly.
func (s *orderService) OverrideStatus(ctx context.Context, orderID string, status domain.OrderStatus, updaterUserID string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(string(status)) {
		return nil, fmt.Errorf("%w: unknown order status %q", apperrors.ErrValidation, status)
	}
	if err := s.orderRepo.UpdateStatus(ctx, orderID, status, updaterUserID); err != nil {
		return nil, fmt.Errorf("failed to override status of order %s: %w", orderID, err)
	}
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload order %s: %w", orderID, err)
	}
	return order, nil
}

// SetPurchased toggles the procurement-side purchased flag. Setting it while
// the order is still PENDING_PROCESSING advances the order to PROCURED;
// unsetting clears the timestamp but never reverts status.
func (s *orderService) SetPurchased(ctx context.Context, orderID string, purchased bool, updaterUserID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}

	var purchasedAt *time.Time
	if purchased {
		now := time.Now()
		purchasedAt = &now
	}
	if err := s.orderRepo.SetPurchased(ctx, orderID, purchased, purchasedAt, updaterUserID); err != nil {
		return nil, fmt.Errorf("failed to set purchased on order %s: %w", orderID, err)
	}

	if purchased && order.Status == domain.OrderStatusPendingProcessing {
		if err := s.orderRepo.UpdateStatus(ctx, orderID, domain.OrderStatusProcured, updaterUserID); err != nil {
			return nil, fmt.Errorf("failed to advance order %s to procured: %w", orderID, err)
		}
	}

	updated, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload order %s: %w", orderID, err)
	}
	return updated, nil
}
