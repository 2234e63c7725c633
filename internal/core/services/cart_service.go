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
	"github.com/BekhzodS/china_shop_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// cartService holds cart lines and freezes their pricing in immutable
// snapshots at the moment of resolution.
type cartService struct {
	cartRepo portsrepo.CartRepositoryFacade
	pricing  portssvc.PricingSvcFacade
	products portssvc.ProductProvider
	activity portssvc.ActivityRecorder
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo portsrepo.CartRepositoryFacade, pricing portssvc.PricingSvcFacade, products portssvc.ProductProvider, activity portssvc.ActivityRecorder) portssvc.CartSvcFacade {
	return &cartService{
		cartRepo: cartRepo,
		pricing:  pricing,
		products: products,
		activity: activity,
	}
}

// AddItem resolves the unit price for the product/variant, prices it,
// persists a fresh snapshot and upserts the cart line. Re-adding the same
// (product, variantSelector) increments quantity and repoints the snapshot.
func (s *cartService) AddItem(ctx context.Context, userID string, req dto.AddCartItemRequest) (*dto.CartResponse, error) {
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", apperrors.ErrValidation)
	}

	product, err := s.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product %s: %w", req.ProductID, err)
	}

	unitPrice := resolveUnitPrice(product, req.VariantSelector)
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: product has a negative price", apperrors.ErrValidation)
	}

	breakdown := s.pricing.ApplyPricing(ctx, unitPrice, req.Currency)

	cart, err := s.ensureCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}

	// Snapshots are insert-only; the line is repointed so the previous
	// snapshot stays behind for audit.
	snapshot := domain.PriceSnapshot{
		SnapshotID:        uuid.NewString(),
		RateUsed:          breakdown.Rate,
		ConvertedAmount:   breakdown.Converted,
		FinalPerItemPrice: breakdown.FinalPerItem,
		ServiceFeePercent: breakdown.ServiceFeePercent,
		AuditFields:       audit,
	}
	if err := s.cartRepo.SaveSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save price snapshot: %w", err)
	}

	line := domain.CartLine{
		CartLineID:      uuid.NewString(),
		CartID:          cart.CartID,
		ProductID:       product.ProductID,
		ProductName:     product.Title,
		ProductImageURL: product.ImageURL,
		VariantSelector: req.VariantSelector,
		Quantity:        req.Quantity,
		SnapshotID:      snapshot.SnapshotID,
		AuditFields:     audit,
	}
	if err := s.cartRepo.UpsertLine(ctx, line); err != nil {
		return nil, fmt.Errorf("failed to upsert cart line: %w", err)
	}

	s.activity.Record(userID, "add_to_cart", map[string]any{
		"product_id": product.ProductID,
		"quantity":   req.Quantity,
		"price":      breakdown.FinalPerItem.String(),
	})

	return s.GetCart(ctx, userID)
}

// ensureCart finds the user's cart or creates it. The loser of a concurrent
// create race re-reads and proceeds.
func (s *cartService) ensureCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.cartRepo.FindCartByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find cart for user %s: %w", userID, err)
	}

	now := time.Now()
	fresh := domain.Cart{
		CartID: uuid.NewString(),
		UserID: userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.cartRepo.CreateCart(ctx, fresh); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.cartRepo.FindCartByUserID(ctx, userID)
		}
		return nil, fmt.Errorf("failed to create cart for user %s: %w", userID, err)
	}
	return &fresh, nil
}

// GetCart returns the priced cart view. A user with no cart row gets an
// empty view.
func (s *cartService) GetCart(ctx context.Context, userID string) (*dto.CartResponse, error) {
	empty := &dto.CartResponse{Items: []dto.CartItemResponse{}, Subtotal: decimal.Zero}

	cart, err := s.cartRepo.FindCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return empty, nil
		}
		return nil, fmt.Errorf("failed to find cart for user %s: %w", userID, err)
	}

	lines, err := s.cartRepo.ListLines(ctx, cart.CartID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart lines: %w", err)
	}

	items := make([]dto.CartItemResponse, len(lines))
	subtotal := decimal.Zero
	for i, line := range lines {
		price := decimal.Zero
		if line.Snapshot != nil {
			price = line.Snapshot.FinalPerItemPrice
		}
		lineTotal := price.Mul(decimal.NewFromInt(line.Quantity))
		items[i] = dto.CartItemResponse{
			ProductID:         line.ProductID,
			ProductName:       line.ProductName,
			ProductImageURL:   line.ProductImageURL,
			VariantSelector:   line.VariantSelector,
			Quantity:          line.Quantity,
			FinalPerItemPrice: price,
			LineTotal:         lineTotal,
		}
		subtotal = subtotal.Add(lineTotal)
	}

	return &dto.CartResponse{Items: items, Subtotal: subtotal.Round(2)}, nil
}

// RemoveLine deletes one line; a missing cart or line is ErrNotFound.
func (s *cartService) RemoveLine(ctx context.Context, userID, productID, variantSelector string) error {
	cart, err := s.cartRepo.FindCartByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find cart for user %s: %w", userID, err)
	}
	if err := s.cartRepo.DeleteLine(ctx, cart.CartID, productID, variantSelector); err != nil {
		return fmt.Errorf("failed to remove cart line: %w", err)
	}
	return nil
}

// Clear removes all lines; clearing a nonexistent cart is a no-op.
func (s *cartService) Clear(ctx context.Context, userID string) error {
	cart, err := s.cartRepo.FindCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find cart for user %s: %w", userID, err)
	}
	if err := s.cartRepo.ClearLines(ctx, cart.CartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
