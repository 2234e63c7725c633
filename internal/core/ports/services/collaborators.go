package services

import (
	"context"

	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateFeed is the external exchange rate lookup. Treated as unreliable:
// callers must be prepared for errors and time-outs and fall back.
type RateFeed interface {
	FetchRate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// ProductProvider is the upstream marketplace product client.
type ProductProvider interface {
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
}

// ActivityRecorder records user activity events (search, view, add-to-cart,
// purchase). Strictly fire-and-forget: implementations must not block and
// must swallow their own failures.
type ActivityRecorder interface {
	Record(userID string, event string, properties map[string]any)
}
