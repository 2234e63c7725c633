package services

import (
	"context"

	"github.com/BekhzodS/china_shop_app/internal/dto"
	"github.com/shopspring/decimal"
)

// CargoSvcFacade is the logistics surface: freight grouping, arrival cost
// allocation and order tracking.
type CargoSvcFacade interface {
	// CreateCargo groups the given orders into a new freight group, creates
	// a cargo under it and advances the orders to IN_TRANSIT. Returns
	// apperrors.ErrValidation when orderIDs is empty or none resolve.
	CreateCargo(ctx context.Context, req dto.CreateCargoRequest, creatorUserID string) (*dto.CreateCargoResponse, error)

	// Arrive marks the cargo arrived and distributes the shipping cost
	// across the group's orders in proportion to their subtotals. Replaying
	// with the same cost is idempotent.
	Arrive(ctx context.Context, cargoID string, actualShippingCost *decimal.Decimal, updaterUserID string) (*dto.ArriveCargoResponse, error)

	// Tracking returns the read-only tracking projection for an order.
	Tracking(ctx context.Context, orderID string) (*dto.TrackingResponse, error)
}
