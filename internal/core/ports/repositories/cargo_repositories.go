package repositories

import (
	"context"
	"time"

	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CargoReader defines read operations for freight data
type CargoReader interface {
	// FindCargoByID retrieves a cargo.
	FindCargoByID(ctx context.Context, cargoID string) (*domain.Cargo, error)

	// ListCargosByFreightGroup retrieves all cargos of a freight group.
	ListCargosByFreightGroup(ctx context.Context, freightGroupID string) ([]domain.Cargo, error)
}

// CargoWriter defines write operations for freight data
type CargoWriter interface {
	// CreateFreightGroup persists a new freight group.
	CreateFreightGroup(ctx context.Context, group domain.FreightGroup) error

	// CreateCargo persists a new cargo under an existing freight group.
	CreateCargo(ctx context.Context, cargo domain.Cargo) error

	// MarkCargoArrived sets shipping cost, arrival date and status on a
	// cargo. Returns apperrors.ErrNotFound when the cargo is unknown.
	MarkCargoArrived(ctx context.Context, cargoID string, shippingCost decimal.Decimal, arrivalDate time.Time, updaterUserID string) error
}

// CargoRepositoryFacade combines all freight-related repository interfaces
type CargoRepositoryFacade interface {
	CargoReader
	CargoWriter
}
