package services

import (
	"context"
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

// cargoService groups orders into freight units and allocates shipping cost
// proportionally on arrival.
type cargoService struct {
	cargoRepo portsrepo.CargoRepositoryFacade
	orderRepo portsrepo.OrderRepositoryFacade
}

// NewCargoService creates a new cargo service.
func NewCargoService(cargoRepo portsrepo.CargoRepositoryFacade, orderRepo portsrepo.OrderRepositoryFacade) portssvc.CargoSvcFacade {
	return &cargoService{
		cargoRepo: cargoRepo,
		orderRepo: orderRepo,
	}
}

// CreateCargo creates a freight group over the given orders, a cargo under
// it, and advances every grouped order to IN_TRANSIT. An order's freight
// group is set once for its lifetime: already-grouped orders are skipped so
// they can neither be re-homed nor have their status rolled back.
func (s *cargoService) CreateCargo(ctx context.Context, req dto.CreateCargoRequest, creatorUserID string) (*dto.CreateCargoResponse, error) {
	if len(req.OrderIDs) == 0 {
		return nil, fmt.Errorf("%w: order id list is empty", apperrors.ErrValidation)
	}

	resolved, err := s.orderRepo.ListOrdersByIDs(ctx, req.OrderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve orders: %w", err)
	}
	orders := make([]domain.Order, 0, len(resolved))
	for _, order := range resolved {
		if order.FreightGroupID != nil {
			continue
		}
		orders = append(orders, order)
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("%w: none of the order ids resolve to ungrouped orders", apperrors.ErrValidation)
	}

	now := time.Now()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: creatorUserID, LastUpdatedAt: now, LastUpdatedBy: creatorUserID}

	group := domain.FreightGroup{
		FreightGroupID: uuid.NewString(),
		Status:         domain.FreightGroupStatusOpen,
		AuditFields:    audit,
	}
	if err := s.cargoRepo.CreateFreightGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create freight group: %w", err)
	}

	cargo := domain.Cargo{
		CargoID:        uuid.NewString(),
		FreightGroupID: group.FreightGroupID,
		Weight:         req.Weight,
		Volume:         req.Volume,
		ShippingCost:   req.ShippingCostEstimate,
		Status:         domain.CargoStatusCreated,
		AuditFields:    audit,
	}
	if err := s.cargoRepo.CreateCargo(ctx, cargo); err != nil {
		return nil, fmt.Errorf("failed to create cargo: %w", err)
	}

	resolvedIDs := make([]string, len(orders))
	for i, order := range orders {
		resolvedIDs[i] = order.OrderID
	}
	if err := s.orderRepo.AssignFreightGroup(ctx, resolvedIDs, group.FreightGroupID, domain.OrderStatusInTransit, creatorUserID); err != nil {
		return nil, fmt.Errorf("failed to assign orders to freight group: %w", err)
	}

	return &dto.CreateCargoResponse{
		CargoID:        cargo.CargoID,
		FreightGroupID: group.FreightGroupID,
		Status:         string(cargo.Status),
	}, nil
}

// Arrive distributes the shipping cost over the group's orders in proportion
// to their merchandise subtotals, then marks the cargo arrived. Each order's
// fee is rounded independently; the aggregate may drift from the shipping
// cost by a cent per order and no remainder is redistributed. Replaying with
// the same cost writes the same fees, so a partial failure is retried safely.
func (s *cargoService) Arrive(ctx context.Context, cargoID string, actualShippingCost *decimal.Decimal, updaterUserID string) (*dto.ArriveCargoResponse, error) {
	cargo, err := s.cargoRepo.FindCargoByID(ctx, cargoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cargo %s: %w", cargoID, err)
	}

	orders, err := s.orderRepo.ListOrdersByFreightGroup(ctx, cargo.FreightGroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders of freight group %s: %w", cargo.FreightGroupID, err)
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("%w: freight group %s has no orders", apperrors.ErrInvalidState, cargo.FreightGroupID)
	}

	shippingCost := decimal.Zero
	switch {
	case actualShippingCost != nil:
		shippingCost = *actualShippingCost
	case cargo.ShippingCost != nil:
		shippingCost = *cargo.ShippingCost
	}

	totalValue := decimal.Zero
	for _, order := range orders {
		totalValue = totalValue.Add(order.Subtotal)
	}

	allocations := make([]dto.OrderStatusResponse, len(orders))
	for i, order := range orders {
		fee := decimal.Zero
		if totalValue.IsPositive() {
			fee = shippingCost.Mul(order.Subtotal).Div(totalValue).Round(2)
		}
		total := order.Subtotal.Add(fee)
		if err := s.orderRepo.UpdateDeliveryFee(ctx, order.OrderID, fee, total, domain.OrderStatusAwaitingDeliveryPayment, updaterUserID); err != nil {
			return nil, fmt.Errorf("failed to allocate delivery fee to order %s: %w", order.OrderID, err)
		}
		allocations[i] = dto.OrderStatusResponse{
			OrderID:     order.OrderID,
			Status:      string(domain.OrderStatusAwaitingDeliveryPayment),
			Purchased:   order.Purchased,
			DeliveryFee: fee,
			Total:       total,
		}
	}

	arrivalDate := time.Now()
	if err := s.cargoRepo.MarkCargoArrived(ctx, cargo.CargoID, shippingCost, arrivalDate, updaterUserID); err != nil {
		return nil, fmt.Errorf("failed to mark cargo %s arrived: %w", cargo.CargoID, err)
	}

	cargo.ShippingCost = &shippingCost
	cargo.Status = domain.CargoStatusArrived
	cargo.ArrivalDate = &arrivalDate

	return &dto.ArriveCargoResponse{
		Cargo:  dto.ToCargoResponse(cargo),
		Orders: allocations,
	}, nil
}

// Tracking returns the read-only projection of an order's fees, status and
// the cargos of its freight group.
func (s *cargoService) Tracking(ctx context.Context, orderID string) (*dto.TrackingResponse, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}

	cargos := []domain.Cargo{}
	if order.FreightGroupID != nil {
		cargos, err = s.cargoRepo.ListCargosByFreightGroup(ctx, *order.FreightGroupID)
		if err != nil {
			return nil, fmt.Errorf("failed to list cargos of freight group %s: %w", *order.FreightGroupID, err)
		}
	}

	return &dto.TrackingResponse{
		OrderID:     order.OrderID,
		Status:      string(order.Status),
		Subtotal:    order.Subtotal,
		DeliveryFee: order.DeliveryFee,
		Total:       order.Total,
		Cargos:      dto.ToListCargoResponse(cargos),
	}, nil
}
