package dto

import (
	"time"

	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCargoRequest groups orders into a freight unit.
type CreateCargoRequest struct {
	OrderIDs             []string         `json:"orderIDs" binding:"required,min=1"`
	ShippingCostEstimate *decimal.Decimal `json:"shippingCostEstimate,omitempty"`
	Weight               *decimal.Decimal `json:"weight,omitempty"`
	Volume               *decimal.Decimal `json:"volume,omitempty"`
}

// CreateCargoResponse is the result of cargo creation.
type CreateCargoResponse struct {
	CargoID        string `json:"cargoID"`
	FreightGroupID string `json:"freightGroupID"`
	Status         string `json:"status"`
}

// ArriveCargoRequest marks a cargo as arrived. ActualShippingCost overrides
// the estimate recorded at creation; when both are absent the cost is 0.
type ArriveCargoRequest struct {
	ActualShippingCost *decimal.Decimal `json:"actualShippingCost,omitempty"`
}

// CargoResponse defines the data returned for a cargo.
type CargoResponse struct {
	CargoID        string           `json:"cargoID"`
	FreightGroupID string           `json:"freightGroupID"`
	Weight         *decimal.Decimal `json:"weight,omitempty"`
	Volume         *decimal.Decimal `json:"volume,omitempty"`
	ShippingCost   *decimal.Decimal `json:"shippingCost,omitempty"`
	Status         string           `json:"status"`
	ArrivalDate    *time.Time       `json:"arrivalDate,omitempty"`
}

// ToCargoResponse converts a domain.Cargo to CargoResponse
func ToCargoResponse(c *domain.Cargo) CargoResponse {
	return CargoResponse{
		CargoID:        c.CargoID,
		FreightGroupID: c.FreightGroupID,
		Weight:         c.Weight,
		Volume:         c.Volume,
		ShippingCost:   c.ShippingCost,
		Status:         string(c.Status),
		ArrivalDate:    c.ArrivalDate,
	}
}

// ToListCargoResponse converts a slice of domain.Cargo to DTOs
func ToListCargoResponse(cargos []domain.Cargo) []CargoResponse {
	res := make([]CargoResponse, len(cargos))
	for i, c := range cargos {
		res[i] = ToCargoResponse(&c)
	}
	return res
}

// ArriveCargoResponse reports the arrival outcome: the updated cargo and
// the per-order delivery fee allocation.
type ArriveCargoResponse struct {
	Cargo  CargoResponse         `json:"cargo"`
	Orders []OrderStatusResponse `json:"orders"`
}

// TrackingResponse is the read-only tracking projection for an order.
type TrackingResponse struct {
	OrderID     string          `json:"orderID"`
	Status      string          `json:"status"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Total       decimal.Decimal `json:"total"`
	Cargos      []CargoResponse `json:"cargos"`
}
