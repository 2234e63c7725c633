package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FreightGroupStatus enumerates the freight group lifecycle.
type FreightGroupStatus string

const (
	FreightGroupStatusOpen   FreightGroupStatus = "OPEN"
	FreightGroupStatusClosed FreightGroupStatus = "CLOSED"
)

// FreightGroup bundles orders that ship together. An order joins exactly one
// group, at group-creation time, for its whole lifetime.
type FreightGroup struct {
	FreightGroupID string             `json:"freightGroupID"` // Primary Key (UUID)
	Status         FreightGroupStatus `json:"status"`
	AuditFields
}

// CargoStatus enumerates the cargo lifecycle.
type CargoStatus string

const (
	CargoStatusCreated CargoStatus = "CREATED"
	CargoStatusArrived CargoStatus = "ARRIVED"
)

// Cargo is a physical freight shipment under a freight group. A group may
// have more than one cargo; allocation always runs against the orders of the
// cargo's group.
type Cargo struct {
	CargoID        string           `json:"cargoID"`        // Primary Key (UUID)
	FreightGroupID string           `json:"freightGroupID"` // FK -> FreightGroup.freightGroupID
	Weight         *decimal.Decimal `json:"weight,omitempty"`
	Volume         *decimal.Decimal `json:"volume,omitempty"`
	ShippingCost   *decimal.Decimal `json:"shippingCost,omitempty"`
	Status         CargoStatus      `json:"status"`
	ArrivalDate    *time.Time       `json:"arrivalDate,omitempty"`
	AuditFields
}
