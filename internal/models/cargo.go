package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FreightGroup is the freight_groups table row.
type FreightGroup struct {
	FreightGroupID string `db:"freight_group_id"`
	Status         string `db:"status"`
	AuditFields
}

// Cargo is the cargos table row.
type Cargo struct {
	CargoID        string           `db:"cargo_id"`
	FreightGroupID string           `db:"freight_group_id"`
	Weight         *decimal.Decimal `db:"weight"`
	Volume         *decimal.Decimal `db:"volume"`
	ShippingCost   *decimal.Decimal `db:"shipping_cost"`
	Status         string           `db:"status"`
	ArrivalDate    *time.Time       `db:"arrival_date"`
	AuditFields
}
