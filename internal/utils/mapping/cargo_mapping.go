package mapping

import (
	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	"github.com/BekhzodS/china_shop_app/internal/models"
)

// ToModelFreightGroup converts a domain FreightGroup to a model FreightGroup
func ToModelFreightGroup(d domain.FreightGroup) models.FreightGroup {
	return models.FreightGroup{
		FreightGroupID: d.FreightGroupID,
		Status:         string(d.Status),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFreightGroup converts a model FreightGroup to a domain FreightGroup
func ToDomainFreightGroup(m models.FreightGroup) domain.FreightGroup {
	return domain.FreightGroup{
		FreightGroupID: m.FreightGroupID,
		Status:         domain.FreightGroupStatus(m.Status),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCargo converts a domain Cargo to a model Cargo
func ToModelCargo(d domain.Cargo) models.Cargo {
	return models.Cargo{
		CargoID:        d.CargoID,
		FreightGroupID: d.FreightGroupID,
		Weight:         d.Weight,
		Volume:         d.Volume,
		ShippingCost:   d.ShippingCost,
		Status:         string(d.Status),
		ArrivalDate:    d.ArrivalDate,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCargo converts a model Cargo to a domain Cargo
func ToDomainCargo(m models.Cargo) domain.Cargo {
	return domain.Cargo{
		CargoID:        m.CargoID,
		FreightGroupID: m.FreightGroupID,
		Weight:         m.Weight,
		Volume:         m.Volume,
		ShippingCost:   m.ShippingCost,
		Status:         domain.CargoStatus(m.Status),
		ArrivalDate:    m.ArrivalDate,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCargoSlice converts a slice of model Cargos to domain Cargos
func ToDomainCargoSlice(ms []models.Cargo) []domain.Cargo {
	ds := make([]domain.Cargo, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCargo(m)
	}
	return ds
}
