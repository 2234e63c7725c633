package mapping

import (
	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	"github.com/BekhzodS/china_shop_app/internal/models"
)

// ToModelOrder converts a domain Order to a model Order
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:        d.OrderID,
		UserID:         d.UserID,
		FreightGroupID: d.FreightGroupID,
		Subtotal:       d.Subtotal,
		DeliveryFee:    d.DeliveryFee,
		Total:          d.Total,
		Status:         string(d.Status),
		Purchased:      d.Purchased,
		PurchasedAt:    d.PurchasedAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrder converts a model Order to a domain Order
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:        m.OrderID,
		UserID:         m.UserID,
		FreightGroupID: m.FreightGroupID,
		Subtotal:       m.Subtotal,
		DeliveryFee:    m.DeliveryFee,
		Total:          m.Total,
		Status:         domain.OrderStatus(m.Status),
		Purchased:      m.Purchased,
		PurchasedAt:    m.PurchasedAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOrderSlice converts a slice of model Orders to domain Orders
func ToDomainOrderSlice(ms []models.Order) []domain.Order {
	ds := make([]domain.Order, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrder(m)
	}
	return ds
}

// ToModelOrderLine converts a domain OrderLine to a model OrderLine
func ToModelOrderLine(d domain.OrderLine) models.OrderLine {
	return models.OrderLine{
		OrderLineID:          d.OrderLineID,
		OrderID:              d.OrderID,
		ProductID:            d.ProductID,
		ProductName:          d.ProductName,
		VariantSelector:      d.VariantSelector,
		Quantity:             d.Quantity,
		FinalPriceAtPurchase: d.FinalPriceAtPurchase,
	}
}

// ToDomainOrderLine converts a model OrderLine to a domain OrderLine
func ToDomainOrderLine(m models.OrderLine) domain.OrderLine {
	return domain.OrderLine{
		OrderLineID:          m.OrderLineID,
		OrderID:              m.OrderID,
		ProductID:            m.ProductID,
		ProductName:          m.ProductName,
		VariantSelector:      m.VariantSelector,
		Quantity:             m.Quantity,
		FinalPriceAtPurchase: m.FinalPriceAtPurchase,
	}
}
