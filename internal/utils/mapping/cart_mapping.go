package mapping

import (
	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	"github.com/BekhzodS/china_shop_app/internal/models"
)

// ToModelCart converts a domain Cart to a model Cart
func ToModelCart(d domain.Cart) models.Cart {
	return models.Cart{
		CartID:      d.CartID,
		UserID:      d.UserID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCart converts a model Cart to a domain Cart
func ToDomainCart(m models.Cart) domain.Cart {
	return domain.Cart{
		CartID:      m.CartID,
		UserID:      m.UserID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCartLine converts a domain CartLine to a model CartLine
func ToModelCartLine(d domain.CartLine) models.CartLine {
	return models.CartLine{
		CartLineID:      d.CartLineID,
		CartID:          d.CartID,
		ProductID:       d.ProductID,
		ProductName:     d.ProductName,
		ProductImageURL: d.ProductImageURL,
		VariantSelector: d.VariantSelector,
		Quantity:        d.Quantity,
		SnapshotID:      d.SnapshotID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCartLine converts a model CartLine to a domain CartLine
func ToDomainCartLine(m models.CartLine) domain.CartLine {
	return domain.CartLine{
		CartLineID:      m.CartLineID,
		CartID:          m.CartID,
		ProductID:       m.ProductID,
		ProductName:     m.ProductName,
		ProductImageURL: m.ProductImageURL,
		VariantSelector: m.VariantSelector,
		Quantity:        m.Quantity,
		SnapshotID:      m.SnapshotID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
