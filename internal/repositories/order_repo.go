package repositories

import (
	"catalogo/internal/models"
)

// OrderRepository defines the interface for order data access. The catalog
// only creates orders when seeding and consults them as the source of
// product dependencies.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	// ExistsForProduct reports whether any order line references the product.
	ExistsForProduct(productID uint) (bool, error)
}
