package repositories

import (
	"catalogo/internal/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	// GetAll returns all categories in id order.
	GetAll() ([]models.Category, error)
}
