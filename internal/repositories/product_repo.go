package repositories

import (
	"errors"

	"catalogo/internal/models"
)

// Sentinel errors shared by all repository implementations.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("referenced category not found")
)

// DeleteOutcome is the result of a product delete. The dependency check and
// the delete happen atomically in the store, so the outcome reflects a
// consistent snapshot.
type DeleteOutcome int

const (
	// Deleted means the product existed, had no dependents and was removed.
	Deleted DeleteOutcome = iota
	// DeleteNotFound means no product with the given id exists.
	DeleteNotFound
	// DeleteDependent means the product is referenced by an order line and
	// was left untouched.
	DeleteDependent
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetByID returns the product with its categories resolved, or
	// ErrProductNotFound.
	GetByID(id uint) (*models.Product, error)
	// List returns one zero-indexed page of products ordered by id, plus the
	// total count of products matching the filter. A non-empty name filters
	// by case-insensitive substring match.
	List(name string, page, size int) ([]models.Product, int64, error)
	// Create inserts the product and links it to the categories with the
	// given ids. Returns ErrCategoryNotFound if any id is unknown; on
	// success the returned product has its id assigned and categories
	// resolved.
	Create(product *models.Product, categoryIDs []uint) (*models.Product, error)
	// Delete removes the product unless an order line references it. The
	// error return is reserved for store failures.
	Delete(id uint) (DeleteOutcome, error)
}
