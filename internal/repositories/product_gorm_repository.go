package repositories

import (
	"errors"
	"fmt"
	"strings"

	"catalogo/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetByID retrieves a single product with its categories from the database.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Categories").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

// List retrieves one page of products ordered by id, filtered by a
// case-insensitive substring match on name when the filter is non-empty.
func (r *GORMProductRepository) List(name string, page, size int) ([]models.Product, int64, error) {
	if page < 0 {
		page = 0
	}

	query := r.db.Model(&models.Product{})
	if name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	err := query.Preload("Categories").
		Order("id").
		Limit(size).
		Offset(page * size).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// Create inserts a product and its category links in one transaction. Every
// referenced category id must already exist.
func (r *GORMProductRepository) Create(product *models.Product, categoryIDs []uint) (*models.Product, error) {
	ids := dedupeIDs(categoryIDs)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var categories []models.Category
		if err := tx.Where("id IN ?", ids).Order("id").Find(&categories).Error; err != nil {
			return fmt.Errorf("failed to resolve categories: %w", err)
		}
		if len(categories) != len(ids) {
			return ErrCategoryNotFound
		}

		product.Categories = categories
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product after verifying no order line references it. The
// check and the delete share one transaction so a concurrently inserted
// dependency cannot slip between them.
func (r *GORMProductRepository) Delete(id uint) (DeleteOutcome, error) {
	outcome := Deleted
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var dependents int64
		if err := tx.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&dependents).Error; err != nil {
			return fmt.Errorf("failed to check product dependents: %w", err)
		}
		if dependents > 0 {
			outcome = DeleteDependent
			return nil
		}

		if err := tx.Exec("DELETE FROM product_categories WHERE product_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to unlink product categories: %w", err)
		}

		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			outcome = DeleteNotFound
		}
		return nil
	})
	if err != nil {
		return Deleted, err
	}
	return outcome, nil
}

// dedupeIDs removes duplicate ids while keeping the first occurrence order.
func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
