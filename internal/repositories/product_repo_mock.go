package repositories

import (
	"sort"
	"strings"
	"sync"

	"catalogo/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It carries its own category table so creates can resolve references
// without a database.
type MockProductRepository struct {
	products   map[uint]models.Product
	categories map[uint]models.Category
	dependents map[uint]bool
	nextID     uint
	mu         sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products:   make(map[uint]models.Product),
		categories: make(map[uint]models.Category),
		dependents: make(map[uint]bool),
		nextID:     1,
	}
}

// SeedCategory registers a category the mock can resolve references against.
func (r *MockProductRepository) SeedCategory(category models.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[category.ID] = category
}

// MarkDependent flags a product as referenced by an order line, so deletes
// report DeleteDependent.
func (r *MockProductRepository) MarkDependent(id uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dependents[id] = true
}

// GetByID returns a product by its id.
func (r *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// List returns one zero-indexed page of products in id order plus the total
// count matching the filter.
func (r *MockProductRepository) List(name string, page, size int) ([]models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if page < 0 {
		page = 0
	}

	filter := strings.ToLower(name)
	matched := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if filter == "" || strings.Contains(strings.ToLower(p.Name), filter) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	start := page * size
	if start >= len(matched) {
		return []models.Product{}, total, nil
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// Create adds a new product, resolving category references against the
// seeded categories.
func (r *MockProductRepository) Create(product *models.Product, categoryIDs []uint) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	resolved := make([]models.Category, 0, len(categoryIDs))
	seen := make(map[uint]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		category, ok := r.categories[id]
		if !ok {
			return nil, ErrCategoryNotFound
		}
		resolved = append(resolved, category)
	}

	product.ID = r.nextID
	r.nextID++
	product.Categories = resolved
	r.products[product.ID] = *product
	return product, nil
}

// Delete removes a product unless it is flagged as dependent.
func (r *MockProductRepository) Delete(id uint) (DeleteOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.dependents[id] {
		return DeleteDependent, nil
	}
	if _, ok := r.products[id]; !ok {
		return DeleteNotFound, nil
	}
	delete(r.products, id)
	return Deleted, nil
}
