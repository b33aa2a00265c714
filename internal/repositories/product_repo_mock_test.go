package repositories_test

import (
	"testing"

	"catalogo/internal/models"
	"catalogo/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The in-memory repository honors the same contract as the GORM one, so
// either can back the catalog service.
func TestMockProductRepository_Contract(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	repo.SeedCategory(models.Category{ID: 1, Name: "Livros"})
	repo.SeedCategory(models.Category{ID: 2, Name: "Eletrônicos"})

	first, err := repo.Create(&models.Product{
		Name:        "Smart TV",
		Description: "A very large television set",
		Price:       2190.0,
	}, []uint{1, 2})
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.ID)
	assert.Len(t, first.Categories, 2)

	second, err := repo.Create(&models.Product{
		Name:        "Macbook Pro",
		Description: "A laptop for professionals",
		Price:       1250.0,
	}, []uint{2})
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.ID)

	// Unknown category references fail the insert.
	_, err = repo.Create(&models.Product{Name: "Bad", Description: "Bad product", Price: 1}, []uint{99})
	assert.ErrorIs(t, err, repositories.ErrCategoryNotFound)

	// Case-insensitive filter and pagination.
	products, total, err := repo.List("macbook", 0, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Macbook Pro", products[0].Name)

	products, total, err = repo.List("", 5, 20)
	assert.NoError(t, err)
	assert.Empty(t, products)
	assert.Equal(t, int64(2), total)

	// Delete outcomes.
	repo.MarkDependent(first.ID)
	outcome, err := repo.Delete(first.ID)
	assert.NoError(t, err)
	assert.Equal(t, repositories.DeleteDependent, outcome)

	outcome, err = repo.Delete(second.ID)
	assert.NoError(t, err)
	assert.Equal(t, repositories.Deleted, outcome)

	outcome, err = repo.Delete(second.ID)
	assert.NoError(t, err)
	assert.Equal(t, repositories.DeleteNotFound, outcome)
}

func TestMockCategoryRepository(t *testing.T) {
	repo := repositories.NewMockCategoryRepository()
	repo.Seed(models.Category{ID: 3, Name: "Computadores"})
	repo.Seed(models.Category{ID: 1, Name: "Livros"})

	categories, err := repo.GetAll()
	assert.NoError(t, err)
	require.Len(t, categories, 2)
	// Stable id order regardless of seed order.
	assert.Equal(t, uint(1), categories[0].ID)
	assert.Equal(t, uint(3), categories[1].ID)
}
