package services_test

import (
	"errors"
	"testing"

	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCategoryRepository is a mock implementation of repositories.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetAll() ([]models.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) List(name string, page, size int) ([]models.Product, int64, error) {
	args := m.Called(name, page, size)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Create(product *models.Product, categoryIDs []uint) (*models.Product, error) {
	args := m.Called(product, categoryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(id uint) (repositories.DeleteOutcome, error) {
	args := m.Called(id)
	return args.Get(0).(repositories.DeleteOutcome), args.Error(1)
}

// MockAuthorizer is a mock implementation of services.Authorizer
type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) Authorize(token, requiredRole string) services.Decision {
	args := m.Called(token, requiredRole)
	return args.Get(0).(services.Decision)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishProductEvent(action string, product *models.Product) error {
	args := m.Called(action, product)
	return args.Error(0)
}

func newCatalogService() (*services.CatalogService, *MockCategoryRepository, *MockProductRepository, *MockAuthorizer, *MockEventPublisher) {
	categoryRepo := new(MockCategoryRepository)
	productRepo := new(MockProductRepository)
	authorizer := new(MockAuthorizer)
	events := new(MockEventPublisher)
	service := services.NewCatalogService(categoryRepo, productRepo, authorizer, events)
	return service, categoryRepo, productRepo, authorizer, events
}

func validProductInput() models.ProductInput {
	return models.ProductInput{
		Name:        "Novo Produto",
		Description: "Uma descrição suficientemente longa",
		Price:       100.0,
		ImgURL:      "https://example.com/img/1-big.jpg",
		Categories:  []models.CategoryRef{{ID: 2}, {ID: 3}},
	}
}

func TestCatalogService_GetCategories(t *testing.T) {
	service, categoryRepo, _, _, _ := newCatalogService()

	expected := []models.Category{
		{ID: 1, Name: "Livros"},
		{ID: 2, Name: "Eletrônicos"},
		{ID: 3, Name: "Computadores"},
	}
	categoryRepo.On("GetAll").Return(expected, nil).Once()

	categories, err := service.GetCategories()
	assert.NoError(t, err)
	assert.Equal(t, expected, categories)
	categoryRepo.AssertExpectations(t)
}

func TestCatalogService_ListProducts(t *testing.T) {
	service, _, productRepo, _, _ := newCatalogService()

	content := []models.Product{
		{ID: 1, Name: "The Lord of the Rings"},
		{ID: 2, Name: "Smart TV"},
	}
	productRepo.On("List", "", 0, 20).Return(content, int64(25), nil).Once()

	page, err := service.ListProducts("", 0, 0) // size 0 falls back to the default
	assert.NoError(t, err)
	assert.Equal(t, content, page.Content)
	assert.Equal(t, 0, page.Number)
	assert.Equal(t, 20, page.Size)
	assert.Equal(t, int64(25), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	productRepo.AssertExpectations(t)
}

func TestCatalogService_ListProducts_OutOfRangePage(t *testing.T) {
	service, _, productRepo, _, _ := newCatalogService()

	productRepo.On("List", "", 7, 20).Return([]models.Product{}, int64(25), nil).Once()

	page, err := service.ListProducts("", 7, 20)
	assert.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.NotNil(t, page.Content)
	assert.Equal(t, int64(25), page.TotalElements)
	productRepo.AssertExpectations(t)
}

func TestCatalogService_ListProducts_ExactPageBoundary(t *testing.T) {
	service, _, productRepo, _, _ := newCatalogService()

	productRepo.On("List", "pc", 0, 10).Return(make([]models.Product, 10), int64(20), nil).Once()

	page, err := service.ListProducts("pc", 0, 10)
	assert.NoError(t, err)
	assert.Equal(t, 2, page.TotalPages)
	productRepo.AssertExpectations(t)
}

func TestCatalogService_GetProduct(t *testing.T) {
	service, _, productRepo, _, _ := newCatalogService()

	expected := &models.Product{
		ID:    2,
		Name:  "Smart TV",
		Price: 2190.0,
		Categories: []models.Category{
			{ID: 2, Name: "Eletrônicos"},
			{ID: 3, Name: "Computadores"},
		},
	}
	productRepo.On("GetByID", uint(2)).Return(expected, nil).Once()

	product, err := service.GetProduct(2)
	assert.NoError(t, err)
	assert.Equal(t, expected, product)

	productRepo.On("GetByID", uint(30)).Return(nil, repositories.ErrProductNotFound).Once()
	product, err = service.GetProduct(30)
	assert.Nil(t, product)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	productRepo.AssertExpectations(t)
}

func TestCatalogService_CreateProduct(t *testing.T) {
	service, _, productRepo, authorizer, events := newCatalogService()

	authorizer.On("Authorize", "admin-token", models.RoleAdmin).Return(services.Permitted).Once()
	productRepo.On("Create", mock.AnythingOfType("*models.Product"), []uint{2, 3}).
		Return(&models.Product{ID: 26, Name: "Novo Produto", Price: 100.0}, nil).Once()
	events.On("PublishProductEvent", "product.created", mock.AnythingOfType("*models.Product")).Return(nil).Once()

	product, err := service.CreateProduct("admin-token", validProductInput())
	assert.NoError(t, err)
	assert.Equal(t, uint(26), product.ID)
	authorizer.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCatalogService_CreateProduct_AuthBeforeValidation(t *testing.T) {
	service, _, productRepo, authorizer, _ := newCatalogService()

	// An invalid token wins over an invalid payload: the caller sees the
	// credential failure and nothing reaches validation or the store.
	invalid := models.ProductInput{Name: "ab", Price: -1}

	authorizer.On("Authorize", "bad-token", models.RoleAdmin).Return(services.InvalidCredential).Once()
	_, err := service.CreateProduct("bad-token", invalid)
	assert.ErrorIs(t, err, services.ErrInvalidCredential)

	authorizer.On("Authorize", "client-token", models.RoleAdmin).Return(services.Denied).Once()
	_, err = service.CreateProduct("client-token", invalid)
	assert.ErrorIs(t, err, services.ErrForbidden)

	authorizer.AssertExpectations(t)
	productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogService_CreateProduct_ValidationFailure(t *testing.T) {
	service, _, productRepo, authorizer, _ := newCatalogService()

	authorizer.On("Authorize", "admin-token", models.RoleAdmin).Return(services.Permitted).Once()

	input := validProductInput()
	input.Price = 0
	input.Categories = nil

	_, err := service.CreateProduct("admin-token", input)
	var validationErr *services.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Errors, 2)
	assert.Equal(t, "price", validationErr.Errors[0].FieldName)
	assert.Equal(t, "categories", validationErr.Errors[1].FieldName)
	productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogService_CreateProduct_UnknownCategory(t *testing.T) {
	service, _, productRepo, authorizer, events := newCatalogService()

	authorizer.On("Authorize", "admin-token", models.RoleAdmin).Return(services.Permitted).Once()
	productRepo.On("Create", mock.AnythingOfType("*models.Product"), mock.Anything).
		Return(nil, repositories.ErrCategoryNotFound).Once()

	_, err := service.CreateProduct("admin-token", validProductInput())
	assert.ErrorIs(t, err, repositories.ErrCategoryNotFound)
	events.AssertNotCalled(t, "PublishProductEvent", mock.Anything, mock.Anything)
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	service, _, productRepo, authorizer, events := newCatalogService()

	authorizer.On("Authorize", "admin-token", models.RoleAdmin).Return(services.Permitted)

	productRepo.On("Delete", uint(25)).Return(repositories.Deleted, nil).Once()
	events.On("PublishProductEvent", "product.deleted", mock.AnythingOfType("*models.Product")).Return(nil).Once()
	assert.NoError(t, service.DeleteProduct("admin-token", 25))

	productRepo.On("Delete", uint(30)).Return(repositories.DeleteNotFound, nil).Once()
	assert.ErrorIs(t, service.DeleteProduct("admin-token", 30), repositories.ErrProductNotFound)

	productRepo.On("Delete", uint(1)).Return(repositories.DeleteDependent, nil).Once()
	assert.ErrorIs(t, service.DeleteProduct("admin-token", 1), services.ErrProductDependent)

	productRepo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCatalogService_DeleteProduct_Unauthorized(t *testing.T) {
	service, _, productRepo, authorizer, _ := newCatalogService()

	authorizer.On("Authorize", "bad-token", models.RoleAdmin).Return(services.InvalidCredential).Once()
	assert.ErrorIs(t, service.DeleteProduct("bad-token", 25), services.ErrInvalidCredential)

	authorizer.On("Authorize", "client-token", models.RoleAdmin).Return(services.Denied).Once()
	assert.ErrorIs(t, service.DeleteProduct("client-token", 25), services.ErrForbidden)

	productRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestCatalogService_DeleteProduct_StoreFailure(t *testing.T) {
	service, _, productRepo, authorizer, _ := newCatalogService()

	authorizer.On("Authorize", "admin-token", models.RoleAdmin).Return(services.Permitted).Once()
	productRepo.On("Delete", uint(25)).Return(repositories.Deleted, errors.New("store unavailable")).Once()

	err := service.DeleteProduct("admin-token", 25)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repositories.ErrProductNotFound)
	assert.NotErrorIs(t, err, services.ErrProductDependent)
}
