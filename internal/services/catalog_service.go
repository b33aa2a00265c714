package services

import (
	"errors"
	"log"

	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/internal/validation"
)

// DefaultPageSize applies when a product listing request does not specify a
// page size.
const DefaultPageSize = 20

// Service-level sentinel errors. Store-level sentinels
// (repositories.ErrProductNotFound, repositories.ErrCategoryNotFound) pass
// through unchanged.
var (
	// ErrInvalidCredential means the presented token could not be resolved
	// to a subject.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrForbidden means the subject is valid but lacks the required role.
	ErrForbidden = errors.New("insufficient role")
	// ErrProductDependent means the product is referenced by an order line
	// and cannot be deleted.
	ErrProductDependent = errors.New("product has dependent order lines")
)

// ValidationError carries every violated create-product rule.
type ValidationError struct {
	Errors []validation.FieldError
}

func (e *ValidationError) Error() string {
	return "invalid data"
}

// ProductPage is one page of products plus pagination metadata.
type ProductPage struct {
	Content       []models.Product `json:"content"`
	Number        int              `json:"number"`
	Size          int              `json:"size"`
	TotalElements int64            `json:"totalElements"`
	TotalPages    int              `json:"totalPages"`
}

// EventPublisher publishes catalog change events. A nil publisher disables
// event publication.
type EventPublisher interface {
	PublishProductEvent(action string, product *models.Product) error
}

// CatalogService orchestrates the catalog operations: authorization first
// on writes, then validation, then the store. It holds no state of its own.
type CatalogService struct {
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
	authorizer   Authorizer
	events       EventPublisher
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(categoryRepo repositories.CategoryRepository, productRepo repositories.ProductRepository, authorizer Authorizer, events EventPublisher) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		authorizer:   authorizer,
		events:       events,
	}
}

// GetCategories retrieves all categories. No credential required.
func (s *CatalogService) GetCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// ListProducts retrieves one page of products, optionally filtered by a
// case-insensitive substring match on name. Pages are zero-indexed; a page
// past the end returns an empty content list, not an error.
func (s *CatalogService) ListProducts(name string, page, size int) (*ProductPage, error) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 0 {
		page = 0
	}

	products, total, err := s.productRepo.List(name, page, size)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}

	totalPages := int(total) / size
	if int(total)%size != 0 {
		totalPages++
	}

	return &ProductPage{
		Content:       products,
		Number:        page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// GetProduct retrieves a single product with its categories resolved.
func (s *CatalogService) GetProduct(id uint) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// CreateProduct inserts a new product. Authorization runs before validation,
// so an unauthorized caller never learns whether the payload was valid.
func (s *CatalogService) CreateProduct(token string, input models.ProductInput) (*models.Product, error) {
	switch s.authorizer.Authorize(token, models.RoleAdmin) {
	case InvalidCredential:
		return nil, ErrInvalidCredential
	case Denied:
		return nil, ErrForbidden
	}

	if fieldErrors := validation.ValidateProduct(input); fieldErrors != nil {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	product := &models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImgURL:      input.ImgURL,
	}
	created, err := s.productRepo.Create(product, input.CategoryIDs())
	if err != nil {
		return nil, err
	}

	s.publish("product.created", created)
	return created, nil
}

// DeleteProduct removes a product. Store outcomes map 1:1 to service errors.
func (s *CatalogService) DeleteProduct(token string, id uint) error {
	switch s.authorizer.Authorize(token, models.RoleAdmin) {
	case InvalidCredential:
		return ErrInvalidCredential
	case Denied:
		return ErrForbidden
	}

	outcome, err := s.productRepo.Delete(id)
	if err != nil {
		return err
	}
	switch outcome {
	case repositories.DeleteNotFound:
		return repositories.ErrProductNotFound
	case repositories.DeleteDependent:
		return ErrProductDependent
	}

	s.publish("product.deleted", &models.Product{ID: id})
	return nil
}

// publish emits a catalog event. Publication is best-effort: failures are
// logged and never fail the operation that triggered them.
func (s *CatalogService) publish(action string, product *models.Product) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishProductEvent(action, product); err != nil {
		log.Printf("Warning: failed to publish %s event for product %d: %v", action, product.ID, err)
	}
}
