package handlers

import (
	"errors"
	"log"

	"catalogo/internal/middleware"
	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles HTTP requests for categories and products.
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service: service,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/categories", h.HandleGetCategories)

	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetCategories returns all categories. No credential required.
func (h *CatalogHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetCategories()
	if err != nil {
		log.Printf("Error getting categories: %v", err)
		return serverError(c)
	}
	return c.JSON(categories)
}

// HandleGetProducts returns one page of products, optionally filtered by
// name. No credential required.
func (h *CatalogHandler) HandleGetProducts(c *fiber.Ctx) error {
	name := c.Query("name")
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", 0)

	productPage, err := h.service.ListProducts(name, page, size)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return serverError(c)
	}
	return c.JSON(productPage)
}

// HandleGetProductByID returns a single product with its categories.
func (h *CatalogHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c)
	}

	product, err := h.service.GetProduct(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return notFound(c)
		}
		log.Printf("Error getting product %d: %v", id, err)
		return serverError(c)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product. Requires an ADMIN bearer token; the
// authorization check runs before validation, so an invalid token yields 401
// even for an invalid payload.
func (h *CatalogHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Invalid request body",
			"status": fiber.StatusBadRequest,
		})
	}

	product, err := h.service.CreateProduct(middleware.TokenFromContext(c), input)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.Is(err, services.ErrInvalidCredential):
			return unauthorized(c)
		case errors.Is(err, services.ErrForbidden):
			return forbidden(c)
		case errors.As(err, &validationErr):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  "Invalid data",
				"status": fiber.StatusUnprocessableEntity,
				"errors": validationErr.Errors,
			})
		case errors.Is(err, repositories.ErrCategoryNotFound):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  "Referenced category not found",
				"status": fiber.StatusUnprocessableEntity,
			})
		}
		log.Printf("Error creating product: %v", err)
		return serverError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleDeleteProduct deletes a product. Requires an ADMIN bearer token.
func (h *CatalogHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c)
	}

	if err := h.service.DeleteProduct(middleware.TokenFromContext(c), uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredential):
			return unauthorized(c)
		case errors.Is(err, services.ErrForbidden):
			return forbidden(c)
		case errors.Is(err, repositories.ErrProductNotFound):
			return notFound(c)
		case errors.Is(err, services.ErrProductDependent):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "Referential integrity violation",
				"status": fiber.StatusBadRequest,
			})
		}
		log.Printf("Error deleting product %d: %v", id, err)
		return serverError(c)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":  "Resource not found",
		"status": fiber.StatusNotFound,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":  "Invalid or expired token",
		"status": fiber.StatusUnauthorized,
	})
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error":  "Access denied",
		"status": fiber.StatusForbidden,
	})
}

func serverError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":  "Internal server error",
		"status": fiber.StatusInternalServerError,
	})
}
