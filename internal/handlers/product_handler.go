package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"crm/internal/models"
	"crm/internal/repositories"
	"crm/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{service: service, logger: logger}
}

// RegisterRoutes registers query routes on the queries router and
// mutation routes on the mutations router.
func (h *ProductHandler) RegisterRoutes(queries, mutations fiber.Router) {
	mutations.Post("/createProduct", h.HandleCreateProduct)
	mutations.Post("/updateLowStockProducts", h.HandleUpdateLowStockProducts)
	queries.Get("/products", h.HandleGetProducts)
	queries.Get("/allProducts", h.HandleListProducts)
}

// HandleCreateProduct creates a single product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if input.Name == "" {
		return badRequest(c, "Name is required")
	}

	product, err := h.service.CreateProduct(input)
	if err != nil {
		h.logger.Debug("createProduct rejected", zap.String("name", input.Name), zap.Error(err))
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"product": product,
	})
}

// HandleUpdateLowStockProducts restocks every low-stock product and
// reports the updated rows.
func (h *ProductHandler) HandleUpdateLowStockProducts(c *fiber.Ctx) error {
	updated, message, err := h.service.UpdateLowStockProducts()
	if err != nil {
		h.logger.Error("updateLowStockProducts failed", zap.Error(err))
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"updatedProducts": updated,
		"message":         message,
	})
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		h.logger.Error("failed to get products", zap.Error(err))
		return errorResponse(c, err)
	}
	return c.JSON(products)
}

// HandleListProducts retrieves the filtered allProducts listing.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	filter := repositories.ProductFilter{
		NameContains: c.Query("nameContains"),
		PriceGte:     queryFloat(c, "priceGte"),
		PriceLte:     queryFloat(c, "priceLte"),
		StockGte:     queryInt(c, "stockGte"),
		StockLte:     queryInt(c, "stockLte"),
		OrderBy:      parseOrderBy(c),
		Pagination:   parsePagination(c),
	}

	products, err := h.service.ListProducts(filter)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		return errorResponse(c, err)
	}
	return c.JSON(products)
}
