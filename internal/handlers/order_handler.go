package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"crm/internal/models"
	"crm/internal/repositories"
	"crm/internal/services"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
	logger  *zap.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{service: service, logger: logger}
}

// RegisterRoutes registers query routes on the queries router and
// mutation routes on the mutations router.
func (h *OrderHandler) RegisterRoutes(queries, mutations fiber.Router) {
	mutations.Post("/createOrder", h.HandleCreateOrder)
	queries.Get("/orders", h.HandleGetOrders)
	queries.Get("/allOrders", h.HandleListOrders)
}

// HandleCreateOrder creates a new order for a customer over a non-empty
// set of products.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var input models.OrderInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if input.CustomerID == "" {
		return badRequest(c, "customerId is required")
	}

	order, err := h.service.CreateOrder(input)
	if err != nil {
		h.logger.Debug("createOrder rejected",
			zap.String("customer_id", input.CustomerID), zap.Error(err))
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order": order,
	})
}

// HandleGetOrders retrieves all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		h.logger.Error("failed to get orders", zap.Error(err))
		return errorResponse(c, err)
	}
	return c.JSON(orders)
}

// HandleListOrders retrieves the filtered allOrders listing. The order
// reminders job relies on the orderDateGte filter here.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	filter := repositories.OrderFilter{
		CustomerEmail:  c.Query("customerEmail"),
		TotalAmountGte: queryFloat(c, "totalAmountGte"),
		TotalAmountLte: queryFloat(c, "totalAmountLte"),
		OrderDateGte:   queryTime(c, "orderDateGte"),
		OrderDateLte:   queryTime(c, "orderDateLte"),
		OrderBy:        parseOrderBy(c),
		Pagination:     parsePagination(c),
	}

	orders, err := h.service.ListOrders(filter)
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		return errorResponse(c, err)
	}
	return c.JSON(orders)
}
