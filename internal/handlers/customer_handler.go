package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"crm/internal/models"
	"crm/internal/repositories"
	"crm/internal/services"
)

// CustomerHandler handles HTTP requests for customers.
type CustomerHandler struct {
	service *services.CustomerService
	logger  *zap.Logger
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(service *services.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{service: service, logger: logger}
}

// RegisterRoutes registers query routes on the queries router and
// mutation routes on the mutations router, which may carry the auth
// middleware.
func (h *CustomerHandler) RegisterRoutes(queries, mutations fiber.Router) {
	mutations.Post("/createCustomer", h.HandleCreateCustomer)
	mutations.Post("/bulkCreateCustomers", h.HandleBulkCreateCustomers)
	queries.Get("/customers", h.HandleGetCustomers)
	queries.Get("/allCustomers", h.HandleListCustomers)
}

// HandleCreateCustomer creates a single customer.
func (h *CustomerHandler) HandleCreateCustomer(c *fiber.Ctx) error {
	var input models.CustomerInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "Invalid request body")
	}

	customer, message, err := h.service.CreateCustomer(input)
	if err != nil {
		h.logger.Debug("createCustomer rejected", zap.String("email", input.Email), zap.Error(err))
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"customer": customer,
		"message":  message,
	})
}

// bulkCreateCustomersRequest is the wire shape of the batch mutation.
type bulkCreateCustomersRequest struct {
	Customers []models.CustomerInput `json:"customers"`
}

// HandleBulkCreateCustomers creates customers in batch. Entries fail
// independently; the response carries created records and error strings
// side by side and is always a 200.
func (h *CustomerHandler) HandleBulkCreateCustomers(c *fiber.Ctx) error {
	var req bulkCreateCustomersRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	created, errs := h.service.BulkCreateCustomers(req.Customers)
	return c.JSON(fiber.Map{
		"customers": created,
		"errors":    errs,
	})
}

// HandleGetCustomers retrieves all customers.
func (h *CustomerHandler) HandleGetCustomers(c *fiber.Ctx) error {
	customers, err := h.service.GetAllCustomers()
	if err != nil {
		h.logger.Error("failed to get customers", zap.Error(err))
		return errorResponse(c, err)
	}
	return c.JSON(customers)
}

// HandleListCustomers retrieves the filtered allCustomers listing.
func (h *CustomerHandler) HandleListCustomers(c *fiber.Ctx) error {
	filter := repositories.CustomerFilter{
		NameContains:  c.Query("nameContains"),
		EmailContains: c.Query("emailContains"),
		CreatedAtGte:  queryTime(c, "createdAtGte"),
		CreatedAtLte:  queryTime(c, "createdAtLte"),
		OrderBy:       parseOrderBy(c),
		Pagination:    parsePagination(c),
	}

	customers, err := h.service.ListCustomers(filter)
	if err != nil {
		h.logger.Error("failed to list customers", zap.Error(err))
		return errorResponse(c, err)
	}
	return c.JSON(customers)
}
