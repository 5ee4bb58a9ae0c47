package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"crm/internal/services"
)

// ReportHandler exposes the scalar aggregate queries consumed by the
// CRM report job.
type ReportHandler struct {
	service *services.ReportService
	logger  *zap.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *services.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{service: service, logger: logger}
}

// RegisterRoutes registers the aggregate query routes.
func (h *ReportHandler) RegisterRoutes(queries fiber.Router) {
	queries.Get("/totalCustomers", h.HandleTotalCustomers)
	queries.Get("/totalOrders", h.HandleTotalOrders)
	queries.Get("/totalRevenue", h.HandleTotalRevenue)
}

// HandleTotalCustomers returns the total customer count.
func (h *ReportHandler) HandleTotalCustomers(c *fiber.Ctx) error {
	count, err := h.service.TotalCustomers()
	if err != nil {
		h.logger.Error("failed to count customers", zap.Error(err))
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"totalCustomers": count})
}

// HandleTotalOrders returns the total order count.
func (h *ReportHandler) HandleTotalOrders(c *fiber.Ctx) error {
	count, err := h.service.TotalOrders()
	if err != nil {
		h.logger.Error("failed to count orders", zap.Error(err))
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"totalOrders": count})
}

// HandleTotalRevenue returns the revenue sum, 0 when no orders exist.
func (h *ReportHandler) HandleTotalRevenue(c *fiber.Ctx) error {
	revenue, err := h.service.TotalRevenue()
	if err != nil {
		h.logger.Error("failed to sum revenue", zap.Error(err))
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"totalRevenue": revenue})
}
