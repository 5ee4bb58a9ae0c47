package services

import (
	"go.uber.org/zap"

	"crm/internal/apperrors"
	"crm/internal/models"
	"crm/internal/repositories"
	"crm/pkg/rabbitmq"
)

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo    repositories.OrderRepository
	customerRepo repositories.CustomerRepository
	productRepo  repositories.ProductRepository
	mqClient     *rabbitmq.Client
	logger       *zap.Logger
}

// NewOrderService creates a new OrderService. The mqClient may be nil,
// in which case event publishing is skipped.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	customerRepo repositories.CustomerRepository,
	productRepo repositories.ProductRepository,
	mqClient *rabbitmq.Client,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		mqClient:     mqClient,
		logger:       logger,
	}
}

// CreateOrder validates the customer and product references, then
// persists the order, its product associations, and the computed total
// in one transaction. The total is the sum of the resolved products'
// prices at creation time and is never recomputed. On any validation
// failure nothing is written.
func (s *OrderService) CreateOrder(input models.OrderInput) (*models.Order, error) {
	customer, err := s.customerRepo.GetByID(input.CustomerID)
	if err != nil {
		return nil, err
	}

	if len(input.ProductIDs) == 0 {
		return nil, apperrors.ErrEmptyProductList
	}

	products, err := s.productRepo.GetByIDs(input.ProductIDs)
	if err != nil {
		return nil, err
	}
	if len(products) != len(input.ProductIDs) {
		return nil, apperrors.ErrInvalidProductIDs
	}

	var total float64
	for _, p := range products {
		total += p.Price
	}

	order := &models.Order{
		CustomerID:  customer.ID,
		Products:    products,
		TotalAmount: total,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}
	order.Customer = *customer

	if s.mqClient != nil {
		event := map[string]interface{}{
			"orderId":     order.ID,
			"customerId":  order.CustomerID,
			"totalAmount": order.TotalAmount,
		}
		if err := s.mqClient.Publish("order.created", event); err != nil {
			s.logger.Warn("failed to publish order.created event",
				zap.String("order_id", order.ID), zap.Error(err))
		}
	}

	return order, nil
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// ListOrders retrieves orders matching the filter.
func (s *OrderService) ListOrders(filter repositories.OrderFilter) ([]models.Order, error) {
	return s.orderRepo.List(filter)
}
