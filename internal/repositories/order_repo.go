package repositories

import (
	"crm/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create persists the order row and its product associations inside
	// a single transaction; either everything is written or nothing is.
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetAll() ([]models.Order, error)
	List(filter OrderFilter) ([]models.Order, error)
	Count() (int64, error)
	// TotalRevenue sums total_amount over all orders, 0 when there are none.
	TotalRevenue() (float64, error)
}
