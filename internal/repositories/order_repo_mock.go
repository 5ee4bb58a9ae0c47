package repositories

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"crm/internal/apperrors"
	"crm/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}
	r.orders[order.ID] = *order
	return nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, apperrors.ErrOrderNotFound
	}
	return &order, nil
}

// GetAll returns all orders.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		orderList = append(orderList, o)
	}
	return orderList, nil
}

// List applies the filter in memory, ordered by order date for determinism.
func (r *MockOrderRepository) List(filter OrderFilter) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []models.Order
	for _, o := range r.orders {
		if filter.CustomerEmail != "" && o.Customer.Email != filter.CustomerEmail {
			continue
		}
		if filter.TotalAmountGte != nil && o.TotalAmount < *filter.TotalAmountGte {
			continue
		}
		if filter.TotalAmountLte != nil && o.TotalAmount > *filter.TotalAmountLte {
			continue
		}
		if filter.OrderDateGte != nil && o.OrderDate.Before(*filter.OrderDateGte) {
			continue
		}
		if filter.OrderDateLte != nil && o.OrderDate.After(*filter.OrderDateLte) {
			continue
		}
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].OrderDate.Before(orders[j].OrderDate) })
	return orders, nil
}

// Count returns the number of stored orders.
func (r *MockOrderRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.orders)), nil
}

// TotalRevenue sums total_amount across the stored orders.
func (r *MockOrderRepository) TotalRevenue() (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total float64
	for _, o := range r.orders {
		total += o.TotalAmount
	}
	return total, nil
}
