package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"crm/internal/apperrors"
	"crm/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// Create persists the order and its order_products join rows atomically.
// The associated Product and Customer rows themselves are left untouched.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Products.*", "Customer").Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a single order with its customer and products.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Customer").Preload("Products").First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetAll retrieves every order with its customer and products.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Customer").Preload("Products").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// List retrieves orders matching the filter, ordered and paginated.
func (r *GORMOrderRepository) List(filter OrderFilter) ([]models.Order, error) {
	q := r.db.Model(&models.Order{}).Preload("Customer").Preload("Products")
	if filter.CustomerEmail != "" {
		q = q.Joins("JOIN customers ON customers.id = orders.customer_id").
			Where("customers.email = ?", filter.CustomerEmail)
	}
	if filter.TotalAmountGte != nil {
		q = q.Where("total_amount >= ?", *filter.TotalAmountGte)
	}
	if filter.TotalAmountLte != nil {
		q = q.Where("total_amount <= ?", *filter.TotalAmountLte)
	}
	if filter.OrderDateGte != nil {
		q = q.Where("order_date >= ?", *filter.OrderDateGte)
	}
	if filter.OrderDateLte != nil {
		q = q.Where("order_date <= ?", *filter.OrderDateLte)
	}
	q = applyOrderBy(q, filter.OrderBy, orderSortColumns)
	q = applyPagination(q, filter.Pagination)

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Count returns the total number of orders.
func (r *GORMOrderRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// TotalRevenue sums total_amount across all orders, defaulting to 0.
func (r *GORMOrderRepository) TotalRevenue() (float64, error) {
	var total float64
	err := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum order revenue: %w", err)
	}
	return total, nil
}
