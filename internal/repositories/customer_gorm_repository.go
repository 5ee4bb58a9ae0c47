package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"crm/internal/apperrors"
	"crm/internal/models"
)

// GORMCustomerRepository is a GORM implementation of CustomerRepository.
type GORMCustomerRepository struct {
	db *gorm.DB
}

// NewGORMCustomerRepository creates a new instance of GORMCustomerRepository.
func NewGORMCustomerRepository(db *gorm.DB) *GORMCustomerRepository {
	return &GORMCustomerRepository{db: db}
}

// Create inserts a new customer row.
func (r *GORMCustomerRepository) Create(customer *models.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	if err := r.db.Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// GetByID retrieves a single customer by its ID.
func (r *GORMCustomerRepository) GetByID(id string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer by ID %s: %w", id, err)
	}
	return &customer, nil
}

// ExistsByEmail reports whether any customer already uses the given email.
func (r *GORMCustomerRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Customer{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email %s: %w", email, err)
	}
	return count > 0, nil
}

// GetAll retrieves every customer.
func (r *GORMCustomerRepository) GetAll() ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to get all customers: %w", err)
	}
	return customers, nil
}

// List retrieves customers matching the filter, ordered and paginated.
func (r *GORMCustomerRepository) List(filter CustomerFilter) ([]models.Customer, error) {
	q := r.db.Model(&models.Customer{})
	if filter.NameContains != "" {
		q = q.Where("name LIKE ?", "%"+filter.NameContains+"%")
	}
	if filter.EmailContains != "" {
		q = q.Where("email LIKE ?", "%"+filter.EmailContains+"%")
	}
	if filter.CreatedAtGte != nil {
		q = q.Where("created_at >= ?", *filter.CreatedAtGte)
	}
	if filter.CreatedAtLte != nil {
		q = q.Where("created_at <= ?", *filter.CreatedAtLte)
	}
	q = applyOrderBy(q, filter.OrderBy, customerSortColumns)
	q = applyPagination(q, filter.Pagination)

	var customers []models.Customer
	if err := q.Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// Count returns the total number of customers.
func (r *GORMCustomerRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Customer{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}
