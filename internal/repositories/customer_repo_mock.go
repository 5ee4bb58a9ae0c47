package repositories

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"crm/internal/apperrors"
	"crm/internal/models"
)

// MockCustomerRepository is an in-memory implementation of CustomerRepository.
type MockCustomerRepository struct {
	customers map[string]models.Customer
	mu        sync.RWMutex
}

// NewMockCustomerRepository creates a new instance of MockCustomerRepository.
func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		customers: make(map[string]models.Customer),
	}
}

// Create adds a new customer.
func (r *MockCustomerRepository) Create(customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now()
	}
	r.customers[customer.ID] = *customer
	return nil
}

// GetByID returns a customer by its ID.
func (r *MockCustomerRepository) GetByID(id string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, apperrors.ErrCustomerNotFound
	}
	return &customer, nil
}

// ExistsByEmail reports whether any stored customer uses the given email.
func (r *MockCustomerRepository) ExistsByEmail(email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.customers {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// GetAll returns all customers.
func (r *MockCustomerRepository) GetAll() ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customerList := make([]models.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		customerList = append(customerList, c)
	}
	return customerList, nil
}

// List applies the filter in memory. Only the fields the tests exercise
// are supported; ordering falls back to email for determinism.
func (r *MockCustomerRepository) List(filter CustomerFilter) ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var customers []models.Customer
	for _, c := range r.customers {
		if filter.NameContains != "" && !strings.Contains(c.Name, filter.NameContains) {
			continue
		}
		if filter.EmailContains != "" && !strings.Contains(c.Email, filter.EmailContains) {
			continue
		}
		if filter.CreatedAtGte != nil && c.CreatedAt.Before(*filter.CreatedAtGte) {
			continue
		}
		if filter.CreatedAtLte != nil && c.CreatedAt.After(*filter.CreatedAtLte) {
			continue
		}
		customers = append(customers, c)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].Email < customers[j].Email })
	return customers, nil
}

// Count returns the number of stored customers.
func (r *MockCustomerRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.customers)), nil
}
