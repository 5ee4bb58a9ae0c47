package repositories

import (
	"crm/internal/models"
)

// CustomerRepository defines the interface for customer data access.
type CustomerRepository interface {
	Create(customer *models.Customer) error
	GetByID(id string) (*models.Customer, error)
	ExistsByEmail(email string) (bool, error)
	GetAll() ([]models.Customer, error)
	List(filter CustomerFilter) ([]models.Customer, error)
	Count() (int64, error)
}
