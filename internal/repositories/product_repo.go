package repositories

import (
	"crm/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id string) (*models.Product, error)
	GetByIDs(ids []string) ([]models.Product, error)
	GetAll() ([]models.Product, error)
	List(filter ProductFilter) ([]models.Product, error)
	// RestockBelow applies a single set-based increment to every product
	// whose stock is under threshold and returns the rows as re-read
	// after the update. Returns an empty slice when nothing qualified.
	RestockBelow(threshold, increment int) ([]models.Product, error)
}
