package repositories

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"crm/internal/apperrors"
	"crm/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = *product
	return nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.ErrProductNotFound
	}
	return &product, nil
}

// GetByIDs resolves a batch of IDs; unknown IDs are absent from the result.
func (r *MockProductRepository) GetByIDs(ids []string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// List applies the filter in memory, ordered by name for determinism.
func (r *MockProductRepository) List(filter ProductFilter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []models.Product
	for _, p := range r.products {
		if filter.NameContains != "" && !strings.Contains(p.Name, filter.NameContains) {
			continue
		}
		if filter.PriceGte != nil && p.Price < *filter.PriceGte {
			continue
		}
		if filter.PriceLte != nil && p.Price > *filter.PriceLte {
			continue
		}
		if filter.StockGte != nil && p.Stock < *filter.StockGte {
			continue
		}
		if filter.StockLte != nil && p.Stock > *filter.StockLte {
			continue
		}
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

// RestockBelow increments every product under threshold while holding the
// write lock, mirroring the set-based update of the GORM implementation.
func (r *MockProductRepository) RestockBelow(threshold, increment int) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated := make([]models.Product, 0)
	for id, p := range r.products {
		if p.Stock < threshold {
			p.Stock += increment
			r.products[id] = p
			updated = append(updated, p)
		}
	}
	sort.Slice(updated, func(i, j int) bool { return updated[i].Name < updated[j].Name })
	return updated, nil
}
