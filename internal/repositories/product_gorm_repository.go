package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"crm/internal/apperrors"
	"crm/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{db: db}
}

// Create inserts a new product row.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// GetByIDs resolves a batch of product IDs in one query. Unknown IDs are
// simply absent from the result; the caller compares lengths.
func (r *GORMProductRepository) GetByIDs(ids []string) ([]models.Product, error) {
	products := make([]models.Product, 0, len(ids))
	if len(ids) == 0 {
		return products, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products by IDs: %w", err)
	}
	return products, nil
}

// GetAll retrieves every product.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// List retrieves products matching the filter, ordered and paginated.
func (r *GORMProductRepository) List(filter ProductFilter) ([]models.Product, error) {
	q := r.db.Model(&models.Product{})
	if filter.NameContains != "" {
		q = q.Where("name LIKE ?", "%"+filter.NameContains+"%")
	}
	if filter.PriceGte != nil {
		q = q.Where("price >= ?", *filter.PriceGte)
	}
	if filter.PriceLte != nil {
		q = q.Where("price <= ?", *filter.PriceLte)
	}
	if filter.StockGte != nil {
		q = q.Where("stock >= ?", *filter.StockGte)
	}
	if filter.StockLte != nil {
		q = q.Where("stock <= ?", *filter.StockLte)
	}
	q = applyOrderBy(q, filter.OrderBy, productSortColumns)
	q = applyPagination(q, filter.Pagination)

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// RestockBelow increments stock for every product under threshold with a
// single UPDATE expression, so concurrent restock runs cannot lose
// updates. The affected rows are re-read afterwards to report their new
// stock values.
func (r *GORMProductRepository) RestockBelow(threshold, increment int) ([]models.Product, error) {
	var ids []string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("stock < ?", threshold).Pluck("id", &ids).Error; err != nil {
			return fmt.Errorf("failed to select low-stock products: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}
		res := tx.Model(&models.Product{}).
			Where("id IN ? AND stock < ?", ids, threshold).
			Update("stock", gorm.Expr("stock + ?", increment))
		if res.Error != nil {
			return fmt.Errorf("failed to restock products: %w", res.Error)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	var updated []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&updated).Error; err != nil {
		return nil, fmt.Errorf("failed to reload restocked products: %w", err)
	}
	return updated, nil
}
