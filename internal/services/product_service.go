package services

import (
	"fmt"

	"go.uber.org/zap"

	"crm/internal/apperrors"
	"crm/internal/models"
	"crm/internal/repositories"
	"crm/pkg/rabbitmq"
)

// ProductService handles business logic related to products, including
// the low-stock restock operation.
type ProductService struct {
	repo      repositories.ProductRepository
	mqClient  *rabbitmq.Client
	logger    *zap.Logger
	threshold int
	increment int
}

// NewProductService creates a new ProductService. The mqClient may be
// nil, in which case event publishing is skipped. Threshold and
// increment parameterize updateLowStockProducts.
func NewProductService(repo repositories.ProductRepository, mqClient *rabbitmq.Client, logger *zap.Logger, threshold, increment int) *ProductService {
	return &ProductService{
		repo:      repo,
		mqClient:  mqClient,
		logger:    logger,
		threshold: threshold,
		increment: increment,
	}
}

// CreateProduct validates constraints and inserts one product. Price
// must be strictly positive and stock non-negative; nothing is written
// when either check fails.
func (s *ProductService) CreateProduct(input models.ProductInput) (*models.Product, error) {
	if input.Price <= 0 {
		return nil, apperrors.ErrInvalidPrice
	}
	stock := 0
	if input.Stock != nil {
		stock = *input.Stock
	}
	if stock < 0 {
		return nil, apperrors.ErrInvalidStock
	}

	product := &models.Product{
		Name:  input.Name,
		Price: input.Price,
		Stock: stock,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateLowStockProducts restocks every product whose stock is under the
// configured threshold by the configured increment, using the
// repository's set-based update. Re-running it only affects rows still
// below the threshold.
func (s *ProductService) UpdateLowStockProducts() ([]models.Product, string, error) {
	updated, err := s.repo.RestockBelow(s.threshold, s.increment)
	if err != nil {
		return nil, "", err
	}
	if len(updated) == 0 {
		return []models.Product{}, "No low-stock products found to update.", nil
	}

	if s.mqClient != nil {
		event := map[string]interface{}{
			"count":     len(updated),
			"increment": s.increment,
		}
		if err := s.mqClient.Publish("product.restocked", event); err != nil {
			s.logger.Warn("failed to publish product.restocked event", zap.Error(err))
		}
	}

	message := fmt.Sprintf("Successfully restocked %d low-stock product(s).", len(updated))
	return updated, message, nil
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// ListProducts retrieves products matching the filter.
func (s *ProductService) ListProducts(filter repositories.ProductFilter) ([]models.Product, error) {
	return s.repo.List(filter)
}
