package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"gemshop/internal/models"
	"gemshop/internal/repositories"
)

// ProductService handles business logic related to the jewellery catalog.
type ProductService struct {
	repo         repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	pricing      *PricingService
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, pricing *PricingService) *ProductService {
	return &ProductService{
		repo:         repo,
		categoryRepo: categoryRepo,
		pricing:      pricing,
	}
}

// ListProducts retrieves products matching the filter.
func (s *ProductService) ListProducts(filter repositories.ProductFilter) ([]models.Product, error) {
	return s.repo.GetAll(filter)
}

// ListByCategory retrieves active products in the category or any of its
// subcategories.
func (s *ProductService) ListByCategory(categoryID uint, minPrice, maxPrice *decimal.Decimal) ([]models.Product, error) {
	ids, err := s.categoryRepo.DescendantIDs(categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %d", ErrCategoryNotFound, categoryID)
		}
		return nil, err
	}
	return s.repo.GetAll(repositories.ProductFilter{
		CategoryIDs: ids,
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		ActiveOnly:  true,
	})
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrProductNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

// ComputedPrice returns the product's current sale price from the pricing
// engine.
func (s *ProductService) ComputedPrice(id uint) (decimal.Decimal, error) {
	return s.pricing.ComputePrice(id)
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.validateCategory(product.CategoryID); err != nil {
		return err
	}
	if err := s.repo.Create(product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if _, err := s.GetProduct(product.ProductID); err != nil {
		return err
	}
	if err := s.validateCategory(product.CategoryID); err != nil {
		return err
	}
	if err := s.repo.Update(product); err != nil {
		return fmt.Errorf("failed to update product %d: %w", product.ProductID, err)
	}
	return nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id uint) error {
	if _, err := s.GetProduct(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *ProductService) validateCategory(categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categoryRepo.GetByID(*categoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: category %d", ErrCategoryNotFound, *categoryID)
		}
		return err
	}
	return nil
}
