package repositories

import (
	"sync"

	"gemshop/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[uint]models.Product
	nextID   uint
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[uint]models.Product),
		nextID:   1,
	}
}

// GetAll returns products matching the filter.
func (r *MockProductRepository) GetAll(filter ProductFilter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		if filter.MinPrice != nil && p.BasePrice.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && p.BasePrice.GreaterThan(*filter.MaxPrice) {
			continue
		}
		if len(filter.CategoryIDs) > 0 {
			if p.CategoryID == nil || !containsID(filter.CategoryIDs, *p.CategoryID) {
				continue
			}
		}
		productList = append(productList, p)
	}
	return productList, nil
}

func containsID(ids []uint, id uint) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ProductID == 0 {
		product.ProductID = r.nextID
		r.nextID++
	} else if product.ProductID >= r.nextID {
		r.nextID = product.ProductID + 1
	}
	r.products[product.ProductID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[product.ProductID]
	if !ok {
		return ErrNotFound
	}
	r.products[product.ProductID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// DecrementStock reserves stock with the same check-then-write semantics as
// the conditional UPDATE, held under the write lock.
func (r *MockProductRepository) DecrementStock(id uint, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return ErrNotFound
	}
	if product.StockQuantity < quantity {
		return ErrStockConflict
	}
	product.StockQuantity -= quantity
	r.products[id] = product
	return nil
}

// IncrementStock restores stock.
func (r *MockProductRepository) IncrementStock(id uint, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return ErrNotFound
	}
	product.StockQuantity += quantity
	r.products[id] = product
	return nil
}
