package repositories

import (
	"sync"

	"gemshop/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	carts      map[uint]models.Cart
	items      map[uint]models.CartItem
	nextCartID uint
	nextItemID uint
	mu         sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts:      make(map[uint]models.Cart),
		items:      make(map[uint]models.CartItem),
		nextCartID: 1,
		nextItemID: 1,
	}
}

// GetOpenByCustomer returns the customer's open cart with its items attached.
func (r *MockCartRepository) GetOpenByCustomer(customerID uint) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cart := range r.carts {
		if cart.CustomerID == customerID && cart.Status == models.CartStatusOpen {
			found := cart
			found.Items = nil
			for _, item := range r.items {
				if item.CartID == cart.CartID {
					found.Items = append(found.Items, item)
				}
			}
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// Create adds a new cart.
func (r *MockCartRepository) Create(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.CartID == 0 {
		cart.CartID = r.nextCartID
		r.nextCartID++
	}
	stored := *cart
	stored.Items = nil
	r.carts[cart.CartID] = stored
	return nil
}

// Update replaces an existing cart's fields (items are managed via SaveItem).
func (r *MockCartRepository) Update(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[cart.CartID]; !ok {
		return ErrNotFound
	}
	stored := *cart
	stored.Items = nil
	r.carts[cart.CartID] = stored
	return nil
}

// GetItemByID returns a cart item.
func (r *MockCartRepository) GetItemByID(itemID uint) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[itemID]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

// SaveItem inserts or updates a cart item.
func (r *MockCartRepository) SaveItem(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.CartItemID == 0 {
		item.CartItemID = r.nextItemID
		r.nextItemID++
	}
	r.items[item.CartItemID] = *item
	return nil
}

// DeleteItem removes a cart item.
func (r *MockCartRepository) DeleteItem(itemID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[itemID]; !ok {
		return ErrNotFound
	}
	delete(r.items, itemID)
	return nil
}
