package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gemshop/internal/models"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetOpenByCustomer retrieves the customer's open cart with its items.
func (r *GORMCartRepository) GetOpenByCustomer(customerID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items").
		First(&cart, "customer_id = ? AND status = ?", customerID, models.CartStatusOpen).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get open cart for customer %d: %w", customerID, err)
	}
	return &cart, nil
}

// Create creates a new cart.
func (r *GORMCartRepository) Create(cart *models.Cart) error {
	if err := r.db.Create(cart).Error; err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// Update saves the cart (status changes; items are saved via SaveItem).
func (r *GORMCartRepository) Update(cart *models.Cart) error {
	res := r.db.Omit("Items").Save(cart)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetItemByID retrieves a single cart item.
func (r *GORMCartRepository) GetItemByID(itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.First(&item, "cart_item_id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cart item %d: %w", itemID, err)
	}
	return &item, nil
}

// SaveItem inserts or updates a cart item.
func (r *GORMCartRepository) SaveItem(item *models.CartItem) error {
	if err := r.db.Save(item).Error; err != nil {
		return fmt.Errorf("failed to save cart item: %w", err)
	}
	return nil
}

// DeleteItem removes a cart item.
func (r *GORMCartRepository) DeleteItem(itemID uint) error {
	res := r.db.Delete(&models.CartItem{}, "cart_item_id = ?", itemID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
