package repositories

import (
	"gemshop/internal/models"
)

// CartRepository defines the interface for cart data access. A customer has
// at most one open cart at a time.
type CartRepository interface {
	GetOpenByCustomer(customerID uint) (*models.Cart, error)
	Create(cart *models.Cart) error
	Update(cart *models.Cart) error
	GetItemByID(itemID uint) (*models.CartItem, error)
	SaveItem(item *models.CartItem) error
	DeleteItem(itemID uint) error
}
