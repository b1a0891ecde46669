package repositories

import (
	"gemshop/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// persisted as an aggregate: Create and Update write the order together with
// its items, and reads preload items plus the attached slip.
type OrderRepository interface {
	GetAll(status *models.OrderStatus) ([]models.Order, error)
	GetByID(id uint) (*models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
}
