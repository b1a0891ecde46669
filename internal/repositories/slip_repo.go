package repositories

import (
	"gemshop/internal/models"
)

// SlipRepository defines the interface for payment-slip data access. An order
// has at most one slip, so lookups are keyed by order ID.
type SlipRepository interface {
	GetByOrderID(orderID uint) (*models.Slip, error)
	Create(slip *models.Slip) error
	Update(slip *models.Slip) error
	Delete(id uint) error
}
