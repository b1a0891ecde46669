package repositories

import (
	"gemshop/internal/models"
)

// GemstoneRepository defines the interface for gemstone data access.
type GemstoneRepository interface {
	GetAll() ([]models.Gemstone, error)
	GetByID(id uint) (*models.Gemstone, error)
	Create(gemstone *models.Gemstone) error
	Update(gemstone *models.Gemstone) error
	Delete(id uint) error
}
