package repositories

import (
	"gemshop/internal/models"
)

// CategoryRepository defines the interface for category data access.
// DescendantIDs returns the given category's ID plus every ID below it in the
// tree, for category-scoped product listings.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
	DescendantIDs(id uint) ([]uint, error)
}
