package repositories

import (
	"gemshop/internal/models"
)

// MaterialRepository defines the interface for material reference records.
type MaterialRepository interface {
	GetAll() ([]models.Material, error)
	Create(material *models.Material) error
	Update(material *models.Material) error
}

// AttributeRepository defines the interface for attribute reference records.
type AttributeRepository interface {
	GetAll() ([]models.Attribute, error)
	Create(attribute *models.Attribute) error
}
