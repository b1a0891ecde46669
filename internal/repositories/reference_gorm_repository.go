package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"gemshop/internal/models"
)

// GORMMaterialRepository is a GORM implementation of MaterialRepository.
type GORMMaterialRepository struct {
	db *gorm.DB
}

// NewGORMMaterialRepository creates a new instance of GORMMaterialRepository.
func NewGORMMaterialRepository(db *gorm.DB) *GORMMaterialRepository {
	return &GORMMaterialRepository{db: db}
}

// GetAll retrieves all materials.
func (r *GORMMaterialRepository) GetAll() ([]models.Material, error) {
	var materials []models.Material
	if err := r.db.Find(&materials).Error; err != nil {
		return nil, fmt.Errorf("failed to get materials: %w", err)
	}
	return materials, nil
}

// Create creates a new material.
func (r *GORMMaterialRepository) Create(material *models.Material) error {
	if err := r.db.Create(material).Error; err != nil {
		return fmt.Errorf("failed to create material: %w", err)
	}
	return nil
}

// Update saves an existing material.
func (r *GORMMaterialRepository) Update(material *models.Material) error {
	res := r.db.Save(material)
	if res.Error != nil {
		return fmt.Errorf("failed to update material: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GORMAttributeRepository is a GORM implementation of AttributeRepository.
type GORMAttributeRepository struct {
	db *gorm.DB
}

// NewGORMAttributeRepository creates a new instance of GORMAttributeRepository.
func NewGORMAttributeRepository(db *gorm.DB) *GORMAttributeRepository {
	return &GORMAttributeRepository{db: db}
}

// GetAll retrieves all attributes with their values.
func (r *GORMAttributeRepository) GetAll() ([]models.Attribute, error) {
	var attributes []models.Attribute
	if err := r.db.Preload("Values").Find(&attributes).Error; err != nil {
		return nil, fmt.Errorf("failed to get attributes: %w", err)
	}
	return attributes, nil
}

// Create creates a new attribute with its values.
func (r *GORMAttributeRepository) Create(attribute *models.Attribute) error {
	if err := r.db.Create(attribute).Error; err != nil {
		return fmt.Errorf("failed to create attribute: %w", err)
	}
	return nil
}
