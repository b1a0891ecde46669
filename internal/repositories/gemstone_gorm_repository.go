package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gemshop/internal/models"
)

// GORMGemstoneRepository is a GORM implementation of GemstoneRepository.
type GORMGemstoneRepository struct {
	db *gorm.DB
}

// NewGORMGemstoneRepository creates a new instance of GORMGemstoneRepository.
func NewGORMGemstoneRepository(db *gorm.DB) *GORMGemstoneRepository {
	return &GORMGemstoneRepository{
		db: db,
	}
}

// GetAll retrieves all gemstones.
func (r *GORMGemstoneRepository) GetAll() ([]models.Gemstone, error) {
	var gemstones []models.Gemstone
	if err := r.db.Find(&gemstones).Error; err != nil {
		return nil, fmt.Errorf("failed to get gemstones: %w", err)
	}
	return gemstones, nil
}

// GetByID retrieves a gemstone by its ID.
func (r *GORMGemstoneRepository) GetByID(id uint) (*models.Gemstone, error) {
	var gemstone models.Gemstone
	if err := r.db.First(&gemstone, "gemstone_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get gemstone by ID %d: %w", id, err)
	}
	return &gemstone, nil
}

// Create creates a new gemstone.
func (r *GORMGemstoneRepository) Create(gemstone *models.Gemstone) error {
	if err := r.db.Create(gemstone).Error; err != nil {
		return fmt.Errorf("failed to create gemstone: %w", err)
	}
	return nil
}

// Update saves an existing gemstone.
func (r *GORMGemstoneRepository) Update(gemstone *models.Gemstone) error {
	res := r.db.Save(gemstone)
	if res.Error != nil {
		return fmt.Errorf("failed to update gemstone: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a gemstone by its ID.
func (r *GORMGemstoneRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Gemstone{}, "gemstone_id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete gemstone: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
