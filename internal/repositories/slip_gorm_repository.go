package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gemshop/internal/models"
)

// GORMSlipRepository is a GORM implementation of SlipRepository.
type GORMSlipRepository struct {
	db *gorm.DB
}

// NewGORMSlipRepository creates a new instance of GORMSlipRepository.
func NewGORMSlipRepository(db *gorm.DB) *GORMSlipRepository {
	return &GORMSlipRepository{
		db: db,
	}
}

// GetByOrderID retrieves the slip attached to an order.
func (r *GORMSlipRepository) GetByOrderID(orderID uint) (*models.Slip, error) {
	var slip models.Slip
	if err := r.db.First(&slip, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get slip for order %d: %w", orderID, err)
	}
	return &slip, nil
}

// Create creates a new slip record.
func (r *GORMSlipRepository) Create(slip *models.Slip) error {
	if err := r.db.Create(slip).Error; err != nil {
		return fmt.Errorf("failed to create slip: %w", err)
	}
	return nil
}

// Update saves an existing slip record.
func (r *GORMSlipRepository) Update(slip *models.Slip) error {
	res := r.db.Save(slip)
	if res.Error != nil {
		return fmt.Errorf("failed to update slip: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a slip record by its ID.
func (r *GORMSlipRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Slip{}, "slip_id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete slip: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
