package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gemshop/internal/models"
)

// GORMGoldRateRepository is a GORM implementation of GoldRateRepository.
type GORMGoldRateRepository struct {
	db *gorm.DB
}

// NewGORMGoldRateRepository creates a new instance of GORMGoldRateRepository.
func NewGORMGoldRateRepository(db *gorm.DB) *GORMGoldRateRepository {
	return &GORMGoldRateRepository{
		db: db,
	}
}

// Latest retrieves the most recent gold rate by rate date.
func (r *GORMGoldRateRepository) Latest() (*models.GoldRate, error) {
	var rate models.GoldRate
	if err := r.db.Order("rate_date DESC").First(&rate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest gold rate: %w", err)
	}
	return &rate, nil
}

// Create records a new gold rate.
func (r *GORMGoldRateRepository) Create(rate *models.GoldRate) error {
	if err := r.db.Create(rate).Error; err != nil {
		return fmt.Errorf("failed to create gold rate: %w", err)
	}
	return nil
}
