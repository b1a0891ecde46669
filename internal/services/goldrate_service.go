package services

import (
	"errors"
	"fmt"
	"time"

	"gemshop/internal/models"
	"gemshop/internal/repositories"
)

// GoldRateService records and serves the daily gold rate per gram.
type GoldRateService struct {
	repo repositories.GoldRateRepository
}

// NewGoldRateService creates a new GoldRateService.
func NewGoldRateService(repo repositories.GoldRateRepository) *GoldRateService {
	return &GoldRateService{repo: repo}
}

// RecordRate appends a new rate record. Rates are never edited in place;
// pricing always reads the most recent record.
func (s *GoldRateService) RecordRate(rate *models.GoldRate) error {
	if !rate.RatePerGram.IsPositive() {
		return fmt.Errorf("%w: rate per gram must be positive", ErrInvalidRequest)
	}
	if rate.RateDate.IsZero() {
		rate.RateDate = time.Now()
	}
	if err := s.repo.Create(rate); err != nil {
		return fmt.Errorf("failed to record gold rate: %w", err)
	}
	return nil
}

// LatestRate returns the most recent recorded rate.
func (s *GoldRateService) LatestRate() (*models.GoldRate, error) {
	rate, err := s.repo.Latest()
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRateUnavailable
		}
		return nil, fmt.Errorf("failed to fetch gold rate: %w", err)
	}
	return rate, nil
}
