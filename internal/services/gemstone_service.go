package services

import (
	"errors"
	"fmt"

	"gemshop/internal/models"
	"gemshop/internal/repositories"
)

// GemstoneService handles business logic for loose gemstones.
type GemstoneService struct {
	repo repositories.GemstoneRepository
}

// NewGemstoneService creates a new GemstoneService.
func NewGemstoneService(repo repositories.GemstoneRepository) *GemstoneService {
	return &GemstoneService{repo: repo}
}

// ListGemstones retrieves all gemstones.
func (s *GemstoneService) ListGemstones() ([]models.Gemstone, error) {
	return s.repo.GetAll()
}

// GetGemstone retrieves a single gemstone by its ID.
func (s *GemstoneService) GetGemstone(id uint) (*models.Gemstone, error) {
	gemstone, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: gemstone %d", ErrGemstoneNotFound, id)
		}
		return nil, err
	}
	return gemstone, nil
}

// CreateGemstone creates a new gemstone.
func (s *GemstoneService) CreateGemstone(gemstone *models.Gemstone) error {
	if err := s.repo.Create(gemstone); err != nil {
		return fmt.Errorf("failed to create gemstone: %w", err)
	}
	return nil
}

// UpdateGemstone updates an existing gemstone.
func (s *GemstoneService) UpdateGemstone(gemstone *models.Gemstone) error {
	if _, err := s.GetGemstone(gemstone.GemstoneID); err != nil {
		return err
	}
	if err := s.repo.Update(gemstone); err != nil {
		return fmt.Errorf("failed to update gemstone %d: %w", gemstone.GemstoneID, err)
	}
	return nil
}

// DeleteGemstone deletes a gemstone by its ID.
func (s *GemstoneService) DeleteGemstone(id uint) error {
	if _, err := s.GetGemstone(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
