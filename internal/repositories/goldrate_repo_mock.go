package repositories

import (
	"sync"

	"gemshop/internal/models"
)

// MockGoldRateRepository is an in-memory implementation of GoldRateRepository.
type MockGoldRateRepository struct {
	rates  []models.GoldRate
	nextID uint
	mu     sync.RWMutex
}

// NewMockGoldRateRepository creates a new instance of MockGoldRateRepository.
func NewMockGoldRateRepository() *MockGoldRateRepository {
	return &MockGoldRateRepository{nextID: 1}
}

// Latest returns the most recent rate by rate date.
func (r *MockGoldRateRepository) Latest() (*models.GoldRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.rates) == 0 {
		return nil, ErrNotFound
	}
	latest := r.rates[0]
	for _, rate := range r.rates[1:] {
		if rate.RateDate.After(latest.RateDate) {
			latest = rate
		}
	}
	return &latest, nil
}

// Create records a new rate.
func (r *MockGoldRateRepository) Create(rate *models.GoldRate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rate.RateID == 0 {
		rate.RateID = r.nextID
		r.nextID++
	}
	r.rates = append(r.rates, *rate)
	return nil
}
