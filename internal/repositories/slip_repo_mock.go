package repositories

import (
	"sync"

	"gemshop/internal/models"
)

// MockSlipRepository is an in-memory implementation of SlipRepository.
type MockSlipRepository struct {
	slips  map[uint]models.Slip // keyed by slip ID
	nextID uint
	mu     sync.RWMutex
}

// NewMockSlipRepository creates a new instance of MockSlipRepository.
func NewMockSlipRepository() *MockSlipRepository {
	return &MockSlipRepository{
		slips:  make(map[uint]models.Slip),
		nextID: 1,
	}
}

// GetByOrderID returns the slip attached to an order.
func (r *MockSlipRepository) GetByOrderID(orderID uint) (*models.Slip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, slip := range r.slips {
		if slip.OrderID == orderID {
			found := slip
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// Create adds a new slip.
func (r *MockSlipRepository) Create(slip *models.Slip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slip.SlipID == 0 {
		slip.SlipID = r.nextID
		r.nextID++
	}
	r.slips[slip.SlipID] = *slip
	return nil
}

// Update replaces an existing slip.
func (r *MockSlipRepository) Update(slip *models.Slip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.slips[slip.SlipID]; !ok {
		return ErrNotFound
	}
	r.slips[slip.SlipID] = *slip
	return nil
}

// Delete removes a slip by its ID.
func (r *MockSlipRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.slips[id]; !ok {
		return ErrNotFound
	}
	delete(r.slips, id)
	return nil
}
