package repositories

import (
	"gemshop/internal/models"
)

// GoldRateRepository defines the interface for gold-rate data access.
// Latest returns the single most recent record by rate date; ErrNotFound
// means no rate has ever been recorded.
type GoldRateRepository interface {
	Latest() (*models.GoldRate, error)
	Create(rate *models.GoldRate) error
}
