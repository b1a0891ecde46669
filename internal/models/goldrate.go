package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoldRate is a date-stamped price-per-gram record. Only the most recent
// record by RateDate is authoritative; older rows are kept as history.
type GoldRate struct {
	RateID      uint            `json:"rate_id" gorm:"primaryKey"`
	RatePerGram decimal.Decimal `json:"rate_per_gram" gorm:"not null;type:decimal(14,4)"`
	RateDate    time.Time       `json:"rate_date" gorm:"not null;index"`
	CreatedAt   time.Time       `json:"created_at"`
}
