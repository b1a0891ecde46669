package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material is a reference record for a raw material and its current rate per
// unit (e.g. silver per gram).
type Material struct {
	MaterialID   uint            `json:"material_id" gorm:"primaryKey"`
	MaterialName string          `json:"material_name" gorm:"uniqueIndex;not null;type:varchar(100)" validate:"required,min=2,max=100"`
	CurrentRate  decimal.Decimal `json:"current_rate" gorm:"not null;type:decimal(14,4)"`
	Unit         string          `json:"unit" gorm:"not null;type:varchar(20)" validate:"required,max=20"`
	IsActive     bool            `json:"is_active" gorm:"default:true"`
	LastUpdated  time.Time       `json:"last_updated" gorm:"autoUpdateTime"`
}
