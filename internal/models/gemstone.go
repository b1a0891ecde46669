package models

import "github.com/shopspring/decimal"

// Gemstone is a loose-stone catalog entry, kept separate from the mounted
// jewellery products.
type Gemstone struct {
	GemstoneID uint            `json:"gemstone_id" gorm:"primaryKey"`
	Name       string          `json:"name" gorm:"not null;type:varchar(200)" validate:"required,min=2,max=200"`
	StoneType  string          `json:"stone_type" gorm:"type:varchar(100)"`
	Carat      decimal.Decimal `json:"carat" gorm:"type:decimal(10,2)"`
	Quality    string          `json:"quality" gorm:"type:varchar(50)"`
	BasePrice  decimal.Decimal `json:"base_price" gorm:"not null;type:decimal(12,2)"`
}
