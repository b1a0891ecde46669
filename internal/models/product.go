package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item. Gold items carry their gold content so
// the pricing engine can surcharge them with the current gold rate.
type Product struct {
	ProductID        uint            `json:"product_id" gorm:"primaryKey"`
	ProductName      string          `json:"product_name" gorm:"not null;type:varchar(200)" validate:"required,min=2,max=200"`
	SKU              string          `json:"sku" gorm:"uniqueIndex;not null;type:varchar(100)" validate:"required,max=100"`
	Description      string          `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	BasePrice        decimal.Decimal `json:"base_price" gorm:"not null;type:decimal(10,2)"`
	MarkupPercentage decimal.Decimal `json:"markup_percentage" gorm:"not null;type:decimal(5,2)"`
	Weight           decimal.Decimal `json:"weight" gorm:"type:decimal(8,3)"`
	Dimensions       string          `json:"dimensions" gorm:"type:varchar(100)"`
	StockQuantity    int             `json:"stock_quantity" gorm:"not null" validate:"gte=0"`
	MinStockLevel    int             `json:"min_stock_level" gorm:"default:5"`
	IsActive         bool            `json:"is_active" gorm:"default:true"`
	Featured         bool            `json:"featured"`
	IsGold           bool            `json:"is_gold"`
	GoldWeightGrams  decimal.Decimal `json:"gold_weight_grams" gorm:"type:decimal(8,3)"`
	GoldPurityKarat  int             `json:"gold_purity_karat"`
	CategoryID       *uint           `json:"category_id"`
	Category         *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
