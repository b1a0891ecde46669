package repositories

import (
	"github.com/shopspring/decimal"

	"gemshop/internal/models"
)

// ProductFilter narrows GetAll. Zero-value fields are ignored.
type ProductFilter struct {
	CategoryIDs []uint
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	ActiveOnly  bool
}

// ProductRepository defines the interface for product data access.
//
// DecrementStock must be a conditional update: it reserves the quantity only
// when current stock covers it and reports ErrStockConflict otherwise. This
// is what keeps stock from going negative under concurrent orders.
type ProductRepository interface {
	GetAll(filter ProductFilter) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	DecrementStock(id uint, quantity int) error
	IncrementStock(id uint, quantity int) error
}
