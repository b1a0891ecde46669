package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart statuses. A customer has at most one open cart; checkout closes it.
const (
	CartStatusOpen       = "open"
	CartStatusCheckedOut = "checked_out"
)

// CartItem is a line in a cart. UnitPrice is snapshotted from the product
// when the item is added.
type CartItem struct {
	CartItemID uint            `json:"cart_item_id" gorm:"primaryKey"`
	CartID     uint            `json:"cart_id" gorm:"not null;index:idx_cart_product,unique"`
	ProductID  uint            `json:"product_id" gorm:"not null;index:idx_cart_product,unique"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	UnitPrice  decimal.Decimal `json:"unit_price" gorm:"not null;type:decimal(10,2)"`
}

// Cart is a customer's shopping cart.
type Cart struct {
	CartID     uint       `json:"cart_id" gorm:"primaryKey"`
	CustomerID uint       `json:"customer_id" gorm:"not null;index"`
	Status     string     `json:"status" gorm:"not null;type:varchar(20)"`
	Items      []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
