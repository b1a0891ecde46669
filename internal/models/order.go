package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a line within an order. UnitPrice is a snapshot captured at
// order time, never a live reference to the product's current price.
type OrderItem struct {
	OrderItemID uint            `json:"order_item_id" gorm:"primaryKey"`
	OrderID     uint            `json:"order_id" gorm:"not null;index"`
	ProductID   uint            `json:"product_id" gorm:"not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"not null;type:decimal(10,2)"`
	TotalPrice  decimal.Decimal `json:"total_price" gorm:"not null;type:decimal(10,2)"`
}

// Order is the aggregate root for a customer order: its line items plus at
// most one active payment slip. TotalAmount is derived from the items and is
// never taken from client input.
type Order struct {
	OrderID         uint            `json:"order_id" gorm:"primaryKey"`
	CustomerName    string          `json:"customer_name" gorm:"not null;type:varchar(200)"`
	CustomerEmail   string          `json:"customer_email" gorm:"not null;type:varchar(255)"`
	CustomerAddress string          `json:"customer_address" gorm:"type:text"`
	TelephoneNumber string          `json:"telephone_number" gorm:"type:varchar(30)"`
	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"not null;type:decimal(12,2)"`
	OrderStatus     OrderStatus     `json:"order_status" gorm:"not null;type:varchar(20)"`
	PaymentStatus   PaymentStatus   `json:"payment_status" gorm:"not null;type:varchar(20)"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Slip            *Slip           `json:"slip,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
