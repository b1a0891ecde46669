package models

// OrderStatus is the closed set of order lifecycle states. Values arrive as
// free-form strings at the HTTP boundary and must pass ParseOrderStatus
// before they are stored.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusVerified   OrderStatus = "verified"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentStatus is the closed set of payment states.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusVerified PaymentStatus = "verified"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
)

var orderStatuses = map[OrderStatus]bool{
	OrderStatusPending:    true,
	OrderStatusProcessing: true,
	OrderStatusVerified:   true,
	OrderStatusPaid:       true,
	OrderStatusCancelled:  true,
}

var paymentStatuses = map[PaymentStatus]bool{
	PaymentStatusPending:  true,
	PaymentStatusVerified: true,
	PaymentStatusRefunded: true,
	PaymentStatusFailed:   true,
}

// ParseOrderStatus validates a status string against the known order states.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	status := OrderStatus(s)
	return status, orderStatuses[status]
}

// ParsePaymentStatus validates a status string against the known payment states.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	status := PaymentStatus(s)
	return status, paymentStatuses[status]
}
