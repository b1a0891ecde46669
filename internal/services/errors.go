package services

import "errors"

// Domain error taxonomy. Handlers map these onto 4xx responses; anything
// else is treated as an internal error.
var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrProductNotFound   = errors.New("product not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrSlipNotFound      = errors.New("slip not found")
	ErrGemstoneNotFound  = errors.New("gemstone not found")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrRateUnavailable   = errors.New("gold rate unavailable")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrIllegalTransition = errors.New("illegal status transition")
)
