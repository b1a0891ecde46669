package repositories

import "errors"

// ErrNotFound is returned by every repository when a record does not exist.
// Services translate it into their domain-specific not-found errors.
var ErrNotFound = errors.New("record not found")

// ErrStockConflict is returned by ProductRepository.DecrementStock when the
// conditional update matched no row because the remaining stock was below the
// requested quantity.
var ErrStockConflict = errors.New("stock below requested quantity")
