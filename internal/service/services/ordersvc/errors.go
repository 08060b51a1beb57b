package ordersvc

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyOrder is returned when the order contains no items.
	ErrEmptyOrder = errors.New("order must contain at least one item")
	// ErrInvalidItem is returned when an item has a malformed product id
	// or a non-positive quantity.
	ErrInvalidItem = errors.New("invalid order item")
	// ErrOrderNotFound is returned when the order does not exist or
	// belongs to another user.
	ErrOrderNotFound = errors.New("order not found")
	// ErrTransactionFailure is returned when the order transaction could
	// not be completed. No partial state is left behind.
	ErrTransactionFailure = errors.New("order transaction failed")
)

// ProductNotFoundError is returned when an ordered product does not exist.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// InsufficientStockError is returned when the requested quantity exceeds
// the available stock of a product.
type InsufficientStockError struct {
	ProductID int64
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf(
		"insufficient stock for product %d: available %d, requested %d",
		e.ProductID, e.Available, e.Requested,
	)
}
