package order

import (
	"errors"
	"fmt"
)

var (
	ErrCartEmpty     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
	ErrUserNotFound  = errors.New("user not found")
)

// InsufficientStockError names the first product that could not be
// reserved, so the buyer-facing message can point at it.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q", e.ProductName)
}
