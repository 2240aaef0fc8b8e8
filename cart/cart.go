// Package cart models resolved cart lines and the store that supplies them.
package cart

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates the requested cart could not be located.
var ErrNotFound = errors.New("cart not found")

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// Product is the product record a cart line has been resolved against.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

// Item is one cart line joined with its product. Quantity is at least 1
// and Product is non-nil for any line a Store hands out; the pricing
// engine treats a violation as a caller contract error.
type Item struct {
	ID       string   `json:"id"`
	Quantity int      `json:"quantity"`
	Product  *Product `json:"product"`
}

// Extended returns the line's extended price, unit price times quantity.
func (i Item) Extended() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Store supplies a user's cart items with product price and category
// already resolved.
type Store interface {
	ItemsForUser(ctx context.Context, userID string) ([]Item, error)
}
