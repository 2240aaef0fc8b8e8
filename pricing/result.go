package pricing

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Entry records one cart-wide discount in the order it was applied.
type Entry struct {
	Campaigns string `json:"campaigns"`
	Discount  string `json:"discount"`
}

// PricedItem is a cart line carried through the computation. Price is the
// extended price (unit price times quantity) after the reductions applied
// so far; OldPrice is the extended price before any discount.
type PricedItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	OldPrice decimal.Decimal `json:"oldPrice"`

	// Display annotations, set only by steps that reduced this item.
	FixedCouponOff   string `json:"discountFixCoupon,omitempty"`
	PercentCouponOff string `json:"discountPercentCoupon,omitempty"`
	PercentOnTopOff  string `json:"discountPercentOnTop,omitempty"`
}

// Result is the complete outcome of one discount computation.
type Result struct {
	// Final is the payable total, clamped to zero and rounded to two places.
	Final decimal.Decimal `json:"final"`
	// DiscountCart lists cart-wide discounts in application order.
	DiscountCart []Entry `json:"discountCart"`
	// Itemized preserves the input item order.
	Itemized []PricedItem `json:"itemized"`
	// Category is the On-Top campaign's category when one was supplied.
	Category string `json:"category,omitempty"`
	// Discount is the cumulative amount removed across all steps.
	Discount decimal.Decimal `json:"discount"`
}

// MarshalJSON renders final and discount as plain JSON numbers.
func (r Result) MarshalJSON() ([]byte, error) {
	type alias Result
	return json.Marshal(struct {
		alias
		Final    json.Number `json:"final"`
		Discount json.Number `json:"discount"`
	}{
		alias:    alias(r),
		Final:    json.Number(r.Final.String()),
		Discount: json.Number(r.Discount.String()),
	})
}
