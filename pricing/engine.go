// Package pricing implements the checkout discount engine: a pure
// computation from cart items and a campaign selection to a final total,
// an itemized breakdown, and the list of applied discounts.
package pricing

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/siamstore/checkout-pricing/campaign"
	"github.com/siamstore/checkout-pricing/cart"
	"github.com/siamstore/checkout-pricing/money"
)

// ErrInvalidInput is returned when an item violates the store contract:
// missing product, negative price, or quantity below one.
var ErrInvalidInput = errors.New("invalid input")

var (
	hundred = decimal.NewFromInt(100)
	// pointsCapRate caps a Points discount at 20% of the running total.
	pointsCapRate = decimal.New(2, -1)
)

// Engine applies campaign discounts to cart items. The zero value is
// ready to use; Log enables per-step debug events.
type Engine struct {
	Log *zerolog.Logger
}

func (e *Engine) logger() *zerolog.Logger {
	if e == nil || e.Log == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return e.Log
}

// Apply runs the discount computation with a silent engine.
func Apply(items []cart.Item, sel campaign.Selection) (*Result, error) {
	var e Engine
	return e.Apply(items, sel)
}

// state is the fold shared by the three campaign steps: the working item
// copies, the running total, the cumulative discount, and the cart-wide
// discount entries collected so far.
type state struct {
	items    []PricedItem
	total    decimal.Decimal
	discount decimal.Decimal
	cart     []Entry
}

// Apply computes the pricing result for the given cart and selection.
// Steps always run in the order Coupon, On-Top, Seasonal regardless of
// input; items are copied up front and caller data is never mutated.
func (e *Engine) Apply(items []cart.Item, sel campaign.Selection) (*Result, error) {
	st, err := newState(items)
	if err != nil {
		return nil, err
	}

	e.applyCoupon(st, sel)
	e.applyOnTop(st, sel)
	e.applySeasonal(st, sel)

	final := st.total
	if final.IsNegative() {
		final = decimal.Zero
	}
	final = final.Round(2)

	res := &Result{
		Final:        final,
		DiscountCart: st.cart,
		Itemized:     st.items,
		Discount:     st.discount,
	}
	if sel.OnTop != nil {
		res.Category = sel.OnTop.Category
	}
	e.logger().Debug().
		Str("final", final.String()).
		Str("discount", st.discount.String()).
		Int("entries", len(st.cart)).
		Msg("discounts applied")
	return res, nil
}

func newState(items []cart.Item) (*state, error) {
	st := &state{
		items:    make([]PricedItem, 0, len(items)),
		total:    decimal.Zero,
		discount: decimal.Zero,
		cart:     []Entry{},
	}
	for _, it := range items {
		if it.Product == nil {
			return nil, fmt.Errorf("item %s: product not resolved: %w", it.ID, ErrInvalidInput)
		}
		if it.Product.Price.IsNegative() {
			return nil, fmt.Errorf("item %s: negative price: %w", it.ID, ErrInvalidInput)
		}
		if it.Quantity < 1 {
			return nil, fmt.Errorf("item %s: quantity must be at least 1: %w", it.ID, ErrInvalidInput)
		}
		extended := it.Extended()
		st.items = append(st.items, PricedItem{
			ID:       it.ID,
			Name:     it.Product.Name,
			Category: it.Product.Category,
			Quantity: it.Quantity,
			Price:    extended,
			OldPrice: extended,
		})
		st.total = st.total.Add(extended)
	}
	return st, nil
}

func (st *state) retotal() {
	total := decimal.Zero
	for _, it := range st.items {
		total = total.Add(it.Price)
	}
	st.total = total
}

// reduceItem clamps the raw reduction to the item's current price so the
// price never goes negative, applies it, and returns the amount removed.
func reduceItem(it *PricedItem, raw decimal.Decimal) decimal.Decimal {
	applied := decimal.Min(it.Price, raw)
	it.Price = it.Price.Sub(applied)
	return applied
}

func (e *Engine) logStep(slot string, c *campaign.Campaign, amount decimal.Decimal) {
	e.logger().Debug().
		Str("slot", slot).
		Str("campaign", c.Name).
		Str("type", string(c.Type)).
		Str("amount", amount.String()).
		Msg("discount step applied")
}

// applyCoupon handles the Coupon slot. When an On-Top percentage campaign
// is also selected the coupon is applied per item so the later step sees
// already-reduced prices; otherwise it is taken off the total directly.
func (e *Engine) applyCoupon(st *state, sel campaign.Selection) {
	coupon := sel.Coupon
	if coupon == nil {
		return
	}
	onTopPercent := sel.OnTop != nil && sel.OnTop.Type == campaign.TypePercentage

	switch coupon.Type {
	case campaign.TypeAmount:
		if onTopPercent {
			totalBefore := st.total
			if totalBefore.IsZero() {
				// Weights are undefined on a zero total; distribute nothing.
				return
			}
			stepTotal := decimal.Zero
			for i := range st.items {
				it := &st.items[i]
				weight := it.Price.Div(totalBefore)
				applied := reduceItem(it, weight.Mul(coupon.Discount))
				it.FixedCouponOff = "-" + money.Format(applied)
				stepTotal = stepTotal.Add(applied)
			}
			st.discount = st.discount.Add(stepTotal)
			st.retotal()
			e.logStep("Coupon", coupon, stepTotal)
		} else {
			st.total = st.total.Sub(coupon.Discount)
			st.discount = st.discount.Add(coupon.Discount)
			st.cart = append(st.cart, Entry{
				Campaigns: "Fixed amount discount",
				Discount:  money.Format(coupon.Discount),
			})
			e.logStep("Coupon", coupon, coupon.Discount)
		}
	case campaign.TypePercentage:
		rate := coupon.Discount.Div(hundred)
		if onTopPercent {
			stepTotal := decimal.Zero
			for i := range st.items {
				it := &st.items[i]
				applied := reduceItem(it, it.Price.Mul(rate))
				it.PercentCouponOff = fmt.Sprintf("-%s (%s)", money.Format(applied), money.FormatPercent(coupon.Discount))
				stepTotal = stepTotal.Add(applied)
			}
			st.discount = st.discount.Add(stepTotal)
			st.retotal()
			e.logStep("Coupon", coupon, stepTotal)
		} else {
			amount := st.total.Mul(rate)
			st.total = st.total.Sub(amount)
			st.discount = st.discount.Add(amount)
			st.cart = append(st.cart, Entry{
				Campaigns: fmt.Sprintf("Percentage discount (%s)", money.FormatPercent(coupon.Discount)),
				Discount:  money.Format(amount),
			})
			e.logStep("Coupon", coupon, amount)
		}
	}
}

// applyOnTop handles the On-Top slot. A category-scoped percentage runs
// here even when the same campaign already steered the coupon step; the
// two applications compound.
func (e *Engine) applyOnTop(st *state, sel campaign.Selection) {
	onTop := sel.OnTop
	if onTop == nil {
		return
	}
	switch {
	case onTop.Type == campaign.TypePercentage && onTop.Category != "":
		rate := onTop.Discount.Div(hundred)
		stepTotal := decimal.Zero
		for i := range st.items {
			it := &st.items[i]
			if it.Category != onTop.Category {
				continue
			}
			applied := reduceItem(it, it.Price.Mul(rate))
			it.PercentOnTopOff = fmt.Sprintf("-%s (%s)", money.Format(applied), money.FormatPercent(onTop.Discount))
			stepTotal = stepTotal.Add(applied)
		}
		st.discount = st.discount.Add(stepTotal)
		st.retotal()
		e.logStep("On_Top", onTop, stepTotal)
	case onTop.Type == campaign.TypePoints:
		maxDiscount := st.total.Mul(pointsCapRate).Floor()
		if maxDiscount.IsNegative() {
			maxDiscount = decimal.Zero
		}
		applied := decimal.Min(onTop.Discount, maxDiscount)
		st.total = st.total.Sub(applied)
		st.discount = st.discount.Add(applied)
		st.cart = append(st.cart, Entry{
			Campaigns: "Discount by points (capped at 20%)",
			Discount:  money.Format(applied),
		})
		e.logStep("On_Top", onTop, applied)
	}
}

// applySeasonal handles the Seasonal slot: a fixed discount granted once
// per full spending increment of the running total.
func (e *Engine) applySeasonal(st *state, sel campaign.Selection) {
	seasonal := sel.Seasonal
	if seasonal == nil || seasonal.Type != campaign.TypeEvery || !seasonal.Every.IsPositive() {
		return
	}
	times := st.total.Div(seasonal.Every).Floor()
	if times.IsNegative() {
		times = decimal.Zero
	}
	amount := times.Mul(seasonal.Discount)
	st.total = st.total.Sub(amount)
	st.discount = st.discount.Add(amount)
	st.cart = append(st.cart, Entry{
		Campaigns: fmt.Sprintf("Special campaigns (%s at every %s)", money.Format(seasonal.Discount), money.Format(seasonal.Every)),
		Discount:  money.Format(amount),
	})
	e.logStep("Seasonal", seasonal, amount)
}
