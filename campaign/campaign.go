// Package campaign defines the promotional campaign selection accepted at
// the pricing boundary and its ingestion-time validation.
package campaign

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	validator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Type identifies how a campaign's discount value is interpreted.
type Type string

// Recognized campaign types. The pricing engine silently ignores a
// campaign whose type matches none of these.
const (
	TypeAmount     Type = "Amount"
	TypePercentage Type = "Percentage"
	TypePoints     Type = "Points"
	TypeEvery      Type = "Every"
)

// Known reports whether t is one of the recognized campaign types.
func (t Type) Known() bool {
	switch t {
	case TypeAmount, TypePercentage, TypePoints, TypeEvery:
		return true
	}
	return false
}

// Campaign describes a single promotional campaign.
type Campaign struct {
	Name     string          `json:"name" validate:"required"`
	Type     Type            `json:"type" validate:"required,oneof=Amount Percentage Points Every"`
	Discount decimal.Decimal `json:"discount" validate:"gte=0"`
	// Category scopes an On-Top percentage campaign to matching products.
	Category string `json:"category,omitempty"`
	// Every is the spending increment for Seasonal campaigns.
	Every decimal.Decimal `json:"every,omitempty" validate:"required_if=Type Every,gte=0"`
}

// Selection carries at most one campaign per slot. JSON keys follow the
// wire format accepted from callers.
type Selection struct {
	Coupon   *Campaign `json:"Coupon,omitempty"`
	OnTop    *Campaign `json:"On_Top,omitempty"`
	Seasonal *Campaign `json:"Seasonal,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Validate checks every present slot against the recognized campaign
// variants. The pricing engine itself treats unknown types as a no-op;
// callers that want strict ingestion run Validate once when decoding.
func (s Selection) Validate() error {
	slots := []struct {
		name     string
		campaign *Campaign
	}{
		{"Coupon", s.Coupon},
		{"On_Top", s.OnTop},
		{"Seasonal", s.Seasonal},
	}
	for _, slot := range slots {
		if slot.campaign == nil {
			continue
		}
		if err := validate.Struct(slot.campaign); err != nil {
			return fmt.Errorf("campaign %s: %w", slot.name, err)
		}
	}
	return nil
}

// Decode reads a JSON selection payload and validates it.
func Decode(r io.Reader) (Selection, error) {
	var s Selection
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Selection{}, fmt.Errorf("decode campaigns: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Selection{}, err
	}
	return s, nil
}
