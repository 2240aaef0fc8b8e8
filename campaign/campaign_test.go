package campaign_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/siamstore/checkout-pricing/campaign"
)

func TestDecodeFullSelection(t *testing.T) {
	payload := `{
		"Coupon":   {"name": "WELCOME", "type": "Amount", "discount": 50},
		"On_Top":   {"name": "CAT5", "type": "Percentage", "discount": 5, "category": "Clothing"},
		"Seasonal": {"name": "MIDYEAR", "type": "Every", "discount": 20, "every": 100}
	}`
	sel, err := campaign.Decode(strings.NewReader(payload))
	require.NoError(t, err)

	require.NotNil(t, sel.Coupon)
	require.Equal(t, campaign.TypeAmount, sel.Coupon.Type)
	require.True(t, sel.Coupon.Discount.Equal(decimal.NewFromInt(50)))

	require.NotNil(t, sel.OnTop)
	require.Equal(t, "Clothing", sel.OnTop.Category)

	require.NotNil(t, sel.Seasonal)
	require.True(t, sel.Seasonal.Every.Equal(decimal.NewFromInt(100)))
}

func TestDecodeEmptySelection(t *testing.T) {
	sel, err := campaign.Decode(strings.NewReader(`{}`))
	require.NoError(t, err)
	require.Nil(t, sel.Coupon)
	require.Nil(t, sel.OnTop)
	require.Nil(t, sel.Seasonal)
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	payload := `{"Coupon": {"name": "X", "type": "Cashback", "discount": 10}}`
	_, err := campaign.Decode(strings.NewReader(payload))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Coupon")
}

func TestDecodeRejectsNegativeDiscount(t *testing.T) {
	payload := `{"On_Top": {"name": "X", "type": "Points", "discount": -5}}`
	_, err := campaign.Decode(strings.NewReader(payload))
	require.Error(t, err)
}

func TestDecodeRejectsEveryWithoutIncrement(t *testing.T) {
	payload := `{"Seasonal": {"name": "X", "type": "Every", "discount": 20}}`
	_, err := campaign.Decode(strings.NewReader(payload))
	require.Error(t, err)
}

func TestDecodeRejectsMissingName(t *testing.T) {
	payload := `{"Coupon": {"type": "Amount", "discount": 10}}`
	_, err := campaign.Decode(strings.NewReader(payload))
	require.Error(t, err)
}

func TestDecodeBadJSON(t *testing.T) {
	_, err := campaign.Decode(strings.NewReader(`{"Coupon":`))
	require.Error(t, err)
}

func TestTypeKnown(t *testing.T) {
	for _, known := range []campaign.Type{campaign.TypeAmount, campaign.TypePercentage, campaign.TypePoints, campaign.TypeEvery} {
		require.True(t, known.Known(), string(known))
	}
	require.False(t, campaign.Type("Cashback").Known())
	require.False(t, campaign.Type("").Known())
}
