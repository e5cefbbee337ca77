package helper

import (
	"testing"

	"cab_booking/model"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.56, Round2(10.555))
	assert.Equal(t, 10.55, Round2(10.554))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 1098.0, Round2(599.0+499.0))
}

func TestAmountsMatch(t *testing.T) {
	assert.True(t, AmountsMatch(100.00, 100.00))
	assert.True(t, AmountsMatch(100.00, 100.01))
	assert.True(t, AmountsMatch(100.01, 100.00))
	assert.False(t, AmountsMatch(100.00, 100.02))
	assert.False(t, AmountsMatch(100.00, 99.98))
}

func TestBuildPriceBreakdown(t *testing.T) {
	seats := []model.Seat{
		{SeatNumber: "S1", Price: 599},
		{SeatNumber: "S2", Price: 499},
	}

	t.Run("seats only", func(t *testing.T) {
		breakdown := BuildPriceBreakdown(seats, nil, nil)
		assert.Equal(t, 1098.0, breakdown.SeatTotal)
		assert.Equal(t, 1098.0, breakdown.Subtotal)
		assert.Empty(t, breakdown.Extras)
		assert.Nil(t, breakdown.Coupon)
	})

	t.Run("with meal and addons", func(t *testing.T) {
		meal := &model.MealSelection{Type: "Veg Thali", Price: 150}
		addons := []model.ExtraCharge{
			{Type: "Blanket", Price: 50},
			{Type: "Free Water", Price: 0}, // zero-priced extras are dropped
		}
		breakdown := BuildPriceBreakdown(seats, meal, addons)
		assert.Equal(t, 1098.0, breakdown.SeatTotal)
		assert.Equal(t, 1298.0, breakdown.Subtotal)
		assert.Len(t, breakdown.Extras, 2)
		assert.Equal(t, "Veg Thali", breakdown.Extras[0].Type)
	})

	t.Run("untyped extras get default labels", func(t *testing.T) {
		meal := &model.MealSelection{Price: 100}
		addons := []model.ExtraCharge{{Price: 25}}
		breakdown := BuildPriceBreakdown(seats, meal, addons)
		assert.Equal(t, "Meal", breakdown.Extras[0].Type)
		assert.Equal(t, "Addon", breakdown.Extras[1].Type)
	})
}

func TestCalculateDiscount(t *testing.T) {
	maxDiscount := 100.0

	t.Run("percentage", func(t *testing.T) {
		coupon := &model.Coupon{DiscountType: "PERCENTAGE", DiscountValue: 10}
		assert.Equal(t, 109.8, CalculateDiscount(coupon, 1098))
	})

	t.Run("percentage capped at max discount", func(t *testing.T) {
		coupon := &model.Coupon{DiscountType: "PERCENTAGE", DiscountValue: 20, MaxDiscountAmount: &maxDiscount}
		assert.Equal(t, 100.0, CalculateDiscount(coupon, 1000))
	})

	t.Run("flat", func(t *testing.T) {
		coupon := &model.Coupon{DiscountType: "FLAT", DiscountValue: 50}
		assert.Equal(t, 50.0, CalculateDiscount(coupon, 1098))
	})

	t.Run("flat never exceeds order amount", func(t *testing.T) {
		coupon := &model.Coupon{DiscountType: "FLAT", DiscountValue: 500}
		assert.Equal(t, 300.0, CalculateDiscount(coupon, 300))
	})

	t.Run("nil coupon", func(t *testing.T) {
		assert.Equal(t, 0.0, CalculateDiscount(nil, 1000))
	})
}
