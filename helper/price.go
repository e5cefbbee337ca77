package helper

import (
	"math"

	"cab_booking/constants"
	"cab_booking/model"
)

// AmountEpsilon is the tolerance when cross-checking client-declared
// amounts against recomputed ones.
const AmountEpsilon = 0.01

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func AmountsMatch(a, b float64) bool {
	return math.Abs(a-b) <= AmountEpsilon
}

// BuildPriceBreakdown itemizes claimed seat prices plus optional meal and
// addon extras. Pure computation, no I/O.
func BuildPriceBreakdown(seats []model.Seat, meal *model.MealSelection, addons []model.ExtraCharge) model.PriceBreakdown {
	breakdown := model.PriceBreakdown{Extras: []model.ExtraCharge{}}

	for _, seat := range seats {
		breakdown.SeatTotal += seat.Price
	}
	breakdown.SeatTotal = Round2(breakdown.SeatTotal)

	var extrasTotal float64
	if meal != nil && meal.Price > 0 {
		mealType := meal.Type
		if mealType == "" {
			mealType = "Meal"
		}
		breakdown.Extras = append(breakdown.Extras, model.ExtraCharge{Type: mealType, Price: meal.Price})
		extrasTotal += meal.Price
	}
	for _, addon := range addons {
		if addon.Price <= 0 {
			continue
		}
		addonType := addon.Type
		if addonType == "" {
			addonType = "Addon"
		}
		breakdown.Extras = append(breakdown.Extras, model.ExtraCharge{Type: addonType, Price: addon.Price})
		extrasTotal += addon.Price
	}

	breakdown.Subtotal = Round2(breakdown.SeatTotal + extrasTotal)
	return breakdown
}

// CalculateDiscount applies the coupon's rule to amount. FLAT never
// exceeds the amount itself, PERCENTAGE is capped at MaxDiscountAmount.
func CalculateDiscount(coupon *model.Coupon, amount float64) float64 {
	if coupon == nil {
		return 0
	}

	var discount float64
	if coupon.DiscountType == constants.DiscountPercentage {
		discount = amount * coupon.DiscountValue / 100
		if coupon.MaxDiscountAmount != nil && discount > *coupon.MaxDiscountAmount {
			discount = *coupon.MaxDiscountAmount
		}
	} else {
		discount = math.Min(coupon.DiscountValue, amount)
	}
	return Round2(discount)
}
