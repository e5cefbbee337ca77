package helper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cab_booking/constants"
	"cab_booking/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	CouponNotFound            = "NotFound"
	CouponExpired             = "Expired"
	CouponUsageLimitReached   = "UsageLimitReached"
	CouponBelowMinimumOrder   = "BelowMinimumOrder"
	CouponPerUserLimitReached = "PerUserLimitReached"
)

// CouponError carries the specific rejection reason so handlers can
// surface it verbatim.
type CouponError struct {
	Reason  string
	Message string
}

func (e *CouponError) Error() string {
	return e.Message
}

// ValidateCoupon runs the rejection checks in order and returns the
// coupon with its computed discount for the given amount. userId may be
// zero, the per-user cap is then skipped.
func ValidateCoupon(db *gorm.DB, code string, amount float64, userId uint) (*model.Coupon, float64, error) {
	var coupon model.Coupon
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if err := db.Where("code = ?", normalized).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, &CouponError{Reason: CouponNotFound, Message: "Invalid or expired coupon code"}
		}
		return nil, 0, err
	}

	if !coupon.IsWithinWindow(time.Now()) {
		return nil, 0, &CouponError{Reason: CouponExpired, Message: "Invalid or expired coupon code"}
	}

	if coupon.TotalUsageLimit != nil && coupon.TotalUsed >= *coupon.TotalUsageLimit {
		return nil, 0, &CouponError{Reason: CouponUsageLimitReached, Message: "This coupon has reached its maximum usage limit"}
	}

	if coupon.MinOrderAmount != nil && amount < *coupon.MinOrderAmount {
		return nil, 0, &CouponError{
			Reason:  CouponBelowMinimumOrder,
			Message: fmt.Sprintf("Minimum order amount of %.2f is required for this coupon", *coupon.MinOrderAmount),
		}
	}

	if userId > 0 && coupon.UsageLimitPerUser != nil {
		var used int64
		if err := db.Model(&model.Booking{}).
			Where("user_id = ? AND coupon_code = ? AND booking_status <> ?", userId, coupon.Code, constants.BookingCancelled).
			Count(&used).Error; err != nil {
			return nil, 0, err
		}
		if used >= int64(*coupon.UsageLimitPerUser) {
			return nil, 0, &CouponError{Reason: CouponPerUserLimitReached, Message: "You have reached the maximum usage limit for this coupon"}
		}
	}

	return &coupon, CalculateDiscount(&coupon, amount), nil
}

// RedeemCoupon bumps the usage counter with the cap re-checked inside the
// UPDATE itself, so concurrent redemptions near the cap cannot oversell.
// Runs inside the booking-confirmation transaction.
func RedeemCoupon(tx *gorm.DB, code string) error {
	res := tx.Model(&model.Coupon{}).
		Where("code = ? AND (total_usage_limit IS NULL OR total_used < total_usage_limit)", code).
		Update("total_used", gorm.Expr("total_used + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		logrus.Warnf("coupon %s hit its usage cap before redemption was recorded", code)
	}
	return nil
}
