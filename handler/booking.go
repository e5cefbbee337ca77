package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cab_booking/constants"
	"cab_booking/database"
	"cab_booking/helper"
	"cab_booking/model"
	"cab_booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PaymentExpiryWindow is how long a gateway order stays payable before
// the sweep treats the booking as abandoned.
const PaymentExpiryWindow = 30 * time.Minute

var errAlreadyCancelled = errors.New("booking is already cancelled")

// InitiateBooking claims seats, prices the booking and opens a gateway
// order. The seat claim and the booking row commit locally before the
// gateway call, a compensating release runs if that call fails.
func InitiateBooking(c *fiber.Ctx) error {
	input := c.Locals("input").(model.InitiateBookingInput)
	db := database.DB

	var user model.User
	if err := db.First(&user, "id = ? AND is_active = true", input.UserId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.USER_NOT_FOUND, err)
	}

	var trip model.Trip
	if err := db.First(&trip, input.TripId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.TRIP_NOT_FOUND, err)
	}
	if !trip.Status {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.TRIP_NOT_ACTIVE, nil)
	}

	tx := db.Begin()

	// Only seats that exist on this trip and are still free. A short list
	// means some requested seat is gone, the claim is all-or-nothing.
	var seatRecords []model.Seat
	if err := tx.Where("trip_id = ? AND seat_number IN ? AND is_booked = false",
		input.TripId, input.SelectedSeats).Find(&seatRecords).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load seats", err)
	}
	if len(seatRecords) != len(input.SelectedSeats) {
		found := make(map[string]bool, len(seatRecords))
		for _, seat := range seatRecords {
			found[seat.SeatNumber] = true
		}
		var missing []string
		for _, seatNumber := range input.SelectedSeats {
			if !found[seatNumber] {
				missing = append(missing, seatNumber)
			}
		}
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusBadRequest,
			fmt.Sprintf("%s: %s", constants.SEAT_UNAVAILABLE, strings.Join(missing, ", ")), nil)
	}

	breakdown := helper.BuildPriceBreakdown(seatRecords, input.SelectedMeal, input.Addons)

	var discount float64
	var couponCode string
	if input.CouponCode != "" {
		coupon, computed, err := helper.ValidateCoupon(db, input.CouponCode, breakdown.Subtotal, input.UserId)
		if err != nil {
			tx.Rollback()
			var couponErr *helper.CouponError
			if errors.As(err, &couponErr) {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, couponErr.Message, nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to validate coupon", err)
		}
		discount = computed
		couponCode = coupon.Code
		breakdown.Coupon = &model.CouponApplied{
			Code:        coupon.Code,
			Discount:    discount,
			FinalAmount: helper.Round2(breakdown.Subtotal - discount),
		}
	}
	finalAmount := helper.Round2(breakdown.Subtotal - discount)

	// Recomputed totals are authoritative, client-declared ones are only
	// cross-checked to catch tampering or price drift.
	if !helper.AmountsMatch(breakdown.Subtotal, input.TotalAmount) {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusBadRequest,
			fmt.Sprintf("%s: expected subtotal %.2f, received %.2f", constants.AMOUNT_MISMATCH, breakdown.Subtotal, input.TotalAmount), nil)
	}
	if !helper.AmountsMatch(finalAmount, input.FinalPayableAmount) {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusBadRequest,
			fmt.Sprintf("%s: expected final amount %.2f, received %.2f", constants.AMOUNT_MISMATCH, finalAmount, input.FinalPayableAmount), nil)
	}

	booking := model.Booking{
		PublicCode:     "BKG-" + strings.ToUpper(uuid.New().String()[:8]),
		UserId:         input.UserId,
		TripId:         input.TripId,
		PickupPointId:  input.PickupPointId,
		DropPointId:    input.DropPointId,
		Seats:          model.SeatNumbers(input.SelectedSeats),
		SubtotalAmount: breakdown.Subtotal,
		DiscountAmount: discount,
		CouponCode:     couponCode,
		TotalAmount:    finalAmount,
		PaymentStatus:  constants.PaymentPending,
		BookingStatus:  constants.BookingInitiated,
		PriceBreakdown: breakdown,
		CustomerEmail:  input.CustomerEmail,
		CustomerPhone:  input.CustomerPhone,
	}
	if input.SelectedMeal != nil {
		booking.SelectedMeal = *input.SelectedMeal
	}
	if err := tx.Create(&booking).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create booking", err)
	}

	bookedSeats := make([]model.BookedSeat, 0, len(seatRecords))
	for _, seat := range seatRecords {
		bookedSeats = append(bookedSeats, model.BookedSeat{
			BookingId:  booking.ID,
			TripId:     input.TripId,
			SeatNumber: seat.SeatNumber,
			SeatPrice:  seat.Price,
		})
	}
	if err := tx.Create(&bookedSeats).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record booked seats", err)
	}

	// The claim itself: a conditional update that re-checks availability
	// row by row. Two overlapping concurrent claims cannot both see the
	// full affected-row count, the loser aborts here.
	claim := tx.Model(&model.Seat{}).
		Where("trip_id = ? AND seat_number IN ? AND is_booked = false", input.TripId, input.SelectedSeats).
		Updates(map[string]any{"is_booked": true, "status": constants.SeatBooked})
	if claim.Error != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to claim seats", claim.Error)
	}
	if claim.RowsAffected != int64(len(input.SelectedSeats)) {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.SEAT_UNAVAILABLE, nil)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to commit booking", err)
	}

	// Gateway order after the local commit so no row locks are held
	// across the network call.
	cashfree := NewCashfree()
	orderResp, err := cashfree.CreateOrder(model.CashfreeOrderRequest{
		OrderId:       fmt.Sprintf("ORDER_%d_%d", booking.ID, time.Now().Unix()),
		OrderAmount:   finalAmount,
		OrderCurrency: "INR",
		CustomerDetails: model.CashfreeCustomerDetails{
			CustomerId:    fmt.Sprintf("CUST_%d", input.UserId),
			CustomerPhone: input.CustomerPhone,
			CustomerEmail: input.CustomerEmail,
		},
		OrderMeta: model.CashfreeOrderMeta{ReturnURL: cashfree.Config.ReturnURL},
	})
	if err != nil {
		// A booking must never sit initiated without a payable order.
		releaseBookingClaim(db, &booking)
		return utils.ErrorResponse(c, fiber.StatusBadGateway, constants.GATEWAY_ERROR, err)
	}

	expiry := time.Now().Add(PaymentExpiryWindow)
	if err := db.Model(&booking).Updates(map[string]any{
		"payment_order_id":   orderResp.OrderId,
		"payment_session_id": orderResp.PaymentSessionId,
		"payment_expiry":     expiry,
	}).Error; err != nil {
		releaseBookingClaim(db, &booking)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to persist payment order", err)
	}
	booking.PaymentOrderId = orderResp.OrderId
	booking.PaymentSessionId = orderResp.PaymentSessionId
	booking.PaymentExpiry = &expiry

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"booking":          booking,
		"paymentSessionId": orderResp.PaymentSessionId,
	})
}

func GetUserBookings(c *fiber.Ctx) error {
	userId := c.Locals("inputId").(int)

	var bookings []model.Booking
	if err := database.DB.
		Preload("Trip").
		Preload("Trip.Car").
		Preload("Trip.StartLocation").
		Preload("Trip.EndLocation").
		Where("user_id = ?", userId).
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load bookings", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, bookings)
}

func GetBookingById(c *fiber.Ctx) error {
	bookingId := c.Locals("inputId").(int)

	var booking model.Booking
	if err := database.DB.
		Preload("BookedSeats").
		Preload("Trip").
		Preload("Trip.Car").
		Preload("Trip.StartLocation").
		Preload("Trip.EndLocation").
		Preload("PickupPoint").
		Preload("DropPoint").
		First(&booking, bookingId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, booking)
}

// CancelBooking flips the booking, its BookedSeat rows and the seats
// back, all in one transaction. Refunds are handled outside this system.
func CancelBooking(c *fiber.Ctx) error {
	bookingId := c.Locals("inputId").(int)

	var booking model.Booking
	if err := database.DB.First(&booking, bookingId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, err)
	}
	if booking.BookingStatus == constants.BookingCancelled {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ALREADY_CANCELLED, nil)
	}

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		// Status-guarded so a racing cancel or webhook cannot double-release.
		res := tx.Model(&model.Booking{}).
			Where("id = ? AND booking_status <> ?", booking.ID, constants.BookingCancelled).
			Update("booking_status", constants.BookingCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadyCancelled
		}
		if err := tx.Model(&model.BookedSeat{}).
			Where("booking_id = ?", booking.ID).
			Update("is_cancelled", true).Error; err != nil {
			return err
		}
		return releaseSeats(tx, booking.TripId, booking.Seats)
	})
	if txErr != nil {
		if errors.Is(txErr, errAlreadyCancelled) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ALREADY_CANCELLED, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to cancel booking", txErr)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Booking cancelled successfully"})
}

// ReleaseExpiredBookings sweeps initiated bookings whose payment window
// lapsed and returns their seats. Runs from the cron scheduler.
func ReleaseExpiredBookings() {
	db := database.DB

	var stale []model.Booking
	if err := db.Where("booking_status = ? AND payment_expiry IS NOT NULL AND payment_expiry < ?",
		constants.BookingInitiated, time.Now()).Find(&stale).Error; err != nil {
		logrus.Errorf("failed to load expired bookings: %v", err)
		return
	}

	released := 0
	for _, booking := range stale {
		err := db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&model.Booking{}).
				Where("id = ? AND booking_status = ?", booking.ID, constants.BookingInitiated).
				Updates(map[string]any{
					"booking_status": constants.BookingCancelled,
					"payment_status": constants.PaymentFailed,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// a late webhook won the race, leave it alone
				return nil
			}
			if err := tx.Model(&model.BookedSeat{}).
				Where("booking_id = ?", booking.ID).
				Update("is_cancelled", true).Error; err != nil {
				return err
			}
			released++
			return releaseSeats(tx, booking.TripId, booking.Seats)
		})
		if err != nil {
			logrus.Errorf("failed to release expired booking %d: %v", booking.ID, err)
		}
	}
	if released > 0 {
		logrus.Infof("released %d abandoned bookings", released)
	}
}

// releaseBookingClaim is the compensating path when the gateway order
// could not be created after the local claim already committed.
func releaseBookingClaim(db *gorm.DB, booking *model.Booking) {
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Booking{}).
			Where("id = ? AND booking_status = ?", booking.ID, constants.BookingInitiated).
			Updates(map[string]any{
				"booking_status": constants.BookingCancelled,
				"payment_status": constants.PaymentFailed,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := tx.Model(&model.BookedSeat{}).
			Where("booking_id = ?", booking.ID).
			Update("is_cancelled", true).Error; err != nil {
			return err
		}
		return releaseSeats(tx, booking.TripId, booking.Seats)
	})
	if err != nil {
		logrus.Errorf("failed to release claim for booking %d: %v", booking.ID, err)
	}
}

func releaseSeats(tx *gorm.DB, tripId uint, seats model.SeatNumbers) error {
	return tx.Model(&model.Seat{}).
		Where("trip_id = ? AND seat_number IN ?", tripId, []string(seats)).
		Updates(map[string]any{"is_booked": false, "status": constants.SeatAvailable}).Error
}
