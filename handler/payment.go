package handler

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"cab_booking/constants"
	"cab_booking/database"
	"cab_booking/helper"
	"cab_booking/model"
	"cab_booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CashfreeWebhook reconciles gateway payment events into booking state.
// It always answers 200: a non-2xx makes Cashfree retry, and every
// state change below is idempotent, so acking is always safe.
func CashfreeWebhook(c *fiber.Ctx) error {
	cashfree := NewCashfree()
	raw := c.Body()

	if !cashfree.VerifyWebhookSignature(c.Get("x-webhook-timestamp"), raw, c.Get("x-webhook-signature")) {
		logrus.Warn("webhook signature verification failed")
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "ok"})
	}

	var event model.CashfreeWebhookEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		logrus.Warnf("unparseable webhook payload: %v", err)
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "ok"})
	}

	orderId := event.Data.Order.OrderId
	bookingId, ok := parseBookingId(orderId)
	if !ok {
		logrus.Warnf("webhook with unrecognized order id %q", orderId)
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "ok"})
	}

	// Match on the (id, order id) pair so a stale order id from a
	// reissued booking cannot flip the wrong row.
	var booking model.Booking
	if err := database.DB.First(&booking, "id = ? AND payment_order_id = ?", bookingId, orderId).Error; err != nil {
		logrus.Warnf("webhook for unknown booking, order id %q", orderId)
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "ok"})
	}

	switch MapPaymentStatus(event.Data.Order.OrderStatus) {
	case constants.PaymentCompleted:
		applyPaymentSuccess(database.DB, &booking,
			event.Data.Payment.PaymentMethod, event.Data.Payment.CfPaymentId.String())
	case constants.PaymentFailed:
		applyPaymentFailure(database.DB, &booking)
	default:
		// PENDING and friends carry no state to reconcile yet
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "ok"})
}

// GetOrderStatus is the client-polled fallback for missed webhooks: it
// asks the gateway for the order directly and reconciles the same way.
func GetOrderStatus(c *fiber.Ctx) error {
	orderId := c.Params("orderId")
	if orderId == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, nil)
	}

	var booking model.Booking
	if err := database.DB.First(&booking, "payment_order_id = ?", orderId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, err)
	}

	cashfree := NewCashfree()
	order, err := cashfree.GetOrder(orderId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Failed to fetch order status", err)
	}

	switch MapPaymentStatus(order.OrderStatus) {
	case constants.PaymentCompleted:
		applyPaymentSuccess(database.DB, &booking, "", "")
	case constants.PaymentFailed:
		applyPaymentFailure(database.DB, &booking)
	}

	// reload so the caller sees the post-reconcile state
	if err := database.DB.First(&booking, booking.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to reload booking", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"orderStatus":   order.OrderStatus,
		"bookingStatus": booking.BookingStatus,
		"paymentStatus": booking.PaymentStatus,
	})
}

// applyPaymentSuccess confirms the booking via a status-guarded update.
// Replays and late events are no-ops: a confirmed booking stays
// confirmed, a cancelled one is never revived. Coupon redemption only
// counts when this call is the one that actually transitioned.
func applyPaymentSuccess(db *gorm.DB, booking *model.Booking, paymentMode, transactionId string) {
	var transitioned bool
	err := db.Transaction(func(tx *gorm.DB) error {
		fields := map[string]any{
			"booking_status": constants.BookingConfirmed,
			"payment_status": constants.PaymentCompleted,
		}
		if paymentMode != "" {
			fields["payment_mode"] = paymentMode
		}
		if transactionId != "" {
			fields["transaction_id"] = transactionId
		}
		res := tx.Model(&model.Booking{}).
			Where("id = ? AND booking_status NOT IN ?", booking.ID,
				[]string{constants.BookingCancelled, constants.BookingConfirmed}).
			Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		transitioned = res.RowsAffected > 0
		if transitioned && booking.CouponCode != "" {
			return helper.RedeemCoupon(tx, booking.CouponCode)
		}
		return nil
	})
	if err != nil {
		logrus.Errorf("failed to confirm booking %d: %v", booking.ID, err)
		return
	}
	if !transitioned {
		return
	}
	logrus.Infof("booking %s confirmed, order %s", booking.PublicCode, booking.PaymentOrderId)

	if booking.CustomerEmail != "" {
		go sendConfirmationEmail(booking.ID)
	}
}

// applyPaymentFailure releases the claim for a failed or expired
// payment. Guarded on initiated so it cannot undo a confirmation or
// re-release an already cancelled booking.
func applyPaymentFailure(db *gorm.DB, booking *model.Booking) {
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
		logrus.Errorf("failed to apply payment failure for booking %d: %v", booking.ID, err)
		return
	}
	logrus.Infof("payment failed for booking %s, order %s", booking.PublicCode, booking.PaymentOrderId)
}

func sendConfirmationEmail(bookingId uint) {
	var booking model.Booking
	if err := database.DB.
		Preload("Trip").
		Preload("Trip.StartLocation").
		Preload("Trip.EndLocation").
		Preload("PickupPoint").
		Preload("DropPoint").
		First(&booking, bookingId).Error; err != nil {
		logrus.Errorf("failed to load booking %d for confirmation email: %v", bookingId, err)
		return
	}

	data := utils.BookingConfirmationData{
		BookingCode: booking.PublicCode,
		Seats:       strings.Join(booking.Seats, ", "),
		TotalAmount: booking.TotalAmount,
	}
	if booking.Trip != nil {
		data.Route = booking.Trip.StartLocation.Name + " - " + booking.Trip.EndLocation.Name
		data.StartTime = booking.Trip.StartTime.Format(time.RFC1123)
	}
	if booking.PickupPoint != nil {
		data.PickupPoint = booking.PickupPoint.Name
	}
	if booking.DropPoint != nil {
		data.DropPoint = booking.DropPoint.Name
	}
	utils.SendBookingConfirmation(booking.CustomerEmail, data)
}

// parseBookingId extracts the booking id out of an ORDER_<id>_<ts>
// gateway order id.
func parseBookingId(orderId string) (uint, bool) {
	parts := strings.Split(orderId, "_")
	if len(parts) != 3 || parts[0] != "ORDER" {
		return 0, false
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
