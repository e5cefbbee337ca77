package constants

const (
	ERROR_INPUT              = "Invalid request body"
	DATA_INPUT_IS_NOT_NUMBER = "Parameter must be a number"
	NOT_ADMIN                = "Admin permission required"

	USER_NOT_FOUND    = "User not found"
	TRIP_NOT_FOUND    = "Trip not found"
	TRIP_NOT_ACTIVE   = "Trip is not active"
	BOOKING_NOT_FOUND = "Booking not found"
	COUPON_NOT_FOUND  = "Invalid or expired coupon code"

	SEAT_UNAVAILABLE  = "Some selected seats are not available"
	AMOUNT_MISMATCH   = "Amount mismatch"
	ALREADY_CANCELLED = "Booking is already cancelled"
	GATEWAY_ERROR     = "Failed to create payment order"
)

// Booking lifecycle. "active" survives from an earlier schema revision and
// is kept in the enum for old rows, it is never assigned by current code.
const (
	BookingInitiated = "initiated"
	BookingActive    = "active"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

const (
	SeatAvailable = "available"
	SeatBooked    = "booked"
)

const (
	DiscountPercentage = "PERCENTAGE"
	DiscountFlat       = "FLAT"
)
