package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// SeatNumbers is stored as a JSON array column.
type SeatNumbers []string

func (s SeatNumbers) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *SeatNumbers) Scan(value any) error {
	return scanJSON(value, s)
}

// ExtraCharge is one itemized extra (meal or addon) inside a price breakdown.
type ExtraCharge struct {
	Type  string  `json:"type"`
	Price float64 `json:"price"`
}

type MealSelection struct {
	Type  string  `json:"type"`
	Price float64 `json:"price"`
}

func (m MealSelection) Value() (driver.Value, error) {
	if m.Type == "" && m.Price == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *MealSelection) Scan(value any) error {
	if value == nil {
		*m = MealSelection{}
		return nil
	}
	return scanJSON(value, m)
}

// CouponApplied records the coupon folded into a booking's price.
type CouponApplied struct {
	Code        string  `json:"code"`
	Discount    float64 `json:"discount"`
	FinalAmount float64 `json:"finalAmount"`
}

// PriceBreakdown is the typed shape persisted on the booking so the
// pricing contract survives later seat-price or coupon edits.
type PriceBreakdown struct {
	SeatTotal float64        `json:"seatTotal"`
	Extras    []ExtraCharge  `json:"extras"`
	Subtotal  float64        `json:"subtotal"`
	Coupon    *CouponApplied `json:"coupon,omitempty"`
}

func (b PriceBreakdown) Value() (driver.Value, error) {
	return json.Marshal(b)
}

func (b *PriceBreakdown) Scan(value any) error {
	if value == nil {
		*b = PriceBreakdown{}
		return nil
	}
	return scanJSON(value, b)
}

func scanJSON(value, dest any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("unsupported type for JSON column")
	}
}

type Booking struct {
	DTO
	PublicCode    string        `gorm:"uniqueIndex;size:20" json:"publicCode"`
	UserId        uint          `gorm:"not null;index" json:"userId"`
	User          User          `gorm:"foreignKey:UserId" json:"-"`
	TripId        uint          `gorm:"not null;index" json:"tripId"`
	Trip          *Trip         `gorm:"foreignKey:TripId;constraint:OnDelete:CASCADE" json:"trip,omitempty"`
	PickupPointId uint          `json:"pickupPointId"`
	PickupPoint   *PickupPoint  `gorm:"foreignKey:PickupPointId" json:"pickupPoint,omitempty"`
	DropPointId   uint          `json:"dropPointId"`
	DropPoint     *DropPoint    `gorm:"foreignKey:DropPointId" json:"dropPoint,omitempty"`
	Seats         SeatNumbers   `gorm:"type:jsonb;not null" json:"seats"`
	BookedSeats   []BookedSeat  `gorm:"foreignKey:BookingId;constraint:OnDelete:CASCADE" json:"bookedSeats,omitempty"`

	SubtotalAmount float64 `gorm:"not null" json:"subtotalAmount"`
	DiscountAmount float64 `gorm:"default:0" json:"discountAmount"`
	CouponCode     string  `json:"couponCode,omitempty"`
	TotalAmount    float64 `gorm:"not null" json:"totalAmount"` // final payable, after discount

	PaymentStatus string `gorm:"default:'pending'" json:"paymentStatus"` // pending, completed, failed
	BookingStatus string `gorm:"default:'initiated'" json:"bookingStatus"`

	PaymentOrderId   string     `gorm:"index" json:"paymentOrderId,omitempty"`
	PaymentSessionId string     `json:"paymentSessionId,omitempty"`
	PaymentMode      string     `json:"paymentMode,omitempty"`
	TransactionId    string     `json:"transactionId,omitempty"`
	PaymentExpiry    *time.Time `json:"paymentExpiry,omitempty"`

	SelectedMeal   MealSelection  `gorm:"type:jsonb" json:"selectedMeal"`
	PriceBreakdown PriceBreakdown `gorm:"type:jsonb" json:"priceBreakdown"`

	CustomerEmail string `json:"customerEmail,omitempty"`
	CustomerPhone string `json:"customerPhone,omitempty"`
}

// BookedSeat pins one seat's price and cancellation state to a booking so
// the booking's breakdown survives later seat-price changes.
type BookedSeat struct {
	DTO
	BookingId   uint    `gorm:"not null;index" json:"bookingId"`
	TripId      uint    `gorm:"not null;index" json:"tripId"`
	SeatNumber  string  `gorm:"not null;size:10" json:"seatNumber"`
	SeatPrice   float64 `gorm:"not null" json:"seatPrice"`
	IsCancelled bool    `gorm:"default:false" json:"isCancelled"`
}

type InitiateBookingInput struct {
	UserId             uint           `json:"userId" validate:"required,gt=0"`
	TripId             uint           `json:"tripId" validate:"required,gt=0"`
	PickupPointId      uint           `json:"pickupPointId" validate:"required,gt=0"`
	DropPointId        uint           `json:"dropPointId" validate:"required,gt=0"`
	SelectedSeats      []string       `json:"selectedSeats" validate:"required,min=1,dive,required"`
	SelectedMeal       *MealSelection `json:"selectedMeal" validate:"omitempty"`
	Addons             []ExtraCharge  `json:"addons" validate:"omitempty,dive"`
	CouponCode         string         `json:"couponCode" validate:"omitempty,max=20"`
	TotalAmount        float64        `json:"totalAmount" validate:"required,gt=0"` // client-declared subtotal
	FinalPayableAmount float64        `json:"finalPayableAmount" validate:"gte=0"` // zero when a coupon covers the full order
	CustomerEmail      string         `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone      string         `json:"customerPhone" validate:"required,min=10,max=15"`
}
