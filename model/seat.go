package model

import "gorm.io/gorm"

type Seat struct {
	DTO
	TripId     uint    `gorm:"not null;uniqueIndex:idx_trip_seat" json:"tripId"`
	Trip       Trip    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	SeatNumber string  `gorm:"not null;size:10;uniqueIndex:idx_trip_seat" validate:"required" json:"seatNumber"`
	SeatType   string  `json:"seatType"` // window, aisle, sleeper...
	Price      float64 `gorm:"not null" validate:"required,gt=0" json:"price"`
	Status     string  `gorm:"default:'available'" json:"status"`
	IsBooked   bool    `gorm:"default:false;not null" json:"isBooked"`
}

// BeforeSave keeps status and isBooked in sync whichever one the caller set.
func (s *Seat) BeforeSave(tx *gorm.DB) error {
	if s.IsBooked {
		s.Status = "booked"
	} else {
		s.Status = "available"
	}
	return nil
}
