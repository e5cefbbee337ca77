package model

import "time"

type Trip struct {
	DTO
	CarId           uint          `gorm:"not null;index" json:"carId"`
	Car             Car           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"car"`
	StartLocationId uint          `gorm:"not null;index" json:"startLocationId"`
	StartLocation   StartLocation `gorm:"foreignKey:StartLocationId" json:"startLocation"`
	EndLocationId   uint          `gorm:"not null;index" json:"endLocationId"`
	EndLocation     EndLocation   `gorm:"foreignKey:EndLocationId" json:"endLocation"`
	StartTime       time.Time     `gorm:"not null" json:"startTime"`
	EndTime         time.Time     `gorm:"not null" json:"endTime"`
	Duration        string        `json:"duration"`
	Status          bool          `gorm:"default:true" json:"status"`
	Seats           []Seat        `gorm:"foreignKey:TripId;constraint:OnDelete:CASCADE" json:"seats,omitempty"`
}

type SeatPricingInput struct {
	SeatNumber string  `json:"seatNumber" validate:"required,max=10"`
	SeatType   string  `json:"seatType" validate:"omitempty,max=40"`
	Price      float64 `json:"price" validate:"required,gt=0"`
}

type CreateTripInput struct {
	CarId           uint               `json:"carId" validate:"required,gt=0"`
	StartLocationId uint               `json:"startLocationId" validate:"required,gt=0"`
	EndLocationId   uint               `json:"endLocationId" validate:"required,gt=0"`
	StartTime       time.Time          `json:"startTime" validate:"required"`
	EndTime         time.Time          `json:"endTime" validate:"required,gtfield=StartTime"`
	SeatPricing     []SeatPricingInput `json:"seatPricing" validate:"required,min=1,dive"`
}

type SearchTripInput struct {
	Pagination
	StartLocationId uint       `json:"startLocationId" validate:"omitempty,gt=0"`
	EndLocationId   uint       `json:"endLocationId" validate:"omitempty,gt=0"`
	Date            *time.Time `json:"date" validate:"omitempty"`
}
