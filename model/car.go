package model

type Car struct {
	DTO
	CarName            string `gorm:"not null" validate:"required" json:"carName"`
	CarType            string `json:"carType"` // Sedan, SUV, Tempo Traveller...
	RegistrationNumber string `gorm:"uniqueIndex;size:20" json:"registrationNumber"`
	TotalSeats         int    `gorm:"not null" validate:"required,min=1" json:"totalSeats"`
}

type CreateCarInput struct {
	CarName            string `json:"carName" validate:"required,max=120"`
	CarType            string `json:"carType" validate:"omitempty,max=60"`
	RegistrationNumber string `json:"registrationNumber" validate:"required,max=20"`
	TotalSeats         int    `json:"totalSeats" validate:"required,min=1,max=60"`
}
