package database

import (
	"cab_booking/model"
	"cab_booking/utils"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SeedData creates a minimal demo dataset. Every record is FirstOrCreate
// so repeated boots stay idempotent.
func SeedData(db *gorm.DB) {
	admin := model.User{
		FirstName: "Admin",
		Email:     "admin@cabbooking.local",
		Phone:     "9999999999",
		Password:  "admin@123",
		IsAdmin:   true,
	}
	if err := db.Where(model.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
		logrus.Errorf("failed to seed admin user: %v", err)
	}

	start := model.StartLocation{Name: "Bangalore"}
	end := model.EndLocation{Name: "Chennai"}
	if err := db.Where(model.StartLocation{Name: start.Name}).FirstOrCreate(&start).Error; err != nil {
		logrus.Errorf("failed to seed start location: %v", err)
	}
	if err := db.Where(model.EndLocation{Name: end.Name}).FirstOrCreate(&end).Error; err != nil {
		logrus.Errorf("failed to seed end location: %v", err)
	}

	pickup := model.PickupPoint{Name: "Majestic Bus Stand", StartLocationId: start.ID}
	drop := model.DropPoint{Name: "Koyambedu", EndLocationId: end.ID}
	db.Where(model.PickupPoint{Name: pickup.Name, StartLocationId: start.ID}).FirstOrCreate(&pickup)
	db.Where(model.DropPoint{Name: drop.Name, EndLocationId: end.ID}).FirstOrCreate(&drop)

	car := model.Car{CarName: "Force Traveller", CarType: "Tempo Traveller", RegistrationNumber: "KA01AB1234", TotalSeats: 12}
	if err := db.Where(model.Car{RegistrationNumber: car.RegistrationNumber}).FirstOrCreate(&car).Error; err != nil {
		logrus.Errorf("failed to seed car: %v", err)
	}

	var tripCount int64
	db.Model(&model.Trip{}).Where("car_id = ?", car.ID).Count(&tripCount)
	if tripCount == 0 {
		departure := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
		trip := model.Trip{
			CarId:           car.ID,
			StartLocationId: start.ID,
			EndLocationId:   end.ID,
			StartTime:       departure,
			EndTime:         departure.Add(6 * time.Hour),
			Duration:        "6h",
			Status:          true,
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&trip).Error; err != nil {
				return err
			}
			seats := make([]model.Seat, 0, car.TotalSeats)
			for i := 1; i <= car.TotalSeats; i++ {
				price := 599.0
				seatType := "aisle"
				if i%2 == 1 {
					price = 499.0
					seatType = "window"
				}
				seats = append(seats, model.Seat{
					TripId:     trip.ID,
					SeatNumber: fmt.Sprintf("S%d", i),
					SeatType:   seatType,
					Price:      price,
				})
			}
			return tx.Create(&seats).Error
		})
		if err != nil {
			logrus.Errorf("failed to seed demo trip: %v", err)
		}
	}

	coupons := []model.Coupon{
		{
			Code:              "SAVE10",
			Description:       "10% off on orders above 2000",
			DiscountType:      "PERCENTAGE",
			DiscountValue:     10,
			MaxDiscountAmount: utils.Ptr(100.0),
			MinOrderAmount:    utils.Ptr(2000.0),
			StartDate:         time.Now().AddDate(0, 0, -1),
			EndDate:           time.Now().AddDate(0, 3, 0),
			Status:            true,
			TotalUsageLimit:   utils.Ptr(500),
		},
		{
			Code:          "FLAT50",
			Description:   "Flat 50 off",
			DiscountType:  "FLAT",
			DiscountValue: 50,
			StartDate:     time.Now().AddDate(0, 0, -1),
			EndDate:       time.Now().AddDate(0, 3, 0),
			Status:        true,
		},
	}
	for _, coupon := range coupons {
		if err := db.Where(model.Coupon{Code: coupon.Code}).FirstOrCreate(&coupon).Error; err != nil {
			logrus.Errorf("failed to seed coupon %s: %v", coupon.Code, err)
		}
	}
}
