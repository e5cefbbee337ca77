package handler

import (
	"time"

	"cab_booking/constants"
	"cab_booking/database"
	"cab_booking/model"
	"cab_booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SearchTrips filters active trips by route and travel date.
func SearchTrips(c *fiber.Ctx) error {
	input := c.Locals("input").(model.SearchTripInput)

	query := database.DB.Model(&model.Trip{}).
		Preload("Car").
		Preload("StartLocation").
		Preload("EndLocation").
		Where("status = true")
	if input.StartLocationId > 0 {
		query = query.Where("start_location_id = ?", input.StartLocationId)
	}
	if input.EndLocationId > 0 {
		query = query.Where("end_location_id = ?", input.EndLocationId)
	}
	if input.Date != nil {
		dayStart := time.Date(input.Date.Year(), input.Date.Month(), input.Date.Day(), 0, 0, 0, 0, input.Date.Location())
		query = query.Where("start_time >= ? AND start_time < ?", dayStart, dayStart.AddDate(0, 0, 1))
	}

	var trips []model.Trip
	if err := utils.ApplyPagination(query, input.Limit, input.Page).
		Order("start_time asc").
		Find(&trips).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to search trips", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, trips)
}

func GetTripById(c *fiber.Ctx) error {
	tripId := c.Locals("inputId").(int)

	var trip model.Trip
	if err := database.DB.
		Preload("Car").
		Preload("StartLocation").
		Preload("EndLocation").
		First(&trip, tripId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TRIP_NOT_FOUND, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, trip)
}

// GetTripSeats returns the live seat map for seat selection.
func GetTripSeats(c *fiber.Ctx) error {
	tripId := c.Locals("inputId").(int)

	var trip model.Trip
	if err := database.DB.First(&trip, tripId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TRIP_NOT_FOUND, err)
	}

	var seats []model.Seat
	if err := database.DB.
		Where("trip_id = ?", tripId).
		Order("id asc").
		Find(&seats).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load seats", err)
	}

	available := 0
	for _, seat := range seats {
		if !seat.IsBooked {
			available++
		}
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"tripId":         trip.ID,
		"seats":          seats,
		"availableSeats": available,
	})
}

// CreateTrip creates the trip and its seat inventory in one transaction
// so a trip can never exist half-provisioned.
func CreateTrip(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateTripInput)
	db := database.DB

	var car model.Car
	if err := db.First(&car, input.CarId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Car not found", err)
	}
	if len(input.SeatPricing) > car.TotalSeats {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Seat pricing exceeds car capacity", nil)
	}
	var startLocation model.StartLocation
	if err := db.First(&startLocation, input.StartLocationId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Start location not found", err)
	}
	var endLocation model.EndLocation
	if err := db.First(&endLocation, input.EndLocationId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "End location not found", err)
	}

	seen := make(map[string]bool, len(input.SeatPricing))
	for _, pricing := range input.SeatPricing {
		if seen[pricing.SeatNumber] {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Duplicate seat number: "+pricing.SeatNumber, nil)
		}
		seen[pricing.SeatNumber] = true
	}

	trip := model.Trip{
		CarId:           input.CarId,
		StartLocationId: input.StartLocationId,
		EndLocationId:   input.EndLocationId,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		Duration:        input.EndTime.Sub(input.StartTime).Round(time.Minute).String(),
		Status:          true,
	}
	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&trip).Error; err != nil {
			return err
		}
		seats := make([]model.Seat, 0, len(input.SeatPricing))
		for _, pricing := range input.SeatPricing {
			seats = append(seats, model.Seat{
				TripId:     trip.ID,
				SeatNumber: pricing.SeatNumber,
				SeatType:   pricing.SeatType,
				Price:      pricing.Price,
				Status:     constants.SeatAvailable,
			})
		}
		return tx.Create(&seats).Error
	})
	if txErr != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create trip", txErr)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, trip)
}

// UpdateTripStatus toggles a trip open or closed for booking.
func UpdateTripStatus(c *fiber.Ctx) error {
	tripId := c.Locals("inputId").(int)

	var trip model.Trip
	if err := database.DB.First(&trip, tripId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TRIP_NOT_FOUND, err)
	}
	if err := database.DB.Model(&trip).Update("status", !trip.Status).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update trip", err)
	}
	trip.Status = !trip.Status
	return utils.SuccessResponse(c, fiber.StatusOK, trip)
}

func CreateCar(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateCarInput)

	car := model.Car{
		CarName:            input.CarName,
		CarType:            input.CarType,
		RegistrationNumber: input.RegistrationNumber,
		TotalSeats:         input.TotalSeats,
	}
	if err := database.DB.Create(&car).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create car", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, car)
}

func GetCars(c *fiber.Ctx) error {
	var cars []model.Car
	if err := database.DB.Order("car_name asc").Find(&cars).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load cars", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, cars)
}
