package handler

import (
	"cab_booking/database"
	"cab_booking/model"
	"cab_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func GetStartLocations(c *fiber.Ctx) error {
	var locations []model.StartLocation
	if err := database.DB.Order("name asc").Find(&locations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load locations", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, locations)
}

func GetEndLocations(c *fiber.Ctx) error {
	var locations []model.EndLocation
	if err := database.DB.Order("name asc").Find(&locations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load locations", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, locations)
}

func CreateStartLocation(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateLocationInput)

	location := model.StartLocation{Name: input.Name}
	if err := database.DB.Create(&location).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create location", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, location)
}

func CreateEndLocation(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateLocationInput)

	location := model.EndLocation{Name: input.Name}
	if err := database.DB.Create(&location).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create location", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, location)
}

// GetPickupPoints lists boarding points for one start location.
func GetPickupPoints(c *fiber.Ctx) error {
	locationId := c.Locals("inputId").(int)

	var points []model.PickupPoint
	if err := database.DB.Where("start_location_id = ?", locationId).Order("name asc").Find(&points).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load pickup points", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, points)
}

func GetDropPoints(c *fiber.Ctx) error {
	locationId := c.Locals("inputId").(int)

	var points []model.DropPoint
	if err := database.DB.Where("end_location_id = ?", locationId).Order("name asc").Find(&points).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load drop points", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, points)
}

func CreatePickupPoint(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreatePointInput)

	var location model.StartLocation
	if err := database.DB.First(&location, input.LocationId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Start location not found", err)
	}
	point := model.PickupPoint{Name: input.Name, StartLocationId: input.LocationId}
	if err := database.DB.Create(&point).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create pickup point", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, point)
}

func CreateDropPoint(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreatePointInput)

	var location model.EndLocation
	if err := database.DB.First(&location, input.LocationId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "End location not found", err)
	}
	point := model.DropPoint{Name: input.Name, EndLocationId: input.LocationId}
	if err := database.DB.Create(&point).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create drop point", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, point)
}
