package validate

import (
	"cab_booking/model"

	"github.com/gofiber/fiber/v2"
)

func SearchTrip() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.SearchTripInput
		if err := parseAndValidate(c, &input); err != nil {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func CreateTrip() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateTripInput
		if err := parseAndValidate(c, &input); err != nil {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func CreateCar() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateCarInput
		if err := parseAndValidate(c, &input); err != nil {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}
