package validate

import (
	"cab_booking/model"

	"github.com/gofiber/fiber/v2"
)

func CreateLocation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateLocationInput
		if err := parseAndValidate(c, &input); err != nil {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func CreatePoint() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreatePointInput
		if err := parseAndValidate(c, &input); err != nil {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}
