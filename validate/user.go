package validate

import (
	"cab_booking/model"

	"github.com/gofiber/fiber/v2"
)

func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RegisterInput
		if err := parseAndValidate(c, &input); err != nil {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.LoginInput
		if err := parseAndValidate(c, &input); err != nil {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}
