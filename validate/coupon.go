package validate

import (
	"cab_booking/model"

	"github.com/gofiber/fiber/v2"
)

func ValidateCoupon() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ValidateCouponInput
		if err := parseAndValidate(c, &input); err != nil {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func CreateCoupon() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateCouponInput
		if err := parseAndValidate(c, &input); err != nil {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func UpdateCoupon() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateCouponInput
		if err := parseAndValidate(c, &input); err != nil {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func FilterCoupon() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.FilterCouponInput
		if err := parseAndValidate(c, &input); err != nil {
			return err
		}
		c.Locals("input", input)
		return c.Next()
	}
}
