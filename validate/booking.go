package validate

import (
	"cab_booking/model"
	"cab_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func InitiateBooking() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.InitiateBookingInput
		if err := parseAndValidate(c, &input); err != nil {
			return err
		}

		// duplicates would wreck the all-or-nothing claim count
		seen := make(map[string]bool, len(input.SelectedSeats))
		for _, seatNumber := range input.SelectedSeats {
			if seen[seatNumber] {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, "Duplicate seat number: "+seatNumber, nil)
			}
			seen[seatNumber] = true
		}

		c.Locals("input", input)
		return c.Next()
	}
}
