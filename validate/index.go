package validate

import (
	"errors"
	"fmt"
	"strconv"

	"cab_booking/constants"
	"cab_booking/model"
	"cab_booking/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// parseAndValidate binds the JSON body into dest and runs the struct
// validators. Callers store the result in locals on success.
func parseAndValidate(c *fiber.Ctx, dest any) error {
	if err := c.BodyParser(dest); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	if err := validate.Struct(dest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": constants.ERROR_INPUT,
			"error":   err.Error(),
		})
	}
	return nil
}

func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		valueKey, err := strconv.Atoi(c.Params(key))
		if err != nil || valueKey <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}
		c.Locals("inputId", valueKey)
		return c.Next()
	}
}

func Delete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ArrayId
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if len(input.IDs) == 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, fmt.Errorf("ids must not be empty"))
		}
		c.Locals("deleteIds", input)
		return c.Next()
	}
}
