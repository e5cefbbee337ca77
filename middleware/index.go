package middleware

import (
	"errors"
	"strings"

	"cab_booking/constants"
	"cab_booking/helper"
	"cab_booking/utils"

	"github.com/gofiber/fiber/v2"
)

// Protected rejects requests without a valid, non-revoked bearer token
// and leaves the parsed token in locals for the handlers.
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing token", errors.New("no token"))
		}
		tokenString := strings.TrimPrefix(auth, "Bearer ")

		token, err := helper.ParseToken(tokenString)
		if err != nil || !token.Valid {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", err)
		}
		if helper.IsTokenBlacklisted(c.Context(), tokenString) {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Token has been revoked", nil)
		}

		c.Locals("user", token)
		return c.Next()
	}
}

// AdminOnly runs after Protected and gates admin surfaces.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claim, user := helper.GetInfoUserFromToken(c)
		if claim.UserId == 0 || user.ID == 0 {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", nil)
		}
		if !user.IsAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, nil)
		}
		return c.Next()
	}
}

// OptionalJWT parses a token when one is present but never rejects, so
// guest flows share the same handlers.
func OptionalJWT() fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.Locals("user", nil)
			return c.Next()
		}
		token, err := helper.ParseToken(strings.TrimPrefix(auth, "Bearer "))
		if err != nil || !token.Valid {
			c.Locals("user", nil)
			return c.Next()
		}
		c.Locals("user", token)
		return c.Next()
	}
}
