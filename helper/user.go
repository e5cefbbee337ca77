package helper

import (
	"cab_booking/database"
	"cab_booking/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// GetInfoUserFromToken reads the parsed JWT left in locals by the auth
// middleware. Returns a zero claim for guests.
func GetInfoUserFromToken(c *fiber.Ctx) (model.TokenClaim, model.User) {
	var claim model.TokenClaim
	var user model.User

	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return claim, user
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return claim, user
	}

	if v, ok := claims["userId"].(float64); ok {
		claim.UserId = uint(v)
	}
	if v, ok := claims["email"].(string); ok {
		claim.Email = v
	}
	if v, ok := claims["isAdmin"].(bool); ok {
		claim.IsAdmin = v
	}

	if claim.UserId > 0 {
		database.DB.First(&user, "id = ? AND is_active = true", claim.UserId)
	}
	return claim, user
}
