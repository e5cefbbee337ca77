package handler

import (
	"errors"
	"strings"

	"cab_booking/constants"
	"cab_booking/database"
	"cab_booking/helper"
	"cab_booking/model"
	"cab_booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func Register(c *fiber.Ctx) error {
	input := c.Locals("input").(model.RegisterInput)
	db := database.DB

	var existing model.User
	err := db.First(&existing, "email = ?", strings.ToLower(input.Email)).Error
	if err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Email already registered", nil)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to check email", err)
	}

	user := model.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     strings.ToLower(input.Email),
		Phone:     input.Phone,
		Password:  input.Password,
		IsActive:  true,
	}
	if err := db.Create(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create user", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, user)
}

func Login(c *fiber.Ctx) error {
	input := c.Locals("input").(model.LoginInput)

	var user model.User
	if err := database.DB.First(&user, "email = ?", strings.ToLower(input.Email)).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid email or password", nil)
	}
	if !user.CheckPassword(input.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid email or password", nil)
	}
	if !user.IsActive {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Account is deactivated", nil)
	}

	claim := model.TokenClaim{
		UserId:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}
	accessToken, err := helper.GenerateAccessToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to issue token", err)
	}
	refreshToken, err := helper.GenerateRefreshToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to issue token", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"token": model.TokenData{AccessToken: accessToken, RefreshToken: refreshToken},
		"user":  user,
	})
}

// Logout revokes the presented token for the rest of its lifetime.
func Logout(c *fiber.Ctx) error {
	tokenString := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	if tokenString == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, nil)
	}
	if err := helper.BlacklistToken(c.Context(), tokenString); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to revoke token", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Logged out successfully"})
}

func GetProfile(c *fiber.Ctx) error {
	claim, user := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 || user.ID == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.USER_NOT_FOUND, nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, user)
}
