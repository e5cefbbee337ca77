package handler

import (
	"errors"
	"strings"
	"time"

	"cab_booking/constants"
	"cab_booking/database"
	"cab_booking/helper"
	"cab_booking/model"
	"cab_booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// ValidateCoupon checks a coupon against an order amount without
// consuming it. The response carries the computed discount so the
// client can render the price before initiating.
func ValidateCoupon(c *fiber.Ctx) error {
	input := c.Locals("input").(model.ValidateCouponInput)

	// a logged-in caller cannot probe per-user limits for someone else
	if claim, _ := helper.GetInfoUserFromToken(c); claim.UserId > 0 {
		input.UserId = claim.UserId
	}

	coupon, discount, err := helper.ValidateCoupon(database.DB, input.Code, input.Amount, input.UserId)
	if err != nil {
		var couponErr *helper.CouponError
		if errors.As(err, &couponErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"valid":   false,
				"reason":  couponErr.Reason,
				"message": couponErr.Message,
			})
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to validate coupon", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"valid":       true,
		"code":        coupon.Code,
		"discount":    discount,
		"finalAmount": helper.Round2(input.Amount - discount),
	})
}

// GetActiveCoupons lists coupons a passenger could apply right now.
func GetActiveCoupons(c *fiber.Ctx) error {
	now := time.Now()
	var coupons []model.Coupon
	if err := database.DB.
		Where("status = true AND start_date <= ? AND end_date >= ?", now, now).
		Where("total_usage_limit IS NULL OR total_used < total_usage_limit").
		Order("end_date asc").
		Find(&coupons).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load coupons", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, coupons)
}

func GetCoupons(c *fiber.Ctx) error {
	input := c.Locals("input").(model.FilterCouponInput)

	query := database.DB.Model(&model.Coupon{})
	if input.Status != nil {
		query = query.Where("status = ?", *input.Status)
	}
	if input.Search != "" {
		query = query.Where("code LIKE ?", "%"+strings.ToUpper(input.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count coupons", err)
	}

	var coupons []model.Coupon
	if err := utils.ApplyPagination(query, input.Limit, input.Page).
		Order("created_at desc").
		Find(&coupons).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load coupons", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       coupons,
		Limit:      input.Limit,
		Page:       input.Page,
		TotalCount: total,
	})
}

func GetCouponById(c *fiber.Ctx) error {
	couponId := c.Locals("inputId").(int)

	var coupon model.Coupon
	if err := database.DB.First(&coupon, couponId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.COUPON_NOT_FOUND, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, coupon)
}

func CreateCoupon(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateCouponInput)

	coupon := model.Coupon{
		Code:              input.Code,
		Description:       input.Description,
		DiscountType:      input.DiscountType,
		DiscountValue:     input.DiscountValue,
		MinOrderAmount:    input.MinOrderAmount,
		MaxDiscountAmount: input.MaxDiscountAmount,
		StartDate:         input.StartDate,
		EndDate:           input.EndDate,
		Status:            true,
		UsageLimitPerUser: input.UsageLimitPerUser,
		TotalUsageLimit:   input.TotalUsageLimit,
	}
	if input.Status != nil {
		coupon.Status = *input.Status
	}

	if fileHeader, err := c.FormFile("image"); err == nil && fileHeader != nil {
		url, err := helper.UploadCouponImage(c.Context(), fileHeader)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to upload coupon image", err)
		}
		coupon.ImageUrl = url
	}

	if err := database.DB.Create(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Coupon code already exists", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create coupon", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, coupon)
}

// UpdateCoupon patches only the fields present in the body. The code
// itself is immutable once issued.
func UpdateCoupon(c *fiber.Ctx) error {
	couponId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.UpdateCouponInput)

	var coupon model.Coupon
	if err := database.DB.First(&coupon, couponId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.COUPON_NOT_FOUND, err)
	}

	if err := copier.CopyWithOption(&coupon, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to apply coupon update", err)
	}

	if fileHeader, err := c.FormFile("image"); err == nil && fileHeader != nil {
		url, err := helper.UploadCouponImage(c.Context(), fileHeader)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to upload coupon image", err)
		}
		coupon.ImageUrl = url
	}

	if err := database.DB.Save(&coupon).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update coupon", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, coupon)
}

func DeleteCoupons(c *fiber.Ctx) error {
	input := c.Locals("deleteIds").(model.ArrayId)

	res := database.DB.Delete(&model.Coupon{}, input.IDs)
	if res.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete coupons", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.COUPON_NOT_FOUND, nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": res.RowsAffected})
}
