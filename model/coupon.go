package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Coupon struct {
	DTO
	Code              string    `gorm:"uniqueIndex;not null;size:20" validate:"required" json:"code"`
	Description       string    `gorm:"type:text" json:"description"`
	DiscountType      string    `gorm:"not null" validate:"required,oneof=PERCENTAGE FLAT" json:"discountType"`
	DiscountValue     float64   `gorm:"type:decimal(10,2);not null" validate:"required,gt=0" json:"discountValue"`
	MinOrderAmount    *float64  `gorm:"type:decimal(10,2)" json:"minOrderAmount"`
	MaxDiscountAmount *float64  `gorm:"type:decimal(10,2)" json:"maxDiscountAmount"` // required for PERCENTAGE
	StartDate         time.Time `gorm:"not null" json:"startDate"`
	EndDate           time.Time `gorm:"not null" json:"endDate"`
	Status            bool      `gorm:"default:true" json:"status"`
	UsageLimitPerUser *int      `json:"usageLimitPerUser"`
	TotalUsageLimit   *int      `json:"totalUsageLimit"`
	TotalUsed         int       `gorm:"default:0" json:"totalUsed"`
	ImageUrl          string    `json:"imageUrl,omitempty"`
}

// Codes are case-normalized upper so lookups are case-insensitive.
func (c *Coupon) BeforeSave(tx *gorm.DB) error {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	return nil
}

// IsWithinWindow reports whether now falls inside [StartDate, EndDate].
func (c *Coupon) IsWithinWindow(now time.Time) bool {
	return c.Status && !now.Before(c.StartDate) && !now.After(c.EndDate)
}

type CreateCouponInput struct {
	Code              string    `json:"code" form:"code" validate:"required,min=4,max=20"`
	Description       string    `json:"description" form:"description" validate:"omitempty,max=1000"`
	DiscountType      string    `json:"discountType" form:"discountType" validate:"required,oneof=PERCENTAGE FLAT"`
	DiscountValue     float64   `json:"discountValue" form:"discountValue" validate:"required,gt=0"`
	MinOrderAmount    *float64  `json:"minOrderAmount" form:"minOrderAmount" validate:"omitempty,gte=0"`
	MaxDiscountAmount *float64  `json:"maxDiscountAmount" form:"maxDiscountAmount" validate:"omitempty,gt=0,required_if=DiscountType PERCENTAGE"`
	StartDate         time.Time `json:"startDate" form:"startDate" validate:"required"`
	EndDate           time.Time `json:"endDate" form:"endDate" validate:"required,gtfield=StartDate"`
	Status            *bool     `json:"status" form:"status"`
	UsageLimitPerUser *int      `json:"usageLimitPerUser" form:"usageLimitPerUser" validate:"omitempty,min=1"`
	TotalUsageLimit   *int      `json:"totalUsageLimit" form:"totalUsageLimit" validate:"omitempty,min=1"`
}

type UpdateCouponInput struct {
	Description       *string    `json:"description" form:"description" validate:"omitempty,max=1000"`
	DiscountType      *string    `json:"discountType" form:"discountType" validate:"omitempty,oneof=PERCENTAGE FLAT"`
	DiscountValue     *float64   `json:"discountValue" form:"discountValue" validate:"omitempty,gt=0"`
	MinOrderAmount    *float64   `json:"minOrderAmount" form:"minOrderAmount" validate:"omitempty,gte=0"`
	MaxDiscountAmount *float64   `json:"maxDiscountAmount" form:"maxDiscountAmount" validate:"omitempty,gt=0"`
	StartDate         *time.Time `json:"startDate" form:"startDate"`
	EndDate           *time.Time `json:"endDate" form:"endDate"`
	Status            *bool      `json:"status" form:"status"`
	UsageLimitPerUser *int       `json:"usageLimitPerUser" form:"usageLimitPerUser" validate:"omitempty,min=1"`
	TotalUsageLimit   *int       `json:"totalUsageLimit" form:"totalUsageLimit" validate:"omitempty,min=1"`
}

type ValidateCouponInput struct {
	Code   string  `json:"code" validate:"required"`
	UserId uint    `json:"userId" validate:"omitempty,gt=0"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type FilterCouponInput struct {
	Pagination
	Status *bool  `json:"status"`
	Search string `json:"search" validate:"omitempty,max=100"`
}
