package model

import (
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type StartLocation struct {
	DTO
	Name string `gorm:"not null" validate:"required" json:"name"`
	Slug string `gorm:"uniqueIndex" json:"slug"`
}

type EndLocation struct {
	DTO
	Name string `gorm:"not null" validate:"required" json:"name"`
	Slug string `gorm:"uniqueIndex" json:"slug"`
}

// PickupPoint is a boarding point inside a start location.
type PickupPoint struct {
	DTO
	Name            string        `gorm:"not null" validate:"required" json:"name"`
	StartLocationId uint          `gorm:"index" json:"startLocationId"`
	StartLocation   StartLocation `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// DropPoint is an alighting point inside an end location.
type DropPoint struct {
	DTO
	Name          string      `gorm:"not null" validate:"required" json:"name"`
	EndLocationId uint        `gorm:"index" json:"endLocationId"`
	EndLocation   EndLocation `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (l *StartLocation) BeforeSave(tx *gorm.DB) error {
	if l.Slug == "" && l.Name != "" {
		l.Slug = slug.Make(l.Name)
	}
	return nil
}

func (l *EndLocation) BeforeSave(tx *gorm.DB) error {
	if l.Slug == "" && l.Name != "" {
		l.Slug = slug.Make(l.Name)
	}
	return nil
}

type CreateLocationInput struct {
	Name string `json:"name" validate:"required,max=120"`
}

type CreatePointInput struct {
	Name       string `json:"name" validate:"required,max=120"`
	LocationId uint   `json:"locationId" validate:"required,gt=0"`
}
