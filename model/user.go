package model

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	DTO
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `gorm:"uniqueIndex;not null" validate:"required,email" json:"email"`
	Phone     string `gorm:"size:20" json:"phone"`
	Password  string `gorm:"not null" json:"-"`
	IsAdmin   bool   `gorm:"default:false" json:"isAdmin"`
	IsActive  bool   `gorm:"default:true" json:"isActive"`
}

// BeforeCreate hashes the password once, updates go through the same hook
// only when the password column actually changed.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	return u.hashPassword()
}

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("Password") {
		return u.hashPassword()
	}
	return nil
}

func (u *User) hashPassword() error {
	if u.Password == "" {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

type RegisterInput struct {
	FirstName string `json:"firstName" validate:"omitempty,max=100"`
	LastName  string `json:"lastName" validate:"omitempty,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=10,max=15"`
	Password  string `json:"password" validate:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
