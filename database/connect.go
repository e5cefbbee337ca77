package database

import (
	"cab_booking/config"
	"cab_booking/model"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	p := config.ConfigDefault("DB_PORT", "5432")
	port, err := strconv.ParseUint(p, 10, 32)
	if err != nil {
		logrus.Fatalf("failed to parse database port %q: %v", p, err)
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		config.Config("DB_HOST"), port, config.Config("DB_USER"),
		config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	logrus.Info("connection opened to database")

	if err := Migrate(DB); err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}
	logrus.Info("database migrated")

	SeedData(DB)
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.StartLocation{},
		&model.EndLocation{},
		&model.PickupPoint{},
		&model.DropPoint{},
		&model.Car{},
		&model.Trip{},
		&model.Seat{},
		&model.Coupon{},
		&model.Booking{},
		&model.BookedSeat{},
	)
}
