package main

import (
	"cab_booking/config"
	"cab_booking/database"
	"cab_booking/handler"
	"cab_booking/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.ConfigDefault("CLIENT_URL", "http://localhost:5173"),
		AllowMethods: "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Authorization, Accept",
		MaxAge:       600,
	}))

	database.ConnectDB()
	database.ConnectRedis()

	// sweep abandoned bookings past their payment window
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 1m", handler.ReleaseExpiredBookings); err != nil {
		logrus.Fatalf("failed to schedule booking sweep: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router.SetupRoutes(app)

	port := config.ConfigDefault("PORT", "8002")
	logrus.Fatal(app.Listen(":" + port))
}
