package router

import (
	"cab_booking/handler"
	"cab_booking/middleware"
	"cab_booking/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", validate.Register(), handler.Register)
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", middleware.Protected(), handler.GetProfile)

	location := v1.Group("/locations")
	location.Get("/start", handler.GetStartLocations)
	location.Get("/end", handler.GetEndLocations)
	location.Get("/start/:locationId/pickup-points", validate.GetById("locationId"), handler.GetPickupPoints)
	location.Get("/end/:locationId/drop-points", validate.GetById("locationId"), handler.GetDropPoints)
	location.Post("/start", middleware.Protected(), middleware.AdminOnly(), validate.CreateLocation(), handler.CreateStartLocation)
	location.Post("/end", middleware.Protected(), middleware.AdminOnly(), validate.CreateLocation(), handler.CreateEndLocation)
	location.Post("/pickup-points", middleware.Protected(), middleware.AdminOnly(), validate.CreatePoint(), handler.CreatePickupPoint)
	location.Post("/drop-points", middleware.Protected(), middleware.AdminOnly(), validate.CreatePoint(), handler.CreateDropPoint)

	car := v1.Group("/cars")
	car.Get("/", handler.GetCars)
	car.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreateCar(), handler.CreateCar)

	trip := v1.Group("/trips")
	trip.Post("/search", validate.SearchTrip(), handler.SearchTrips)
	trip.Get("/:tripId", validate.GetById("tripId"), handler.GetTripById)
	trip.Get("/:tripId/seats", validate.GetById("tripId"), handler.GetTripSeats)
	trip.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreateTrip(), handler.CreateTrip)
	trip.Patch("/:tripId/status", middleware.Protected(), middleware.AdminOnly(), validate.GetById("tripId"), handler.UpdateTripStatus)

	coupon := v1.Group("/coupons")
	coupon.Post("/validate", middleware.OptionalJWT(), validate.ValidateCoupon(), handler.ValidateCoupon)
	coupon.Get("/active", handler.GetActiveCoupons)
	coupon.Post("/list", middleware.Protected(), middleware.AdminOnly(), validate.FilterCoupon(), handler.GetCoupons)
	coupon.Get("/:couponId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("couponId"), handler.GetCouponById)
	coupon.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreateCoupon(), handler.CreateCoupon)
	coupon.Put("/:couponId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("couponId"), validate.UpdateCoupon(), handler.UpdateCoupon)
	coupon.Delete("/", middleware.Protected(), middleware.AdminOnly(), validate.Delete(), handler.DeleteCoupons)

	booking := v1.Group("/bookings")
	booking.Post("/initiate", validate.InitiateBooking(), handler.InitiateBooking)
	booking.Get("/user/:userId", validate.GetById("userId"), handler.GetUserBookings)
	booking.Get("/:bookingId", validate.GetById("bookingId"), handler.GetBookingById)
	booking.Post("/:bookingId/cancel", validate.GetById("bookingId"), handler.CancelBooking)

	payment := v1.Group("/payments")
	payment.Post("/webhook", handler.CashfreeWebhook)
	payment.Get("/order/:orderId/status", handler.GetOrderStatus)
}
