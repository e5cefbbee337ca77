package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"cab_booking/constants"
	"cab_booking/database"
	"cab_booking/handler"
	"cab_booking/helper"
	"cab_booking/model"
	"cab_booking/router"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testFixture struct {
	user model.User
	trip model.Trip
}

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	// a single connection serializes writers, which is how sqlite
	// behaves under load anyway
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	app := fiber.New()
	router.SetupRoutes(app)
	return app, db
}

func seedTripFixture(t *testing.T, db *gorm.DB) testFixture {
	t.Helper()

	user := model.User{FirstName: "Asha", Email: "asha@example.com", Phone: "9876543210", Password: "secret123", IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	start := model.StartLocation{Name: "Bangalore"}
	end := model.EndLocation{Name: "Chennai"}
	require.NoError(t, db.Create(&start).Error)
	require.NoError(t, db.Create(&end).Error)
	pickup := model.PickupPoint{Name: "Majestic", StartLocationId: start.ID}
	drop := model.DropPoint{Name: "Koyambedu", EndLocationId: end.ID}
	require.NoError(t, db.Create(&pickup).Error)
	require.NoError(t, db.Create(&drop).Error)

	car := model.Car{CarName: "Force Traveller", RegistrationNumber: "KA01AB1234", TotalSeats: 4}
	require.NoError(t, db.Create(&car).Error)

	departure := time.Now().Add(48 * time.Hour)
	trip := model.Trip{
		CarId: car.ID, StartLocationId: start.ID, EndLocationId: end.ID,
		StartTime: departure, EndTime: departure.Add(6 * time.Hour), Status: true,
	}
	require.NoError(t, db.Create(&trip).Error)

	seats := []model.Seat{
		{TripId: trip.ID, SeatNumber: "S1", SeatType: "window", Price: 599},
		{TripId: trip.ID, SeatNumber: "S2", SeatType: "aisle", Price: 499},
		{TripId: trip.ID, SeatNumber: "S3", SeatType: "window", Price: 599},
		{TripId: trip.ID, SeatNumber: "S4", SeatType: "aisle", Price: 499},
	}
	require.NoError(t, db.Create(&seats).Error)

	return testFixture{user: user, trip: trip}
}

func seedFlatCoupon(t *testing.T, db *gorm.DB) model.Coupon {
	t.Helper()
	coupon := model.Coupon{
		Code: "FLAT50", DiscountType: "FLAT", DiscountValue: 50, Status: true,
		StartDate: time.Now().AddDate(0, 0, -1), EndDate: time.Now().AddDate(0, 1, 0),
	}
	require.NoError(t, db.Create(&coupon).Error)
	return coupon
}

// startFakeGateway stands in for Cashfree. Order creation echoes the
// request, order lookup serves whatever status the test sets.
func startFakeGateway(t *testing.T, failCreate bool, orderStatus *string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/orders":
			if failCreate {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message":"order creation failed"}`)
				return
			}
			var req model.CashfreeOrderRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			json.NewEncoder(w).Encode(model.CashfreeOrderResponse{
				CfOrderId:        "1001",
				OrderId:          req.OrderId,
				OrderStatus:      "ACTIVE",
				PaymentSessionId: "session_" + req.OrderId,
				OrderAmount:      req.OrderAmount,
			})
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/orders/"):
			status := "ACTIVE"
			if orderStatus != nil {
				status = *orderStatus
			}
			json.NewEncoder(w).Encode(model.CashfreeOrderResponse{
				OrderId:     strings.TrimPrefix(r.URL.Path, "/orders/"),
				OrderStatus: status,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	t.Setenv("CASHFREE_API_URL", srv.URL)
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", string(raw))
	}
	return resp.StatusCode, parsed
}

func doAuthJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", string(raw))
	}
	return resp.StatusCode, parsed
}

func seedAdminToken(t *testing.T, db *gorm.DB) string {
	t.Helper()
	admin := model.User{FirstName: "Root", Email: "root@example.com", Phone: "9000000000", Password: "secret123", IsActive: true, IsAdmin: true}
	require.NoError(t, db.Create(&admin).Error)
	token, err := helper.GenerateAccessToken(model.TokenClaim{UserId: admin.ID, Email: admin.Email, IsAdmin: true})
	require.NoError(t, err)
	return token
}

func initiateBody(fx testFixture, seats []string, subtotal, final float64, couponCode string) map[string]any {
	return map[string]any{
		"userId":             fx.user.ID,
		"tripId":             fx.trip.ID,
		"pickupPointId":      1,
		"dropPointId":        1,
		"selectedSeats":      seats,
		"couponCode":         couponCode,
		"totalAmount":        subtotal,
		"finalPayableAmount": final,
		"customerPhone":      "9876543210",
	}
}

func freeSeatCount(t *testing.T, db *gorm.DB, tripId uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.Seat{}).Where("trip_id = ? AND is_booked = false", tripId).Count(&n).Error)
	return n
}

func loadBooking(t *testing.T, db *gorm.DB, id uint) model.Booking {
	t.Helper()
	var booking model.Booking
	require.NoError(t, db.First(&booking, id).Error)
	return booking
}

func bookingIdFromResponse(t *testing.T, body map[string]any) uint {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "response has no data: %v", body)
	booking, ok := data["booking"].(map[string]any)
	require.True(t, ok)
	id, ok := booking["id"].(float64)
	require.True(t, ok)
	return uint(id)
}

func TestInitiateBooking(t *testing.T) {
	t.Run("claims seats and opens a gateway order", func(t *testing.T) {
		app, db := setupTestApp(t)
		fx := seedTripFixture(t, db)
		startFakeGateway(t, false, nil)

		status, body := doJSON(t, app, http.MethodPost, "/api/v1/bookings/initiate",
			initiateBody(fx, []string{"S1", "S2"}, 1098, 1098, ""))
		require.Equal(t, fiber.StatusCreated, status, "body: %v", body)

		booking := loadBooking(t, db, bookingIdFromResponse(t, body))
		assert.Equal(t, constants.BookingInitiated, booking.BookingStatus)
		assert.Equal(t, constants.PaymentPending, booking.PaymentStatus)
		assert.Equal(t, 1098.0, booking.TotalAmount)
		assert.True(t, strings.HasPrefix(booking.PaymentOrderId, fmt.Sprintf("ORDER_%d_", booking.ID)))
		assert.NotEmpty(t, booking.PaymentSessionId)
		require.NotNil(t, booking.PaymentExpiry)
		assert.WithinDuration(t, time.Now().Add(handler.PaymentExpiryWindow), *booking.PaymentExpiry, time.Minute)

		assert.Equal(t, int64(2), freeSeatCount(t, db, fx.trip.ID))

		var bookedSeats []model.BookedSeat
		require.NoError(t, db.Where("booking_id = ?", booking.ID).Find(&bookedSeats).Error)
		assert.Len(t, bookedSeats, 2)
	})

	t.Run("applies a coupon to the payable amount", func(t *testing.T) {
		app, db := setupTestApp(t)
		fx := seedTripFixture(t, db)
		seedFlatCoupon(t, db)
		startFakeGateway(t, false, nil)

		status, body := doJSON(t, app, http.MethodPost, "/api/v1/bookings/initiate",
			initiateBody(fx, []string{"S1", "S2"}, 1098, 1048, "FLAT50"))
		require.Equal(t, fiber.StatusCreated, status, "body: %v", body)

		booking := loadBooking(t, db, bookingIdFromResponse(t, body))
		assert.Equal(t, 1098.0, booking.SubtotalAmount)
		assert.Equal(t, 50.0, booking.DiscountAmount)
		assert.Equal(t, 1048.0, booking.TotalAmount)
		assert.Equal(t, "FLAT50", booking.CouponCode)
		require.NotNil(t, booking.PriceBreakdown.Coupon)
		assert.Equal(t, 1048.0, booking.PriceBreakdown.Coupon.FinalAmount)

		// validation must not consume the coupon
		var coupon model.Coupon
		require.NoError(t, db.First(&coupon, "code = ?", "FLAT50").Error)
		assert.Equal(t, 0, coupon.TotalUsed)
	})

	t.Run("rejects when any requested seat is taken", func(t *testing.T) {
		app, db := setupTestApp(t)
		fx := seedTripFixture(t, db)
		startFakeGateway(t, false, nil)

		status, _ := doJSON(t, app, http.MethodPost, "/api/v1/bookings/initiate",
			initiateBody(fx, []string{"S1", "S2"}, 1098, 1098, ""))
		require.Equal(t, fiber.StatusCreated, status)

		status, body := doJSON(t, app, http.MethodPost, "/api/v1/bookings/initiate",
			initiateBody(fx, []string{"S2", "S3"}, 1098, 1098, ""))
		require.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, body["message"], constants.SEAT_UNAVAILABLE)
		assert.Contains(t, body["message"], "S2")

		// the overlap must not strand S3
		assert.Equal(t, int64(2), freeSeatCount(t, db, fx.trip.ID))
	})

	t.Run("rejects amount mismatch without claiming", func(t *testing.T) {
		app, db := setupTestApp(t)
		fx := seedTripFixture(t, db)
		startFakeGateway(t, false, nil)

		status, body := doJSON(t, app, http.MethodPost, "/api/v1/bookings/initiate",
			initiateBody(fx, []string{"S1", "S2"}, 1000, 1000, ""))
		require.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, body["message"], constants.AMOUNT_MISMATCH)
		assert.Equal(t, int64(4), freeSeatCount(t, db, fx.trip.ID))
	})

	t.Run("tolerates sub-epsilon amount drift", func(t *testing.T) {
		app, db := setupTestApp(t)
		fx := seedTripFixture(t, db)
		startFakeGateway(t, false, nil)

		status, body := doJSON(t, app, http.MethodPost, "/api/v1/bookings/initiate",
			initiateBody(fx, []string{"S1"}, 599.004, 599.004, ""))
		require.Equal(t, fiber.StatusCreated, status, "body: %v", body)
	})

	t.Run("rejects duplicate seat numbers", func(t *testing.T) {
		app, db := setupTestApp(t)
		fx := seedTripFixture(t, db)
		startFakeGateway(t, false, nil)

		status, body := doJSON(t, app, http.MethodPost, "/api/v1/bookings/initiate",
			initiateBody(fx, []string{"S1", "S1"}, 1198, 1198, ""))
		require.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, body["message"], "Duplicate seat number")
	})

	t.Run("releases the claim when the gateway fails", func(t *testing.T) {
		app, db := setupTestApp(t)
		fx := seedTripFixture(t, db)
		startFakeGateway(t, true, nil)

		status, body := doJSON(t, app, http.MethodPost, "/api/v1/bookings/initiate",
			initiateBody(fx, []string{"S1", "S2"}, 1098, 1098, ""))
		require.Equal(t, fiber.StatusBadGateway, status)
		assert.Equal(t, constants.GATEWAY_ERROR, body["message"])

		assert.Equal(t, int64(4), freeSeatCount(t, db, fx.trip.ID))

		var booking model.Booking
		require.NoError(t, db.Order("id desc").First(&booking).Error)
		assert.Equal(t, constants.BookingCancelled, booking.BookingStatus)
		assert.Equal(t, constants.PaymentFailed, booking.PaymentStatus)

		var cancelled int64
		require.NoError(t, db.Model(&model.BookedSeat{}).
			Where("booking_id = ? AND is_cancelled = true", booking.ID).Count(&cancelled).Error)
		assert.Equal(t, int64(2), cancelled)
	})

	t.Run("rejects unknown user and inactive trip", func(t *testing.T) {
		app, db := setupTestApp(t)
		fx := seedTripFixture(t, db)
		startFakeGateway(t, false, nil)

		body := initiateBody(fx, []string{"S1"}, 599, 599, "")
		body["userId"] = 999
		status, resp := doJSON(t, app, http.MethodPost, "/api/v1/bookings/initiate", body)
		require.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, constants.USER_NOT_FOUND, resp["message"])

		require.NoError(t, db.Model(&model.Trip{}).Where("id = ?", fx.trip.ID).Update("status", false).Error)
		status, resp = doJSON(t, app, http.MethodPost, "/api/v1/bookings/initiate",
			initiateBody(fx, []string{"S1"}, 599, 599, ""))
		require.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, constants.TRIP_NOT_ACTIVE, resp["message"])
	})
}

func TestCancelBooking(t *testing.T) {
	app, db := setupTestApp(t)
	fx := seedTripFixture(t, db)
	startFakeGateway(t, false, nil)

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/bookings/initiate",
		initiateBody(fx, []string{"S1", "S2"}, 1098, 1098, ""))
	require.Equal(t, fiber.StatusCreated, status)
	bookingId := bookingIdFromResponse(t, body)

	cancelPath := fmt.Sprintf("/api/v1/bookings/%d/cancel", bookingId)
	status, _ = doJSON(t, app, http.MethodPost, cancelPath, nil)
	require.Equal(t, fiber.StatusOK, status)

	booking := loadBooking(t, db, bookingId)
	assert.Equal(t, constants.BookingCancelled, booking.BookingStatus)
	assert.Equal(t, int64(4), freeSeatCount(t, db, fx.trip.ID))

	var cancelledSeats int64
	require.NoError(t, db.Model(&model.BookedSeat{}).
		Where("booking_id = ? AND is_cancelled = true", bookingId).Count(&cancelledSeats).Error)
	assert.Equal(t, int64(2), cancelledSeats)

	t.Run("second cancel is rejected", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, cancelPath, nil)
		require.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, constants.ALREADY_CANCELLED, body["message"])
	})

	t.Run("unknown booking", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, "/api/v1/bookings/9999/cancel", nil)
		assert.Equal(t, fiber.StatusNotFound, status)
	})
}

func TestReleaseExpiredBookings(t *testing.T) {
	app, db := setupTestApp(t)
	fx := seedTripFixture(t, db)
	startFakeGateway(t, false, nil)

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/bookings/initiate",
		initiateBody(fx, []string{"S1", "S2"}, 1098, 1098, ""))
	require.Equal(t, fiber.StatusCreated, status)
	bookingId := bookingIdFromResponse(t, body)

	// not yet expired, the sweep must not touch it
	handler.ReleaseExpiredBookings()
	assert.Equal(t, constants.BookingInitiated, loadBooking(t, db, bookingId).BookingStatus)

	past := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(&model.Booking{}).Where("id = ?", bookingId).
		Update("payment_expiry", past).Error)

	handler.ReleaseExpiredBookings()

	booking := loadBooking(t, db, bookingId)
	assert.Equal(t, constants.BookingCancelled, booking.BookingStatus)
	assert.Equal(t, constants.PaymentFailed, booking.PaymentStatus)
	assert.Equal(t, int64(4), freeSeatCount(t, db, fx.trip.ID))
}

func TestInitiateBookingContention(t *testing.T) {
	app, db := setupTestApp(t)
	fx := seedTripFixture(t, db)
	startFakeGateway(t, false, nil)

	// two passengers race for S2; the conditional claim must let
	// exactly one of them through
	bodies := []map[string]any{
		initiateBody(fx, []string{"S1", "S2"}, 1098, 1098, ""),
		initiateBody(fx, []string{"S2", "S3"}, 1098, 1098, ""),
	}

	statuses := make(chan int, len(bodies))
	var wg sync.WaitGroup
	for _, body := range bodies {
		wg.Add(1)
		go func(body map[string]any) {
			defer wg.Done()
			payload, err := json.Marshal(body)
			if err != nil {
				statuses <- 0
				return
			}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/initiate", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req, 10000)
			if err != nil {
				statuses <- 0
				return
			}
			resp.Body.Close()
			statuses <- resp.StatusCode
		}(body)
	}
	wg.Wait()
	close(statuses)

	var got []int
	for status := range statuses {
		got = append(got, status)
	}
	assert.ElementsMatch(t, []int{fiber.StatusCreated, fiber.StatusBadRequest}, got)

	// the loser must not keep a partial claim on the seat it did not race for
	assert.Equal(t, int64(2), freeSeatCount(t, db, fx.trip.ID))

	var initiated int64
	require.NoError(t, db.Model(&model.Booking{}).
		Where("booking_status = ?", constants.BookingInitiated).Count(&initiated).Error)
	assert.Equal(t, int64(1), initiated)
}

func TestBookingIdParamValidation(t *testing.T) {
	app, db := setupTestApp(t)
	seedTripFixture(t, db)

	paths := []string{
		"/api/v1/bookings/abc",
		"/api/v1/bookings/0/cancel",
		"/api/v1/bookings/user/abc",
	}
	for _, path := range paths {
		method := http.MethodGet
		if strings.HasSuffix(path, "/cancel") {
			method = http.MethodPost
		}
		status, body := doJSON(t, app, method, path, nil)
		require.Equal(t, fiber.StatusBadRequest, status, "path: %s", path)
		assert.Equal(t, constants.DATA_INPUT_IS_NOT_NUMBER, body["message"], "path: %s", path)
	}
}
