package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"cab_booking/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTripSeats(t *testing.T) {
	app, db := setupTestApp(t)
	fx := seedTripFixture(t, db)

	require.NoError(t, db.Model(&model.Seat{}).
		Where("trip_id = ? AND seat_number = ?", fx.trip.ID, "S1").
		Updates(map[string]any{"is_booked": true, "status": "booked"}).Error)

	status, body := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/trips/%d/seats", fx.trip.ID), nil)
	require.Equal(t, fiber.StatusOK, status)

	data := body["data"].(map[string]any)
	assert.Equal(t, 3.0, data["availableSeats"])
	assert.Len(t, data["seats"].([]any), 4)

	t.Run("unknown trip", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodGet, "/api/v1/trips/999/seats", nil)
		assert.Equal(t, fiber.StatusNotFound, status)
	})
}

func TestSearchTrips(t *testing.T) {
	app, db := setupTestApp(t)
	fx := seedTripFixture(t, db)

	t.Run("matches by route", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/api/v1/trips/search", map[string]any{
			"startLocationId": fx.trip.StartLocationId,
			"endLocationId":   fx.trip.EndLocationId,
		})
		require.Equal(t, fiber.StatusOK, status)
		assert.Len(t, body["data"].([]any), 1)
	})

	t.Run("no trips from an unserved location", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/api/v1/trips/search", map[string]any{
			"startLocationId": 99,
		})
		require.Equal(t, fiber.StatusOK, status)
		assert.Empty(t, body["data"])
	})

	t.Run("inactive trips are hidden", func(t *testing.T) {
		require.NoError(t, db.Model(&model.Trip{}).Where("id = ?", fx.trip.ID).Update("status", false).Error)
		status, body := doJSON(t, app, http.MethodPost, "/api/v1/trips/search", map[string]any{})
		require.Equal(t, fiber.StatusOK, status)
		assert.Empty(t, body["data"])
	})
}
