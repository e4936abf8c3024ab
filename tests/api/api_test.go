//go:build api

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseURL = getEnv("API_URL", "http://localhost:8080")

// TestAPI_FullFlow drives a running server through onboarding, booking,
// conflict, payment and cancellation.
func TestAPI_FullFlow(t *testing.T) {
	waitForServer(t)

	slug := fmt.Sprintf("api-%d", time.Now().UnixNano())
	var hotelID, roomID, bookingID float64

	t.Run("Step1_CreateHotel", func(t *testing.T) {
		resp := send(t, http.MethodPost, "/api/v1/hotels", map[string]any{"slug": slug, "name": "API Hotel"})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var hotel map[string]any
		decodeJSON(t, resp, &hotel)
		assert.Equal(t, "trial", hotel["subscription_status"])
		assert.Equal(t, false, hotel["is_blocked"])
		hotelID = hotel["id"].(float64)
	})

	t.Run("Step2_CreateRoom", func(t *testing.T) {
		resp := send(t, http.MethodPost, fmt.Sprintf("/api/v1/hotels/%.0f/rooms", hotelID), map[string]any{
			"number": "101", "type": "double", "capacity": 2, "price": "120.00",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var room map[string]any
		decodeJSON(t, resp, &room)
		assert.Equal(t, "available", room["status"])
		roomID = room["id"].(float64)
	})

	t.Run("Step3_PortalBookingIsConfirmed", func(t *testing.T) {
		resp := send(t, http.MethodPost, fmt.Sprintf("/api/v1/hotels/%.0f/bookings", hotelID), map[string]any{
			"room_id": roomID, "client_email": "ana@example.com", "client_name": "Ana Gomez",
			"check_in": "2031-01-01", "check_out": "2031-01-04", "guests_count": 2, "channel": "portal",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var booking map[string]any
		decodeJSON(t, resp, &booking)
		assert.Equal(t, "confirmed", booking["status"])
		assert.Equal(t, "360", booking["total_price"])
		bookingID = booking["id"].(float64)
	})

	t.Run("Step4_OverlapIsRejected", func(t *testing.T) {
		resp := send(t, http.MethodPost, fmt.Sprintf("/api/v1/hotels/%.0f/bookings", hotelID), map[string]any{
			"room_id": roomID, "client_email": "bob@example.com",
			"check_in": "2031-01-03", "check_out": "2031-01-05", "guests_count": 1,
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		var body map[string]any
		decodeJSON(t, resp, &body)
		assert.Equal(t, []any{bookingID}, body["conflicting_booking_ids"])
	})

	t.Run("Step5_BackToBackIsAccepted", func(t *testing.T) {
		resp := send(t, http.MethodPost, fmt.Sprintf("/api/v1/hotels/%.0f/bookings", hotelID), map[string]any{
			"room_id": roomID, "client_email": "bob@example.com",
			"check_in": "2031-01-04", "check_out": "2031-01-06", "guests_count": 1,
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("Step6_PartialPayment", func(t *testing.T) {
		resp := send(t, http.MethodPost, fmt.Sprintf("/api/v1/bookings/%.0f/payments", bookingID), map[string]any{
			"mode": "partial", "amount": "100.00",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var booking map[string]any
		decodeJSON(t, resp, &booking)
		assert.Equal(t, "partial", booking["payment_status"])
	})

	t.Run("Step7_CancelTwice", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/bookings/%.0f/cancel", bookingID)

		resp := send(t, http.MethodPost, path, map[string]any{"reason": "api test"})
		var first map[string]any
		decodeJSON(t, resp, &first)
		assert.Equal(t, true, first["cancelled"])

		resp = send(t, http.MethodPost, path, map[string]any{})
		var second map[string]any
		decodeJSON(t, resp, &second)
		assert.Equal(t, false, second["cancelled"])
	})

	t.Run("Step8_BlockedHotelRefusesBookings", func(t *testing.T) {
		resp := send(t, http.MethodPatch, fmt.Sprintf("/api/v1/hotels/%.0f/subscription", hotelID), map[string]any{
			"subscription_status": "blocked",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		resp = send(t, http.MethodPost, fmt.Sprintf("/api/v1/hotels/%.0f/bookings", hotelID), map[string]any{
			"room_id": roomID, "client_email": "carl@example.com",
			"check_in": "2031-02-01", "check_out": "2031-02-02", "guests_count": 1,
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		resp.Body.Close()
	})
}

func waitForServer(t *testing.T) {
	t.Helper()
	for i := 0; i < 30; i++ {
		resp, err := http.Get(baseURL + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(time.Second)
	}
	t.Fatal("server did not become ready in time")
}

func send(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(method, baseURL+path, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestMain(m *testing.M) {
	fmt.Println("Starting API tests against", baseURL)
	os.Exit(m.Run())
}
