package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/Eursukkul/hotel-booking/internal/dto"
	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableRooms_Handler(t *testing.T) {
	rooms := &mockRoomService{
		availableFn: func(ctx context.Context, hotelID uint, in, out time.Time, guests int) ([]models.Room, error) {
			assert.Equal(t, uint(1), hotelID)
			assert.Equal(t, 3, guests)
			assert.Equal(t, "2024-05-01", in.Format(models.DateLayout))
			assert.Equal(t, "2024-05-03", out.Format(models.DateLayout))
			return []models.Room{{ID: 7, Number: "701", Capacity: 4}}, nil
		},
	}
	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/hotels/1/rooms/available?check_in=2024-05-01&check_out=2024-05-03&guests=3", "", "1")

	require.NoError(t, NewRoomHandler(rooms, nil).AvailableRooms(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp []models.Room
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "701", resp[0].Number)
}

func TestAvailableRooms_Handler_BadDates(t *testing.T) {
	e := newTestEcho()
	c, _ := newJSONContext(e, http.MethodGet, "/api/v1/hotels/1/rooms/available?check_in=May+1&check_out=2024-05-03", "", "1")

	err := NewRoomHandler(&mockRoomService{}, nil).AvailableRooms(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "check_in must be YYYY-MM-DD", he.Message)
}

func TestSetRoomStatus_Handler(t *testing.T) {
	rooms := &mockRoomService{
		statusFn: func(ctx context.Context, id uint, status models.RoomStatus) (*models.Room, error) {
			return &models.Room{ID: id, Status: status}, nil
		},
	}
	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPatch, "/api/v1/rooms/4/status", `{"status":"cleaning"}`, "4")

	require.NoError(t, NewRoomHandler(rooms, nil).SetStatus(c))

	var resp models.Room
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.RoomCleaning, resp.Status)
}

func TestSetRoomStatus_Handler_BookingDrivenStatusRejected(t *testing.T) {
	e := newTestEcho()
	c, _ := newJSONContext(e, http.MethodPatch, "/api/v1/rooms/4/status", `{"status":"reserved"}`, "4")

	err := NewRoomHandler(&mockRoomService{}, nil).SetStatus(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestFindConflicts_Handler(t *testing.T) {
	bookings := &mockBookingService{
		conflictsFn: func(ctx context.Context, roomID uint, in, out time.Time, exclude *uint) ([]models.Booking, error) {
			assert.Equal(t, uint(10), roomID)
			require.NotNil(t, exclude)
			assert.Equal(t, uint(2), *exclude)
			return []models.Booking{*sampleBooking(5, models.StatusConfirmed)}, nil
		},
	}
	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/rooms/10/conflicts?check_in=2024-03-02&check_out=2024-03-05&exclude_booking_id=2", "", "10")

	require.NoError(t, NewRoomHandler(&mockRoomService{}, bookings).FindConflicts(c))

	var resp []dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, uint(5), resp[0].ID)
}

func TestGetRoom_Handler_NotFound(t *testing.T) {
	e := newTestEcho()
	c, _ := newJSONContext(e, http.MethodGet, "/api/v1/rooms/99", "", "99")

	err := NewRoomHandler(&mockRoomService{}, nil).GetRoom(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
	assert.Equal(t, service.ErrRoomNotFound.Error(), he.Message)
}
