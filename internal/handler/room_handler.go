package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Eursukkul/hotel-booking/internal/dto"
	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/service"
	"github.com/labstack/echo/v4"
)

type RoomHandler struct {
	rooms    service.RoomService
	bookings service.BookingService
}

func NewRoomHandler(rooms service.RoomService, bookings service.BookingService) *RoomHandler {
	return &RoomHandler{rooms: rooms, bookings: bookings}
}

func (h *RoomHandler) RegisterRoutes(e *echo.Echo) {
	hotels := e.Group("/api/v1/hotels")
	hotels.POST("/:id/rooms", h.CreateRoom)
	hotels.GET("/:id/rooms", h.ListRooms)
	hotels.GET("/:id/rooms/available", h.AvailableRooms)

	rooms := e.Group("/api/v1/rooms")
	rooms.GET("/:id", h.GetRoom)
	rooms.PATCH("/:id/status", h.SetStatus)
	rooms.GET("/:id/conflicts", h.FindConflicts)
}

func (h *RoomHandler) CreateRoom(c echo.Context) error {
	hotelID, err := parseID(c, "hotel")
	if err != nil {
		return err
	}

	var req dto.CreateRoomRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	room, err := h.rooms.CreateRoom(c.Request().Context(), service.CreateRoomInput{
		HotelID:     hotelID,
		Number:      req.Number,
		Type:        models.RoomType(req.Type),
		Capacity:    req.Capacity,
		Price:       req.Price,
		Active:      active,
		Floor:       req.Floor,
		Description: req.Description,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) ListRooms(c echo.Context) error {
	hotelID, err := parseID(c, "hotel")
	if err != nil {
		return err
	}

	var status *models.RoomStatus
	if s := c.QueryParam("status"); s != "" {
		rs := models.RoomStatus(s)
		status = &rs
	}

	rooms, err := h.rooms.ListRooms(c.Request().Context(), hotelID, status)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) AvailableRooms(c echo.Context) error {
	hotelID, err := parseID(c, "hotel")
	if err != nil {
		return err
	}
	checkIn, checkOut, err := parseStay(c)
	if err != nil {
		return err
	}
	guests := 1
	if s := c.QueryParam("guests"); s != "" {
		if guests, err = strconv.Atoi(s); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid guests")
		}
	}

	rooms, err := h.rooms.AvailableRooms(c.Request().Context(), hotelID, checkIn, checkOut, guests)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) GetRoom(c echo.Context) error {
	id, err := parseID(c, "room")
	if err != nil {
		return err
	}
	room, err := h.rooms.GetRoom(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) SetStatus(c echo.Context) error {
	id, err := parseID(c, "room")
	if err != nil {
		return err
	}

	var req dto.RoomStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	room, err := h.rooms.SetOperationalStatus(c.Request().Context(), id, models.RoomStatus(req.Status))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) FindConflicts(c echo.Context) error {
	id, err := parseID(c, "room")
	if err != nil {
		return err
	}
	checkIn, checkOut, err := parseStay(c)
	if err != nil {
		return err
	}

	var exclude *uint
	if s := c.QueryParam("exclude_booking_id"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid exclude_booking_id")
		}
		ex := uint(v)
		exclude = &ex
	}

	conflicts, err := h.bookings.FindConflicts(c.Request().Context(), id, checkIn, checkOut, exclude)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponses(conflicts))
}

func parseStay(c echo.Context) (time.Time, time.Time, error) {
	checkIn, err := models.ParseDate(c.QueryParam("check_in"))
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "check_in must be YYYY-MM-DD")
	}
	checkOut, err := models.ParseDate(c.QueryParam("check_out"))
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "check_out must be YYYY-MM-DD")
	}
	return checkIn, checkOut, nil
}
