package handler

import (
	"net/http"
	"strconv"

	"github.com/Eursukkul/hotel-booking/internal/dto"
	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/repository"
	"github.com/Eursukkul/hotel-booking/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc     service.BookingService
	logRepo repository.NotificationLogRepository
}

func NewBookingHandler(svc service.BookingService, logRepo repository.NotificationLogRepository) *BookingHandler {
	return &BookingHandler{svc: svc, logRepo: logRepo}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	hotels := e.Group("/api/v1/hotels")
	hotels.POST("/:id/bookings", h.CreateBooking)
	hotels.GET("/:id/bookings", h.ListBookings)

	bookings := e.Group("/api/v1/bookings")
	bookings.GET("/:id", h.GetBooking)
	bookings.POST("/:id/confirm", h.ConfirmBooking)
	bookings.POST("/:id/cancel", h.CancelBooking)
	bookings.POST("/:id/complete", h.CompleteBooking)
	bookings.POST("/:id/payments", h.RecordPayment)
	bookings.GET("/:id/notifications", h.ListNotifications)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	hotelID, err := parseID(c, "hotel")
	if err != nil {
		return err
	}

	var req dto.CreateBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	checkIn, err := models.ParseDate(req.CheckIn)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "check_in must be YYYY-MM-DD")
	}
	checkOut, err := models.ParseDate(req.CheckOut)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "check_out must be YYYY-MM-DD")
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), service.CreateBookingInput{
		HotelID:     hotelID,
		RoomID:      req.RoomID,
		ClientEmail: req.ClientEmail,
		Client: service.ClientAttrs{
			FullName:  req.ClientName,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
			DNI:       req.DNI,
		},
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		GuestsCount:     req.GuestsCount,
		SpecialRequests: req.SpecialRequests,
		Channel:         models.Channel(req.Channel),
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	hotelID, err := parseID(c, "hotel")
	if err != nil {
		return err
	}

	filter := repository.BookingFilter{HotelID: hotelID}
	if s := c.QueryParam("status"); s != "" {
		bs := models.BookingStatus(s)
		if !bs.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		filter.Status = &bs
	}
	if s := c.QueryParam("room_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid room_id")
		}
		filter.RoomID = uint(id)
	}
	if s := c.QueryParam("client_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid client_id")
		}
		filter.ClientID = uint(id)
	}

	bookings, err := h.svc.ListBookings(c.Request().Context(), filter)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ConfirmBooking(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}

	booking, err := h.svc.Confirm(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// CancelBooking answers 200 whether or not anything changed; a booking
// that was already cancelled or completed reports cancelled=false.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}

	var req dto.CancelBookingRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
	}

	cancelled, err := h.svc.Cancel(c.Request().Context(), id, req.Reason)
	if err != nil {
		return toHTTPError(err)
	}

	resp := dto.CancelResponse{Cancelled: cancelled, Message: "booking cancelled"}
	if !cancelled {
		resp.Message = "booking was already closed, nothing to cancel"
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) CompleteBooking(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}

	booking, err := h.svc.MarkCompleted(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) RecordPayment(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}

	var req dto.RecordPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	booking, err := h.svc.RecordPayment(c.Request().Context(), id, req.Amount, models.PaymentMode(req.Mode))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListNotifications(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}

	logs, err := h.logRepo.FindByBooking(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, logs)
}
