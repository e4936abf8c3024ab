package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Eursukkul/hotel-booking/internal/dto"
	"github.com/Eursukkul/hotel-booking/internal/service"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps service errors to status codes. Anything unknown is a 500.
func toHTTPError(err error) error {
	var conflict *service.ConflictError
	switch {
	case errors.As(err, &conflict):
		return echo.NewHTTPError(http.StatusConflict, dto.ConflictErrorResponse{
			Message:               service.ErrDateRangeConflict.Error(),
			ConflictingBookingIDs: conflict.BookingIDs,
		})
	case errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrInvalidGuestsCount),
		errors.Is(err, service.ErrInvalidPayment),
		errors.Is(err, service.ErrInvalidChannel),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidRoom),
		errors.Is(err, service.ErrInvalidSubscription):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTenantNotAcceptingBookings):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrRoomUnavailable),
		errors.Is(err, service.ErrCapacityExceeded):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrDateRangeConflict),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrInvalidRoomStatus):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrConcurrencyConflict):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, service.ErrHotelNotFound),
		errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrClientNotFound),
		errors.Is(err, service.ErrBookingNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)).SetInternal(err)
	}
}

// parseID reads the :id path param; what names the resource in the error.
func parseID(c echo.Context, what string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+what+" id")
	}
	return uint(id), nil
}

// bindAndValidate binds the request body into req and runs the validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if c.Echo().Validator != nil {
		if err := c.Validate(req); err != nil {
			return err
		}
	}
	return nil
}
