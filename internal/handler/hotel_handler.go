package handler

import (
	"net/http"

	"github.com/Eursukkul/hotel-booking/internal/dto"
	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/service"
	"github.com/labstack/echo/v4"
)

type HotelHandler struct {
	tenants service.TenantService
}

func NewHotelHandler(tenants service.TenantService) *HotelHandler {
	return &HotelHandler{tenants: tenants}
}

func (h *HotelHandler) RegisterRoutes(e *echo.Echo) {
	hotels := e.Group("/api/v1/hotels")
	hotels.POST("", h.CreateHotel)
	hotels.GET("", h.ListHotels)
	hotels.GET("/:id", h.GetHotel)
	hotels.PATCH("/:id/subscription", h.ChangeSubscription)
}

func (h *HotelHandler) CreateHotel(c echo.Context) error {
	var req dto.CreateHotelRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	hotel, err := h.tenants.CreateHotel(c.Request().Context(), service.CreateHotelInput{
		Slug:    req.Slug,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Plan:    models.Plan(req.Plan),
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, hotel)
}

func (h *HotelHandler) ListHotels(c echo.Context) error {
	hotels, err := h.tenants.ListHotels(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, hotels)
}

func (h *HotelHandler) GetHotel(c echo.Context) error {
	id, err := parseID(c, "hotel")
	if err != nil {
		return err
	}
	hotel, err := h.tenants.GetHotel(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, hotel)
}

func (h *HotelHandler) ChangeSubscription(c echo.Context) error {
	id, err := parseID(c, "hotel")
	if err != nil {
		return err
	}

	var req dto.ChangeSubscriptionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	var plan *models.Plan
	if req.Plan != nil {
		p := models.Plan(*req.Plan)
		plan = &p
	}

	hotel, err := h.tenants.ChangeSubscription(c.Request().Context(), id, models.SubscriptionStatus(req.SubscriptionStatus), plan)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, hotel)
}
