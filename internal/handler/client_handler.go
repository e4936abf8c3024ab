package handler

import (
	"net/http"
	"strconv"

	"github.com/Eursukkul/hotel-booking/internal/dto"
	"github.com/Eursukkul/hotel-booking/internal/service"
	"github.com/labstack/echo/v4"
)

type ClientHandler struct {
	clients service.ClientRegistry
}

func NewClientHandler(clients service.ClientRegistry) *ClientHandler {
	return &ClientHandler{clients: clients}
}

func (h *ClientHandler) RegisterRoutes(e *echo.Echo) {
	clients := e.Group("/api/v1/clients")
	clients.POST("", h.RegisterClient)
	clients.GET("", h.ListClients)
	clients.GET("/:id", h.GetClient)
}

// RegisterClient is called by the sign-up flow once a user account
// exists. It returns 201 for a new client and 200 for a match.
func (h *ClientHandler) RegisterClient(c echo.Context) error {
	var req dto.RegisterClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	client, created, err := h.clients.FindOrCreate(c.Request().Context(), nil, req.Email, service.ClientAttrs{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		DNI:       req.DNI,
		Address:   req.Address,
		UserID:    req.UserID,
		HotelID:   req.HotelID,
	})
	if err != nil {
		return toHTTPError(err)
	}

	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	return c.JSON(code, dto.ClientResponse{Client: client, Created: created})
}

func (h *ClientHandler) ListClients(c echo.Context) error {
	var hotelID *uint
	if s := c.QueryParam("hotel_id"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid hotel_id")
		}
		id := uint(v)
		hotelID = &id
	}

	clients, err := h.clients.List(c.Request().Context(), hotelID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) GetClient(c echo.Context) error {
	id, err := parseID(c, "client")
	if err != nil {
		return err
	}
	client, err := h.clients.Get(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, client)
}
