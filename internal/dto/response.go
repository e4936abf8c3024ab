package dto

import (
	"time"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/shopspring/decimal"
)

type BookingResponse struct {
	ID                 uint                 `json:"id"`
	Reference          string               `json:"reference"`
	HotelID            uint                 `json:"hotel_id"`
	RoomID             uint                 `json:"room_id"`
	ClientID           uint                 `json:"client_id"`
	CheckIn            string               `json:"check_in"`
	CheckOut           string               `json:"check_out"`
	Nights             int                  `json:"nights"`
	Status             models.BookingStatus `json:"status"`
	PaymentStatus      models.PaymentStatus `json:"payment_status"`
	Channel            models.Channel       `json:"channel"`
	GuestsCount        int                  `json:"guests_count"`
	TotalPrice         decimal.Decimal      `json:"total_price"`
	PaidAmount         decimal.Decimal      `json:"paid_amount"`
	SpecialRequests    string               `json:"special_requests,omitempty"`
	CancellationReason string               `json:"cancellation_reason,omitempty"`
	ConfirmedAt        *time.Time           `json:"confirmed_at,omitempty"`
	CancelledAt        *time.Time           `json:"cancelled_at,omitempty"`
	CompletedAt        *time.Time           `json:"completed_at,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
}

type CancelResponse struct {
	Cancelled bool   `json:"cancelled"`
	Message   string `json:"message"`
}

type ClientResponse struct {
	Client  *models.Client `json:"client"`
	Created bool           `json:"created"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type ConflictErrorResponse struct {
	Message               string `json:"message"`
	ConflictingBookingIDs []uint `json:"conflicting_booking_ids"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	stay := b.Stay()
	return BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference,
		HotelID:            b.HotelID,
		RoomID:             b.RoomID,
		ClientID:           b.ClientID,
		CheckIn:            b.CheckInDate.Format(models.DateLayout),
		CheckOut:           b.CheckOutDate.Format(models.DateLayout),
		Nights:             stay.Nights(),
		Status:             b.Status,
		PaymentStatus:      b.PaymentStatus,
		Channel:            b.Channel,
		GuestsCount:        b.GuestsCount,
		TotalPrice:         b.TotalPrice,
		PaidAmount:         b.PaidAmount,
		SpecialRequests:    b.SpecialRequests,
		CancellationReason: b.CancellationReason,
		ConfirmedAt:        b.ConfirmedAt,
		CancelledAt:        b.CancelledAt,
		CompletedAt:        b.CompletedAt,
		CreatedAt:          b.CreatedAt,
	}
}

func ToBookingResponses(bookings []models.Booking) []BookingResponse {
	resp := make([]BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = ToBookingResponse(&bookings[i])
	}
	return resp
}
