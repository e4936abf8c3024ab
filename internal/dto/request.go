package dto

import "github.com/shopspring/decimal"

type CreateHotelRequest struct {
	Slug    string `json:"slug" validate:"required,max=80"`
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Plan    string `json:"plan" validate:"omitempty,oneof=starter grow"`
}

type ChangeSubscriptionRequest struct {
	SubscriptionStatus string  `json:"subscription_status" validate:"required,oneof=trial active blocked cancelled"`
	Plan               *string `json:"plan" validate:"omitempty,oneof=starter grow"`
}

type CreateRoomRequest struct {
	Number      string          `json:"number" validate:"required,max=20"`
	Type        string          `json:"type" validate:"required,oneof=single double suite family"`
	Capacity    int             `json:"capacity" validate:"required,gt=0"`
	Price       decimal.Decimal `json:"price"`
	Active      *bool           `json:"active"`
	Floor       int             `json:"floor" validate:"gte=0"`
	Description string          `json:"description"`
}

type RoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available cleaning maintenance"`
}

type CreateBookingRequest struct {
	RoomID          uint   `json:"room_id" validate:"required"`
	ClientEmail     string `json:"client_email" validate:"required,email"`
	ClientName      string `json:"client_name"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	DNI             string `json:"dni"`
	CheckIn         string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut        string `json:"check_out" validate:"required,datetime=2006-01-02"`
	GuestsCount     int    `json:"guests_count" validate:"required,gt=0"`
	SpecialRequests string `json:"special_requests"`
	Channel         string `json:"channel" validate:"omitempty,oneof=portal staff"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type RecordPaymentRequest struct {
	Mode   string          `json:"mode" validate:"required,oneof=full partial"`
	Amount decimal.Decimal `json:"amount"`
}

type RegisterClientRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     string  `json:"phone"`
	DNI       string  `json:"dni"`
	Address   string  `json:"address"`
	UserID    *string `json:"user_id"`
	HotelID   *uint   `json:"hotel_id"`
}
