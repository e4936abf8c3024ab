package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// ActiveStatuses are the statuses that hold a room and can conflict.
var ActiveStatuses = []BookingStatus{StatusPending, StatusConfirmed}

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

func (s BookingStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s BookingStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CanTransitionTo is the booking state machine:
//
//	pending <-> confirmed
//	pending, confirmed -> cancelled
//	confirmed -> completed
//
// cancelled and completed have no outgoing edges.
func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	switch s {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusPending || to == StatusCancelled || to == StatusCompleted
	case StatusCancelled, StatusCompleted:
		return false
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

type PaymentMode string

const (
	PaymentFull        PaymentMode = "full"
	PaymentPartialMode PaymentMode = "partial"
)

// Channel is where a booking request came from. It decides the initial status.
type Channel string

const (
	ChannelPortal Channel = "portal"
	ChannelStaff  Channel = "staff"
	ChannelImport Channel = "import"
)

func (c Channel) InitialStatus() BookingStatus {
	if c == ChannelPortal {
		return StatusConfirmed
	}
	return StatusPending
}

type Booking struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	Reference          string          `gorm:"type:varchar(36);uniqueIndex;not null" json:"reference"`
	HotelID            uint            `gorm:"not null;index" json:"hotel_id"`
	ClientID           uint            `gorm:"not null;index" json:"client_id"`
	RoomID             uint            `gorm:"not null;index:idx_booking_room_dates" json:"room_id"`
	CheckInDate        time.Time       `gorm:"type:date;not null;index:idx_booking_room_dates" json:"check_in_date"`
	CheckOutDate       time.Time       `gorm:"type:date;not null;index:idx_booking_room_dates" json:"check_out_date"`
	Status             BookingStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentStatus      PaymentStatus   `gorm:"type:varchar(20);not null" json:"payment_status"`
	Channel            Channel         `gorm:"type:varchar(20);not null" json:"channel"`
	GuestsCount        int             `gorm:"not null" json:"guests_count"`
	TotalPrice         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`
	PaidAmount         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"paid_amount"`
	SpecialRequests    string          `gorm:"type:text" json:"special_requests"`
	CancellationReason string          `gorm:"type:text" json:"cancellation_reason"`
	ConfirmedAt        *time.Time      `json:"confirmed_at,omitempty"`
	CancelledAt        *time.Time      `json:"cancelled_at,omitempty"`
	CompletedAt        *time.Time      `json:"completed_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`

	Hotel  *Hotel  `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Room   *Room   `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

func (b *Booking) Stay() StayRange {
	return StayRange{CheckIn: b.CheckInDate, CheckOut: b.CheckOutDate}
}

func (b *Booking) Balance() decimal.Decimal {
	return b.TotalPrice.Sub(b.PaidAmount)
}
