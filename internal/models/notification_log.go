package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationKind string

const (
	NotifyBookingConfirmation NotificationKind = "booking_confirmation"
	NotifyBookingCancellation NotificationKind = "booking_cancellation"
	NotifyPaymentConfirmation NotificationKind = "payment_confirmation"
)

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// NotificationLog records every notification attempt. A failed row is how
// a delivery problem surfaces without touching the booking.
type NotificationLog struct {
	ID           uint               `gorm:"primaryKey" json:"id"`
	BookingID    uint               `gorm:"not null;index" json:"booking_id"`
	ClientID     uint               `gorm:"not null;index" json:"client_id"`
	Kind         NotificationKind   `gorm:"type:varchar(40);not null" json:"kind"`
	Recipient    string             `gorm:"type:varchar(200);not null" json:"recipient"`
	Subject      string             `gorm:"type:varchar(300);not null" json:"subject"`
	Body         string             `gorm:"type:text" json:"body"`
	Payload      datatypes.JSON     `json:"payload"`
	Status       NotificationStatus `gorm:"type:varchar(20);not null" json:"status"`
	ErrorMessage string             `gorm:"type:text" json:"error_message,omitempty"`
	SentAt       *time.Time         `json:"sent_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
