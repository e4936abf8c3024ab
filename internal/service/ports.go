package service

import (
	"context"

	"github.com/Eursukkul/hotel-booking/internal/models"
)

// NotificationPort sends guest-facing notices. The engine calls it after
// commit and only logs its errors.
type NotificationPort interface {
	SendBookingConfirmation(ctx context.Context, bookingID uint) error
	SendBookingCancellation(ctx context.Context, bookingID uint) error
	SendPaymentConfirmation(ctx context.Context, bookingID uint) error
}

// AvailabilityCache holds advisory search results per hotel. Nothing read
// from it is trusted by a write path. Entries are keyed by the hotel's
// version, read once before the search so a result computed before an
// Invalidate can only land under the superseded version.
type AvailabilityCache interface {
	Version(ctx context.Context, hotelID uint) (int64, error)
	Rooms(ctx context.Context, hotelID uint, version int64, stay models.StayRange, guests int) ([]models.Room, bool)
	StoreRooms(ctx context.Context, hotelID uint, version int64, stay models.StayRange, guests int, rooms []models.Room)
	Invalidate(ctx context.Context, hotelID uint)
}
