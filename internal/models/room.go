package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomSuite  RoomType = "suite"
	RoomFamily RoomType = "family"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomSingle, RoomDouble, RoomSuite, RoomFamily:
		return true
	}
	return false
}

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomReserved    RoomStatus = "reserved"
	RoomOccupied    RoomStatus = "occupied"
	RoomCleaning    RoomStatus = "cleaning"
	RoomMaintenance RoomStatus = "maintenance"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomReserved, RoomOccupied, RoomCleaning, RoomMaintenance:
		return true
	}
	return false
}

// RoomEvent is what drives a room from one status to the next.
type RoomEvent string

const (
	// RoomEventBooked fires when a booking on the room becomes confirmed.
	RoomEventBooked RoomEvent = "booked"
	// RoomEventReleased fires when no active booking covers today any more.
	RoomEventReleased RoomEvent = "released"
	// Operational events come from housekeeping, never from bookings.
	RoomEventCleaning    RoomEvent = "cleaning"
	RoomEventMaintenance RoomEvent = "maintenance"
	RoomEventReady       RoomEvent = "ready"
)

// NextRoomStatus is the single transition table for room status. The second
// return value is false when the event does not move the room; callers then
// keep the current status.
func NextRoomStatus(from RoomStatus, ev RoomEvent) (RoomStatus, bool) {
	switch ev {
	case RoomEventBooked:
		if from == RoomAvailable {
			return RoomReserved, true
		}
	case RoomEventReleased:
		if from == RoomReserved || from == RoomOccupied {
			return RoomAvailable, true
		}
	case RoomEventCleaning:
		if from == RoomAvailable || from == RoomMaintenance {
			return RoomCleaning, true
		}
	case RoomEventMaintenance:
		if from == RoomAvailable || from == RoomCleaning {
			return RoomMaintenance, true
		}
	case RoomEventReady:
		if from == RoomCleaning || from == RoomMaintenance {
			return RoomAvailable, true
		}
	}
	return from, false
}

type Room struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	HotelID     uint            `gorm:"not null;uniqueIndex:idx_room_hotel_number" json:"hotel_id"`
	Number      string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_room_hotel_number" json:"number"`
	Type        RoomType        `gorm:"type:varchar(20);not null" json:"type"`
	Capacity    int             `gorm:"not null;check:capacity > 0" json:"capacity"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Status      RoomStatus      `gorm:"type:varchar(20);not null" json:"status"`
	Active      bool            `gorm:"not null" json:"active"`
	Floor       int             `json:"floor"`
	Description string          `gorm:"type:text" json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Hotel *Hotel `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
}
