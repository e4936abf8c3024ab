package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrInvalidDateRange           = errors.New("check-in date must be before check-out date")
	ErrTenantNotAcceptingBookings = errors.New("hotel is not accepting new bookings")
	ErrRoomUnavailable            = errors.New("room is not available for booking")
	ErrCapacityExceeded           = errors.New("guests count exceeds room capacity")
	ErrDateRangeConflict          = errors.New("room not available for selected dates")
	ErrConcurrencyConflict        = errors.New("booking was modified concurrently, retry the request")
	ErrInvalidGuestsCount         = errors.New("guests count must be at least 1")
	ErrInvalidPayment             = errors.New("invalid payment")
	ErrInvalidTransition          = errors.New("booking status does not allow this transition")
	ErrInvalidRoomStatus          = errors.New("room status cannot be changed this way")
	ErrInvalidRoom                = errors.New("invalid room")
	ErrInvalidSubscription        = errors.New("invalid subscription status or plan")
	ErrInvalidEmail               = errors.New("client email is required")
	ErrInvalidChannel             = errors.New("unknown booking channel")
	ErrHotelNotFound              = errors.New("hotel not found")
	ErrRoomNotFound               = errors.New("room not found")
	ErrClientNotFound             = errors.New("client not found")
	ErrBookingNotFound            = errors.New("booking not found")
)

// ConflictError carries the ids of the active bookings that overlap a
// requested stay. It matches ErrDateRangeConflict with errors.Is.
type ConflictError struct {
	BookingIDs []uint
}

func (e *ConflictError) Error() string {
	ids := make([]string, len(e.BookingIDs))
	for i, id := range e.BookingIDs {
		ids[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("%s (conflicting bookings: %s)", ErrDateRangeConflict, strings.Join(ids, ", "))
}

func (e *ConflictError) Unwrap() error {
	return ErrDateRangeConflict
}

// Postgres SQLSTATEs that mean "another writer got there first".
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// classifyStorageError turns lock and serialization failures into
// ErrConcurrencyConflict and leaves every other error untouched.
func classifyStorageError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return fmt.Errorf("%w: %s", ErrConcurrencyConflict, pgErr.Message)
		}
	}
	return err
}

// notFound maps gorm.ErrRecordNotFound to sentinel and passes other errors through.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
