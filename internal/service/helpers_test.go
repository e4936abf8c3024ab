package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/repository"
	"github.com/Eursukkul/hotel-booking/internal/testutil"
	"gorm.io/gorm"
)

// --- Recording NotificationPort ---

type sentNotice struct {
	Kind      models.NotificationKind
	BookingID uint
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotice
	err  error
}

func (n *recordingNotifier) record(kind models.NotificationKind, id uint) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotice{Kind: kind, BookingID: id})
	return n.err
}

func (n *recordingNotifier) SendBookingConfirmation(ctx context.Context, id uint) error {
	return n.record(models.NotifyBookingConfirmation, id)
}
func (n *recordingNotifier) SendBookingCancellation(ctx context.Context, id uint) error {
	return n.record(models.NotifyBookingCancellation, id)
}
func (n *recordingNotifier) SendPaymentConfirmation(ctx context.Context, id uint) error {
	return n.record(models.NotifyPaymentConfirmation, id)
}

func (n *recordingNotifier) count(kind models.NotificationKind) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, s := range n.sent {
		if s.Kind == kind {
			c++
		}
	}
	return c
}

// --- Fixture ---

var fixedNow = time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

type fixture struct {
	db       *gorm.DB
	notifier *recordingNotifier
	bookings repository.BookingRepository
	rooms    repository.RoomRepository
	hotels   repository.HotelRepository
	clients  ClientRegistry
	svc      BookingService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		db:       db,
		notifier: &recordingNotifier{},
		bookings: repository.NewBookingRepository(db),
		rooms:    repository.NewRoomRepository(db),
		hotels:   repository.NewHotelRepository(db),
		clients:  NewClientRegistry(repository.NewClientRepository(db)),
	}
	f.svc = NewBookingService(f.bookings, f.rooms, f.hotels, f.clients, NewSubscriptionGate(), f.notifier,
		WithClock(func() time.Time { return fixedNow }))
	return f
}

func (f *fixture) roomStatus(t *testing.T, id uint) models.RoomStatus {
	t.Helper()
	r, err := f.rooms.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("load room %d: %v", id, err)
	}
	return r.Status
}

func (f *fixture) countBookings(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(&models.Booking{}).Count(&n).Error; err != nil {
		t.Fatalf("count bookings: %v", err)
	}
	return n
}

func staffInput(hotelID, roomID uint, in, out time.Time) CreateBookingInput {
	return CreateBookingInput{
		HotelID:     hotelID,
		RoomID:      roomID,
		ClientEmail: "ana@example.com",
		Client:      ClientAttrs{FullName: "Ana Gomez", Phone: "+54 11 5555"},
		CheckIn:     in,
		CheckOut:    out,
		GuestsCount: 2,
		Channel:     models.ChannelStaff,
	}
}

var errNotifierDown = errors.New("smtp relay down")
