package handler

import (
	"context"
	"time"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/repository"
	"github.com/Eursukkul/hotel-booking/internal/service"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- Mock BookingService ---

type mockBookingService struct {
	createFn    func(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error)
	confirmFn   func(ctx context.Context, id uint) (*models.Booking, error)
	cancelFn    func(ctx context.Context, id uint, reason string) (bool, error)
	completeFn  func(ctx context.Context, id uint) (*models.Booking, error)
	paymentFn   func(ctx context.Context, id uint, amount decimal.Decimal, mode models.PaymentMode) (*models.Booking, error)
	conflictsFn func(ctx context.Context, roomID uint, in, out time.Time, exclude *uint) ([]models.Booking, error)
	getFn       func(ctx context.Context, id uint) (*models.Booking, error)
	listFn      func(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error) {
	return m.createFn(ctx, in)
}
func (m *mockBookingService) Confirm(ctx context.Context, id uint) (*models.Booking, error) {
	return m.confirmFn(ctx, id)
}
func (m *mockBookingService) Cancel(ctx context.Context, id uint, reason string) (bool, error) {
	return m.cancelFn(ctx, id, reason)
}
func (m *mockBookingService) MarkCompleted(ctx context.Context, id uint) (*models.Booking, error) {
	return m.completeFn(ctx, id)
}
func (m *mockBookingService) RecordPayment(ctx context.Context, id uint, amount decimal.Decimal, mode models.PaymentMode) (*models.Booking, error) {
	return m.paymentFn(ctx, id, amount, mode)
}
func (m *mockBookingService) FindConflicts(ctx context.Context, roomID uint, in, out time.Time, exclude *uint) ([]models.Booking, error) {
	return m.conflictsFn(ctx, roomID, in, out, exclude)
}
func (m *mockBookingService) CompleteDue(ctx context.Context, asOf time.Time) (int, error) {
	return 0, nil
}
func (m *mockBookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	return m.getFn(ctx, id)
}
func (m *mockBookingService) ListBookings(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error) {
	return m.listFn(ctx, filter)
}

// --- Mock RoomService ---

type mockRoomService struct {
	availableFn func(ctx context.Context, hotelID uint, in, out time.Time, guests int) ([]models.Room, error)
	statusFn    func(ctx context.Context, roomID uint, status models.RoomStatus) (*models.Room, error)
}

func (m *mockRoomService) CreateRoom(ctx context.Context, in service.CreateRoomInput) (*models.Room, error) {
	return &models.Room{ID: 1, HotelID: in.HotelID, Number: in.Number, Capacity: in.Capacity, Active: in.Active}, nil
}
func (m *mockRoomService) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	return nil, service.ErrRoomNotFound
}
func (m *mockRoomService) ListRooms(ctx context.Context, hotelID uint, status *models.RoomStatus) ([]models.Room, error) {
	return nil, nil
}
func (m *mockRoomService) SetOperationalStatus(ctx context.Context, roomID uint, status models.RoomStatus) (*models.Room, error) {
	return m.statusFn(ctx, roomID, status)
}
func (m *mockRoomService) AvailableRooms(ctx context.Context, hotelID uint, in, out time.Time, guests int) ([]models.Room, error) {
	return m.availableFn(ctx, hotelID, in, out, guests)
}

// --- Mock TenantService ---

type mockTenantService struct {
	changeFn func(ctx context.Context, id uint, status models.SubscriptionStatus, plan *models.Plan) (*models.Hotel, error)
}

func (m *mockTenantService) CreateHotel(ctx context.Context, in service.CreateHotelInput) (*models.Hotel, error) {
	return &models.Hotel{ID: 1, Slug: in.Slug, Name: in.Name, Plan: models.PlanStarter, SubscriptionStatus: models.SubscriptionTrial}, nil
}
func (m *mockTenantService) GetHotel(ctx context.Context, id uint) (*models.Hotel, error) {
	return nil, service.ErrHotelNotFound
}
func (m *mockTenantService) ListHotels(ctx context.Context) ([]models.Hotel, error) {
	return nil, nil
}
func (m *mockTenantService) ChangeSubscription(ctx context.Context, id uint, status models.SubscriptionStatus, plan *models.Plan) (*models.Hotel, error) {
	return m.changeFn(ctx, id, status, plan)
}

// --- Mock ClientRegistry ---

type mockClientRegistry struct {
	findOrCreateFn func(ctx context.Context, email string, attrs service.ClientAttrs) (*models.Client, bool, error)
}

func (m *mockClientRegistry) FindOrCreate(ctx context.Context, tx *gorm.DB, email string, attrs service.ClientAttrs) (*models.Client, bool, error) {
	return m.findOrCreateFn(ctx, email, attrs)
}
func (m *mockClientRegistry) Get(ctx context.Context, id uint) (*models.Client, error) {
	return nil, service.ErrClientNotFound
}
func (m *mockClientRegistry) List(ctx context.Context, hotelID *uint) ([]models.Client, error) {
	return nil, nil
}
