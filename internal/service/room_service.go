package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateRoomInput struct {
	HotelID     uint
	Number      string
	Type        models.RoomType
	Capacity    int
	Price       decimal.Decimal
	Active      bool
	Floor       int
	Description string
}

type RoomService interface {
	CreateRoom(ctx context.Context, in CreateRoomInput) (*models.Room, error)
	GetRoom(ctx context.Context, id uint) (*models.Room, error)
	ListRooms(ctx context.Context, hotelID uint, status *models.RoomStatus) ([]models.Room, error)
	// SetOperationalStatus handles housekeeping moves (cleaning,
	// maintenance, back to available). Booking-driven statuses are refused.
	SetOperationalStatus(ctx context.Context, roomID uint, status models.RoomStatus) (*models.Room, error)
	AvailableRooms(ctx context.Context, hotelID uint, checkIn, checkOut time.Time, guests int) ([]models.Room, error)
}

type roomService struct {
	roomRepo    repository.RoomRepository
	hotelRepo   repository.HotelRepository
	bookingRepo repository.BookingRepository
	cache       AvailabilityCache
	now         func() time.Time
}

// NewRoomService builds the inventory service. cache may be nil.
func NewRoomService(roomRepo repository.RoomRepository, hotelRepo repository.HotelRepository, bookingRepo repository.BookingRepository, cache AvailabilityCache) RoomService {
	return &roomService{roomRepo: roomRepo, hotelRepo: hotelRepo, bookingRepo: bookingRepo, cache: cache, now: time.Now}
}

func (s *roomService) CreateRoom(ctx context.Context, in CreateRoomInput) (*models.Room, error) {
	if _, err := s.hotelRepo.FindByID(ctx, in.HotelID); err != nil {
		return nil, notFound(err, ErrHotelNotFound)
	}
	if in.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be positive", ErrInvalidRoom)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidRoom)
	}
	if !in.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidRoom, in.Type)
	}

	room := &models.Room{
		HotelID:     in.HotelID,
		Number:      in.Number,
		Type:        in.Type,
		Capacity:    in.Capacity,
		Price:       in.Price,
		Status:      models.RoomAvailable,
		Active:      in.Active,
		Floor:       in.Floor,
		Description: in.Description,
	}
	if err := s.roomRepo.Create(ctx, s.roomRepo.GetDB(), room); err != nil {
		return nil, err
	}
	s.invalidate(ctx, room.HotelID)
	return room, nil
}

func (s *roomService) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrRoomNotFound)
	}
	return room, nil
}

func (s *roomService) ListRooms(ctx context.Context, hotelID uint, status *models.RoomStatus) ([]models.Room, error) {
	return s.roomRepo.FindByHotel(ctx, hotelID, status)
}

func (s *roomService) SetOperationalStatus(ctx context.Context, roomID uint, status models.RoomStatus) (*models.Room, error) {
	var event models.RoomEvent
	switch status {
	case models.RoomCleaning:
		event = models.RoomEventCleaning
	case models.RoomMaintenance:
		event = models.RoomEventMaintenance
	case models.RoomAvailable:
		event = models.RoomEventReady
	default:
		return nil, fmt.Errorf("%w: %s is managed by bookings", ErrInvalidRoomStatus, status)
	}

	var result *models.Room
	err := s.roomRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, roomID)
		if err != nil {
			return notFound(err, ErrRoomNotFound)
		}
		next, ok := models.NextRoomStatus(room.Status, event)
		if !ok {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidRoomStatus, room.Status, status)
		}
		if event == models.RoomEventReady {
			// A stay confirmed while housekeeping held the room takes it over.
			held, err := s.bookingRepo.ConfirmedCovering(ctx, tx, room.ID, models.Date(s.now()))
			if err != nil {
				return err
			}
			if held {
				next, _ = models.NextRoomStatus(next, models.RoomEventBooked)
			}
		}
		if err := s.roomRepo.UpdateStatus(ctx, tx, room.ID, next); err != nil {
			return err
		}
		room.Status = next
		result = room
		return nil
	})
	if err != nil {
		return nil, classifyStorageError(err)
	}
	s.invalidate(ctx, result.HotelID)
	return result, nil
}

// AvailableRooms lists active rooms of the hotel that fit guests and have
// no active booking overlapping the stay. The answer is advisory; booking
// creation re-checks under the room lock.
func (s *roomService) AvailableRooms(ctx context.Context, hotelID uint, checkIn, checkOut time.Time, guests int) ([]models.Room, error) {
	stay := models.NewStayRange(checkIn, checkOut)
	if !stay.Valid() {
		return nil, ErrInvalidDateRange
	}
	if guests < 1 {
		return nil, ErrInvalidGuestsCount
	}
	if _, err := s.hotelRepo.FindByID(ctx, hotelID); err != nil {
		return nil, notFound(err, ErrHotelNotFound)
	}

	var (
		version   int64
		cacheable bool
	)
	if s.cache != nil {
		v, err := s.cache.Version(ctx, hotelID)
		if err != nil {
			log.Printf("[RoomService] availability cache version for hotel %d: %v", hotelID, err)
		} else {
			version, cacheable = v, true
			if rooms, ok := s.cache.Rooms(ctx, hotelID, version, stay, guests); ok {
				return rooms, nil
			}
		}
	}

	candidates, err := s.roomRepo.FindCandidates(ctx, hotelID, guests)
	if err != nil {
		return nil, err
	}
	busy, err := s.bookingRepo.ConflictingRoomIDs(ctx, hotelID, stay)
	if err != nil {
		return nil, err
	}
	taken := make(map[uint]struct{}, len(busy))
	for _, id := range busy {
		taken[id] = struct{}{}
	}

	available := make([]models.Room, 0, len(candidates))
	for _, r := range candidates {
		if _, ok := taken[r.ID]; !ok {
			available = append(available, r)
		}
	}

	if cacheable {
		s.cache.StoreRooms(ctx, hotelID, version, stay, guests, available)
	}
	return available, nil
}

func (s *roomService) invalidate(ctx context.Context, hotelID uint) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, hotelID)
	}
}
