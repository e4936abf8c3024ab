package repository

import (
	"context"
	"time"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"gorm.io/gorm"
)

// BookingFilter narrows List queries. Zero values mean "any".
type BookingFilter struct {
	HotelID  uint
	RoomID   uint
	ClientID uint
	Status   *models.BookingStatus
}

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	CreateInBatches(ctx context.Context, tx *gorm.DB, bookings []models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindDetailed(ctx context.Context, id uint) (*models.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error)
	FindConflicts(ctx context.Context, tx *gorm.DB, roomID uint, stay models.StayRange, excludeID *uint) ([]models.Booking, error)
	ExistsCovering(ctx context.Context, tx *gorm.DB, roomID uint, day time.Time, excludeID uint) (bool, error)
	ConfirmedCovering(ctx context.Context, tx *gorm.DB, roomID uint, day time.Time) (bool, error)
	ConflictingRoomIDs(ctx context.Context, hotelID uint, stay models.StayRange) ([]uint, error)
	FindDueForCompletion(ctx context.Context, asOf time.Time) ([]models.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	Update(ctx context.Context, tx *gorm.DB, bookingID uint, fields map[string]any) error
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) CreateInBatches(ctx context.Context, tx *gorm.DB, bookings []models.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	return tx.WithContext(ctx).CreateInBatches(bookings, 100).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindDetailed loads the booking with its hotel, room and client.
func (r *bookingRepository) FindDetailed(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Hotel").
		Preload("Room").
		Preload("Client").
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := forUpdate(tx.WithContext(ctx)).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindConflicts returns active bookings on the room whose half-open stay
// overlaps stay. Pass tx from a transaction holding the room lock when the
// result guards a write.
func (r *bookingRepository) FindConflicts(ctx context.Context, tx *gorm.DB, roomID uint, stay models.StayRange, excludeID *uint) ([]models.Booking, error) {
	var bookings []models.Booking
	q := tx.WithContext(ctx).
		Where("room_id = ? AND status IN ?", roomID, models.ActiveStatuses).
		Where("check_in_date < ? AND check_out_date > ?", stay.CheckOut, stay.CheckIn)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	if err := q.Order("check_in_date ASC, id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// ExistsCovering reports whether another active booking on the room has a
// guest on the night of day.
func (r *bookingRepository) ExistsCovering(ctx context.Context, tx *gorm.DB, roomID uint, day time.Time, excludeID uint) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("room_id = ? AND status IN ? AND id <> ?", roomID, models.ActiveStatuses, excludeID).
		Where("check_in_date <= ? AND check_out_date > ?", day, day).
		Count(&count).Error
	return count > 0, err
}

// ConfirmedCovering reports whether a confirmed booking on the room has a
// guest on the night of day.
func (r *bookingRepository) ConfirmedCovering(ctx context.Context, tx *gorm.DB, roomID uint, day time.Time) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("room_id = ? AND status = ?", roomID, models.StatusConfirmed).
		Where("check_in_date <= ? AND check_out_date > ?", day, day).
		Count(&count).Error
	return count > 0, err
}

func (r *bookingRepository) ConflictingRoomIDs(ctx context.Context, hotelID uint, stay models.StayRange) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Distinct("room_id").
		Where("hotel_id = ? AND status IN ?", hotelID, models.ActiveStatuses).
		Where("check_in_date < ? AND check_out_date > ?", stay.CheckOut, stay.CheckIn).
		Pluck("room_id", &ids).Error
	return ids, err
}

func (r *bookingRepository) FindDueForCompletion(ctx context.Context, asOf time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("status = ? AND check_out_date <= ?", models.StatusConfirmed, asOf).
		Order("check_out_date ASC, id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) List(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx)
	if filter.HotelID != 0 {
		q = q.Where("hotel_id = ?", filter.HotelID)
	}
	if filter.RoomID != 0 {
		q = q.Where("room_id = ?", filter.RoomID)
	}
	if filter.ClientID != 0 {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if err := q.Order("check_in_date ASC, id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) Update(ctx context.Context, tx *gorm.DB, bookingID uint, fields map[string]any) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Updates(fields).Error
}
