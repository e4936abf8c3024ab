package repository

import (
	"context"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"gorm.io/gorm"
)

type RoomRepository interface {
	Create(ctx context.Context, tx *gorm.DB, room *models.Room) error
	FindByID(ctx context.Context, id uint) (*models.Room, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error)
	FindByHotel(ctx context.Context, hotelID uint, status *models.RoomStatus) ([]models.Room, error)
	FindCandidates(ctx context.Context, hotelID uint, guests int) ([]models.Room, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, roomID uint, status models.RoomStatus) error
	GetDB() *gorm.DB
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *roomRepository) Create(ctx context.Context, tx *gorm.DB, room *models.Room) error {
	return tx.WithContext(ctx).Create(room).Error
}

func (r *roomRepository) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// FindByIDForUpdate locks the room row until tx ends. Every write that
// depends on the room's booking calendar goes through this lock.
func (r *roomRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error) {
	var room models.Room
	if err := forUpdate(tx.WithContext(ctx)).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) FindByHotel(ctx context.Context, hotelID uint, status *models.RoomStatus) ([]models.Room, error) {
	var rooms []models.Room
	q := r.db.WithContext(ctx).Where("hotel_id = ?", hotelID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("number ASC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// FindCandidates returns rooms that could host guests, ignoring dates.
func (r *roomRepository) FindCandidates(ctx context.Context, hotelID uint, guests int) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND active = ? AND capacity >= ? AND status <> ?", hotelID, true, guests, models.RoomMaintenance).
		Order("price ASC, number ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, roomID uint, status models.RoomStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", roomID).
		Update("status", status).Error
}
