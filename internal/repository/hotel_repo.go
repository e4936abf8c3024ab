package repository

import (
	"context"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"gorm.io/gorm"
)

type HotelRepository interface {
	Create(ctx context.Context, tx *gorm.DB, hotel *models.Hotel) error
	FindByID(ctx context.Context, id uint) (*models.Hotel, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Hotel, error)
	FindBySlug(ctx context.Context, slug string) (*models.Hotel, error)
	FindAll(ctx context.Context) ([]models.Hotel, error)
	UpdateSubscription(ctx context.Context, tx *gorm.DB, hotel *models.Hotel) error
	GetDB() *gorm.DB
}

type hotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) HotelRepository {
	return &hotelRepository{db: db}
}

func (r *hotelRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *hotelRepository) Create(ctx context.Context, tx *gorm.DB, hotel *models.Hotel) error {
	return tx.WithContext(ctx).Create(hotel).Error
}

func (r *hotelRepository) FindByID(ctx context.Context, id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := r.db.WithContext(ctx).First(&hotel, id).Error; err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *hotelRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := forUpdate(tx.WithContext(ctx)).First(&hotel, id).Error; err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *hotelRepository) FindBySlug(ctx context.Context, slug string) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&hotel).Error; err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *hotelRepository) FindAll(ctx context.Context) ([]models.Hotel, error) {
	var hotels []models.Hotel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&hotels).Error; err != nil {
		return nil, err
	}
	return hotels, nil
}

// UpdateSubscription writes the subscription fields together so is_blocked
// can never be persisted out of step with subscription_status.
func (r *hotelRepository) UpdateSubscription(ctx context.Context, tx *gorm.DB, hotel *models.Hotel) error {
	return tx.WithContext(ctx).
		Model(&models.Hotel{}).
		Where("id = ?", hotel.ID).
		Updates(map[string]any{
			"plan":                hotel.Plan,
			"subscription_status": hotel.SubscriptionStatus,
			"is_blocked":          hotel.IsBlocked,
			"trial_until":         hotel.TrialUntil,
		}).Error
}
