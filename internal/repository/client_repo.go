package repository

import (
	"context"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClientRepository interface {
	CreateIfAbsent(ctx context.Context, tx *gorm.DB, client *models.Client) (bool, error)
	FindByID(ctx context.Context, id uint) (*models.Client, error)
	FindByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.Client, error)
	FindAll(ctx context.Context, hotelID *uint) ([]models.Client, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, clientID uint, fields map[string]any) error
	GetDB() *gorm.DB
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) GetDB() *gorm.DB {
	return r.db
}

// CreateIfAbsent inserts client unless its email is already taken. It
// reports false when another writer holds the email; client is then left
// without an ID.
func (r *clientRepository) CreateIfAbsent(ctx context.Context, tx *gorm.DB, client *models.Client) (bool, error) {
	result := tx.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(client)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *clientRepository) FindByID(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// FindByEmail expects an already normalized email.
func (r *clientRepository) FindByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.Client, error) {
	var client models.Client
	if err := tx.WithContext(ctx).Where("email = ?", email).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) FindAll(ctx context.Context, hotelID *uint) ([]models.Client, error) {
	var clients []models.Client
	q := r.db.WithContext(ctx)
	if hotelID != nil {
		q = q.Where("hotel_id = ?", *hotelID)
	}
	if err := q.Order("id ASC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepository) UpdateFields(ctx context.Context, tx *gorm.DB, clientID uint, fields map[string]any) error {
	return tx.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", clientID).
		Updates(fields).Error
}
