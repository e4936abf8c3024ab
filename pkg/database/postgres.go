package database

import (
	"fmt"
	"log"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	log.Println("[Database] connected to postgres")
	return db, nil
}

// Migrate creates or updates the schema. It is safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Hotel{},
		&models.Room{},
		&models.Client{},
		&models.Booking{},
		&models.NotificationLog{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// Partial index backing the conflict query: only pending/confirmed rows can block.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_booking_active_room
		ON bookings (room_id, check_in_date, check_out_date)
		WHERE status IN ('pending', 'confirmed')
	`).Error; err != nil {
		return fmt.Errorf("create active booking index: %w", err)
	}

	return nil
}
