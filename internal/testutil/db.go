// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB opens a fresh migrated in-memory SQLite database. A single
// connection serializes transactions, so code under test must run every
// query of a transaction through its tx handle.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_foreign_keys=on", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func SeedHotel(t *testing.T, db *gorm.DB, slug string, status models.SubscriptionStatus) *models.Hotel {
	t.Helper()
	h := &models.Hotel{
		Slug:               slug,
		Name:               "Hotel " + slug,
		Email:              slug + "@example.com",
		Plan:               models.PlanStarter,
		SubscriptionStatus: status,
	}
	h.SyncBlockFromSubscription()
	require.NoError(t, db.Create(h).Error)
	return h
}

func SeedRoom(t *testing.T, db *gorm.DB, hotelID uint, number string, capacity int, price string) *models.Room {
	t.Helper()
	r := &models.Room{
		HotelID:  hotelID,
		Number:   number,
		Type:     models.RoomDouble,
		Capacity: capacity,
		Price:    decimal.RequireFromString(price),
		Status:   models.RoomAvailable,
		Active:   true,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func SeedClient(t *testing.T, db *gorm.DB, email string) *models.Client {
	t.Helper()
	c := &models.Client{Email: models.NormalizeEmail(email), FirstName: "Test", LastName: "Guest", Active: true}
	require.NoError(t, db.Create(c).Error)
	return c
}

// SeedBooking inserts a booking row directly, bypassing every check.
func SeedBooking(t *testing.T, db *gorm.DB, room *models.Room, clientID uint, in, out time.Time, status models.BookingStatus) *models.Booking {
	t.Helper()
	stay := models.NewStayRange(in, out)
	b := &models.Booking{
		Reference:     fmt.Sprintf("seed-%d", dbSeq.Add(1)),
		HotelID:       room.HotelID,
		ClientID:      clientID,
		RoomID:        room.ID,
		CheckInDate:   stay.CheckIn,
		CheckOutDate:  stay.CheckOut,
		Status:        status,
		PaymentStatus: models.PaymentPending,
		Channel:       models.ChannelImport,
		GuestsCount:   1,
		TotalPrice:    stay.Total(room.Price),
		PaidAmount:    decimal.Zero,
	}
	require.NoError(t, db.Create(b).Error)
	return b
}
