package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/redis/go-redis/v9"
)

// Availability caches room search results per hotel. Each hotel has a
// version counter that is part of every entry key; bumping it orphans all
// of the hotel's entries at once and lets the TTL clean them up.
type Availability struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailability(rdb *redis.Client, ttl time.Duration) *Availability {
	return &Availability{rdb: rdb, ttl: ttl}
}

func versionKey(hotelID uint) string {
	return fmt.Sprintf("availability:hotel:%d:version", hotelID)
}

func entryKey(hotelID uint, version int64, stay models.StayRange, guests int) string {
	return fmt.Sprintf("availability:hotel:%d:v%d:%s:%s:%d",
		hotelID, version,
		stay.CheckIn.Format(models.DateLayout), stay.CheckOut.Format(models.DateLayout),
		guests)
}

// Version returns the hotel's current entry version. A hotel that was
// never invalidated is at version 0.
func (a *Availability) Version(ctx context.Context, hotelID uint) (int64, error) {
	v, err := a.rdb.Get(ctx, versionKey(hotelID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (a *Availability) Rooms(ctx context.Context, hotelID uint, version int64, stay models.StayRange, guests int) ([]models.Room, bool) {
	raw, err := a.rdb.Get(ctx, entryKey(hotelID, version, stay, guests)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[Cache] read availability for hotel %d: %v", hotelID, err)
		}
		return nil, false
	}
	var rooms []models.Room
	if err := json.Unmarshal(raw, &rooms); err != nil {
		log.Printf("[Cache] corrupt availability entry for hotel %d: %v", hotelID, err)
		return nil, false
	}
	return rooms, true
}

// StoreRooms writes rooms under version, which must be the version read
// before the rooms were computed.
func (a *Availability) StoreRooms(ctx context.Context, hotelID uint, version int64, stay models.StayRange, guests int, rooms []models.Room) {
	raw, err := json.Marshal(rooms)
	if err != nil {
		log.Printf("[Cache] marshal availability: %v", err)
		return
	}
	if err := a.rdb.Set(ctx, entryKey(hotelID, version, stay, guests), raw, a.ttl).Err(); err != nil {
		log.Printf("[Cache] write availability for hotel %d: %v", hotelID, err)
	}
}

func (a *Availability) Invalidate(ctx context.Context, hotelID uint) {
	if err := a.rdb.Incr(ctx, versionKey(hotelID)).Err(); err != nil {
		log.Printf("[Cache] invalidate hotel %d: %v", hotelID, err)
	}
}
