package service

import (
	"context"
	"fmt"
	"log"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seed is the bulk-import document. Dates are YYYY-MM-DD, money is a
// decimal string.
type Seed struct {
	Hotels []SeedHotel `yaml:"hotels"`
}

type SeedHotel struct {
	Slug               string                    `yaml:"slug"`
	Name               string                    `yaml:"name"`
	Email              string                    `yaml:"email"`
	Phone              string                    `yaml:"phone"`
	Address            string                    `yaml:"address"`
	Plan               models.Plan               `yaml:"plan"`
	SubscriptionStatus models.SubscriptionStatus `yaml:"subscription_status"`
	Rooms              []SeedRoom                `yaml:"rooms"`
	Bookings           []SeedBooking             `yaml:"bookings"`
}

type SeedRoom struct {
	Number   string            `yaml:"number"`
	Type     models.RoomType   `yaml:"type"`
	Capacity int               `yaml:"capacity"`
	Price    string            `yaml:"price"`
	Status   models.RoomStatus `yaml:"status"`
	Active   *bool             `yaml:"active"`
}

type SeedBooking struct {
	Room            string               `yaml:"room"`
	ClientEmail     string               `yaml:"client_email"`
	ClientName      string               `yaml:"client_name"`
	ClientPhone     string               `yaml:"client_phone"`
	CheckIn         string               `yaml:"check_in"`
	CheckOut        string               `yaml:"check_out"`
	Status          models.BookingStatus `yaml:"status"`
	GuestsCount     int                  `yaml:"guests_count"`
	PaidAmount      string               `yaml:"paid_amount"`
	SpecialRequests string               `yaml:"special_requests"`
}

type ImportReport struct {
	Hotels   int
	Rooms    int
	Clients  int
	Bookings int
}

// BulkImporter loads seed data as-is. It skips the subscription gate,
// conflict detection and room status sync, so overlapping seed bookings
// are stored exactly as written. Only the import CLI command reaches it.
type BulkImporter struct {
	db          *gorm.DB
	hotelRepo   repository.HotelRepository
	roomRepo    repository.RoomRepository
	bookingRepo repository.BookingRepository
	clients     ClientRegistry
}

func NewBulkImporter(db *gorm.DB, hotelRepo repository.HotelRepository, roomRepo repository.RoomRepository, bookingRepo repository.BookingRepository, clients ClientRegistry) *BulkImporter {
	return &BulkImporter{db: db, hotelRepo: hotelRepo, roomRepo: roomRepo, bookingRepo: bookingRepo, clients: clients}
}

// Import writes the whole seed in one transaction; any error rolls back everything.
func (b *BulkImporter) Import(ctx context.Context, seed Seed) (ImportReport, error) {
	var report ImportReport

	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sh := range seed.Hotels {
			hotel := &models.Hotel{
				Slug:               sh.Slug,
				Name:               sh.Name,
				Email:              sh.Email,
				Phone:              sh.Phone,
				Address:            sh.Address,
				Plan:               sh.Plan,
				SubscriptionStatus: sh.SubscriptionStatus,
			}
			if hotel.Plan == "" {
				hotel.Plan = models.PlanStarter
			}
			if hotel.SubscriptionStatus == "" {
				hotel.SubscriptionStatus = models.SubscriptionActive
			}
			if !hotel.Plan.Valid() || !hotel.SubscriptionStatus.Valid() {
				return fmt.Errorf("hotel %s: %w", sh.Slug, ErrInvalidSubscription)
			}
			hotel.SyncBlockFromSubscription()
			if err := b.hotelRepo.Create(ctx, tx, hotel); err != nil {
				return fmt.Errorf("hotel %s: %w", sh.Slug, err)
			}
			report.Hotels++

			rooms := make(map[string]*models.Room, len(sh.Rooms))
			for _, sr := range sh.Rooms {
				room, err := seedRoom(hotel.ID, sr)
				if err != nil {
					return fmt.Errorf("hotel %s room %s: %w", sh.Slug, sr.Number, err)
				}
				if err := b.roomRepo.Create(ctx, tx, room); err != nil {
					return fmt.Errorf("hotel %s room %s: %w", sh.Slug, sr.Number, err)
				}
				rooms[room.Number] = room
				report.Rooms++
			}

			bookings := make([]models.Booking, 0, len(sh.Bookings))
			for i, sb := range sh.Bookings {
				room, ok := rooms[sb.Room]
				if !ok {
					return fmt.Errorf("hotel %s booking #%d: unknown room %q", sh.Slug, i+1, sb.Room)
				}
				client, created, err := b.clients.FindOrCreate(ctx, tx, sb.ClientEmail, ClientAttrs{
					FullName: sb.ClientName,
					Phone:    sb.ClientPhone,
					HotelID:  &hotel.ID,
				})
				if err != nil {
					return fmt.Errorf("hotel %s booking #%d: %w", sh.Slug, i+1, err)
				}
				if created {
					report.Clients++
				}
				booking, err := seedBooking(room, client.ID, sb)
				if err != nil {
					return fmt.Errorf("hotel %s booking #%d: %w", sh.Slug, i+1, err)
				}
				bookings = append(bookings, *booking)
			}
			if err := b.bookingRepo.CreateInBatches(ctx, tx, bookings); err != nil {
				return fmt.Errorf("hotel %s bookings: %w", sh.Slug, err)
			}
			report.Bookings += len(bookings)
		}
		return nil
	})
	if err != nil {
		return ImportReport{}, err
	}

	log.Printf("[BulkImporter] imported %d hotels, %d rooms, %d clients, %d bookings (checks bypassed)",
		report.Hotels, report.Rooms, report.Clients, report.Bookings)
	return report, nil
}

func seedRoom(hotelID uint, sr SeedRoom) (*models.Room, error) {
	price, err := decimal.NewFromString(sr.Price)
	if err != nil {
		return nil, fmt.Errorf("%w: price %q", ErrInvalidRoom, sr.Price)
	}
	if sr.Capacity < 1 || price.IsNegative() {
		return nil, ErrInvalidRoom
	}
	room := &models.Room{
		HotelID:  hotelID,
		Number:   sr.Number,
		Type:     sr.Type,
		Capacity: sr.Capacity,
		Price:    price,
		Status:   sr.Status,
		Active:   true,
	}
	if room.Type == "" {
		room.Type = models.RoomDouble
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	if !room.Type.Valid() {
		return nil, fmt.Errorf("%w: type %q", ErrInvalidRoom, room.Type)
	}
	if !room.Status.Valid() {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidRoomStatus, room.Status)
	}
	if sr.Active != nil {
		room.Active = *sr.Active
	}
	return room, nil
}

// seedBooking keeps hotel_id in step with the room even on this path.
func seedBooking(room *models.Room, clientID uint, sb SeedBooking) (*models.Booking, error) {
	in, err := models.ParseDate(sb.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("%w: check_in %q", ErrInvalidDateRange, sb.CheckIn)
	}
	out, err := models.ParseDate(sb.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("%w: check_out %q", ErrInvalidDateRange, sb.CheckOut)
	}
	stay := models.NewStayRange(in, out)
	if !stay.Valid() {
		return nil, ErrInvalidDateRange
	}

	status := sb.Status
	if status == "" {
		status = models.StatusConfirmed
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidTransition, status)
	}
	guests := sb.GuestsCount
	if guests < 1 {
		guests = 1
	}

	total := stay.Total(room.Price)
	paid := decimal.Zero
	if sb.PaidAmount != "" {
		if paid, err = decimal.NewFromString(sb.PaidAmount); err != nil || paid.IsNegative() {
			return nil, fmt.Errorf("%w: paid_amount %q", ErrInvalidPayment, sb.PaidAmount)
		}
	}
	payment := models.PaymentPending
	switch {
	case paid.GreaterThanOrEqual(total):
		payment = models.PaymentPaid
	case paid.IsPositive():
		payment = models.PaymentPartial
	}

	return &models.Booking{
		Reference:       uuid.NewString(),
		HotelID:         room.HotelID,
		ClientID:        clientID,
		RoomID:          room.ID,
		CheckInDate:     stay.CheckIn,
		CheckOutDate:    stay.CheckOut,
		Status:          status,
		PaymentStatus:   payment,
		Channel:         models.ChannelImport,
		GuestsCount:     guests,
		TotalPrice:      total,
		PaidAmount:      paid,
		SpecialRequests: sb.SpecialRequests,
	}, nil
}
