package cli

import (
	"log"

	"github.com/Eursukkul/hotel-booking/config"
	"github.com/Eursukkul/hotel-booking/internal/notification"
	"github.com/Eursukkul/hotel-booking/internal/repository"
	"github.com/Eursukkul/hotel-booking/internal/service"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// app is the wired object graph shared by the subcommands.
type app struct {
	logRepo  repository.NotificationLogRepository
	tenants  service.TenantService
	rooms    service.RoomService
	clients  service.ClientRegistry
	bookings service.BookingService
	importer *service.BulkImporter
}

// newApp wires repositories and services. avail may be nil.
func newApp(cfg *config.Config, db *gorm.DB, publisher notification.Publisher, avail service.AvailabilityCache) *app {
	hotelRepo := repository.NewHotelRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	clientRepo := repository.NewClientRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	logRepo := repository.NewNotificationLogRepository(db)

	tag, err := language.Parse(cfg.NotificationLocale)
	if err != nil {
		log.Printf("[Config] bad NOTIFICATION_LOCALE %q, falling back to en: %v", cfg.NotificationLocale, err)
		tag = language.English
	}
	dispatcher := notification.NewDispatcher(bookingRepo, logRepo, publisher, notification.NewRenderer(tag))

	clients := service.NewClientRegistry(clientRepo)
	opts := []service.BookingOption{service.WithLockTimeout(cfg.LockTimeout)}
	if avail != nil {
		opts = append(opts, service.WithAvailabilityCache(avail))
	}

	return &app{
		logRepo:  logRepo,
		tenants:  service.NewTenantService(hotelRepo, cfg.TrialDays),
		rooms:    service.NewRoomService(roomRepo, hotelRepo, bookingRepo, avail),
		clients:  clients,
		bookings: service.NewBookingService(bookingRepo, roomRepo, hotelRepo, clients, service.NewSubscriptionGate(), dispatcher, opts...),
		importer: service.NewBulkImporter(db, hotelRepo, roomRepo, bookingRepo, clients),
	}
}
