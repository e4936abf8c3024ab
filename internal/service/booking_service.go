package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("github.com/Eursukkul/hotel-booking/internal/service")

type CreateBookingInput struct {
	HotelID         uint
	RoomID          uint
	ClientEmail     string
	Client          ClientAttrs
	CheckIn         time.Time
	CheckOut        time.Time
	GuestsCount     int
	SpecialRequests string
	Channel         models.Channel
}

type BookingService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	Confirm(ctx context.Context, bookingID uint) (*models.Booking, error)
	// Cancel returns false without error when the booking is already
	// cancelled or completed.
	Cancel(ctx context.Context, bookingID uint, reason string) (bool, error)
	MarkCompleted(ctx context.Context, bookingID uint) (*models.Booking, error)
	RecordPayment(ctx context.Context, bookingID uint, amount decimal.Decimal, mode models.PaymentMode) (*models.Booking, error)
	FindConflicts(ctx context.Context, roomID uint, checkIn, checkOut time.Time, excludeBookingID *uint) ([]models.Booking, error)
	CompleteDue(ctx context.Context, asOf time.Time) (int, error)
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookings(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error)
}

type BookingOption func(*bookingService)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) BookingOption {
	return func(s *bookingService) { s.now = now }
}

// WithLockTimeout bounds how long a write waits for a row lock (Postgres only).
func WithLockTimeout(d time.Duration) BookingOption {
	return func(s *bookingService) { s.lockTimeout = d }
}

func WithAvailabilityCache(c AvailabilityCache) BookingOption {
	return func(s *bookingService) { s.cache = c }
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	roomRepo    repository.RoomRepository
	hotelRepo   repository.HotelRepository
	clients     ClientRegistry
	gate        SubscriptionGate
	notifier    NotificationPort
	cache       AvailabilityCache
	lockTimeout time.Duration
	now         func() time.Time
}

// NewBookingService wires the engine. notifier may be nil.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	roomRepo repository.RoomRepository,
	hotelRepo repository.HotelRepository,
	clients ClientRegistry,
	gate SubscriptionGate,
	notifier NotificationPort,
	opts ...BookingOption,
) BookingService {
	s := &bookingService{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		hotelRepo:   hotelRepo,
		clients:     clients,
		gate:        gate,
		notifier:    notifier,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *bookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (_ *models.Booking, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.CreateBooking", trace.WithAttributes(
		attribute.Int64("hotel.id", int64(in.HotelID)),
		attribute.Int64("room.id", int64(in.RoomID)),
	))
	defer func() { endSpan(span, err) }()

	// 1. Date range
	stay := models.NewStayRange(in.CheckIn, in.CheckOut)
	if !stay.Valid() {
		return nil, ErrInvalidDateRange
	}

	channel := in.Channel
	if channel == "" {
		channel = models.ChannelStaff
	}
	if channel != models.ChannelPortal && channel != models.ChannelStaff {
		return nil, ErrInvalidChannel
	}

	// 2. Subscription gate
	hotel, err := s.hotelRepo.FindByID(ctx, in.HotelID)
	if err != nil {
		return nil, notFound(err, ErrHotelNotFound)
	}
	if !s.gate.CanAcceptNewBookings(hotel) {
		return nil, ErrTenantNotAcceptingBookings
	}

	var result *models.Booking

	err = s.withRoomTx(ctx, func(tx *gorm.DB) error {
		// 3. Lock the room row. Everything below is decided under this lock.
		room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, in.RoomID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomUnavailable
			}
			return err
		}
		if !room.Active || room.HotelID != hotel.ID {
			return ErrRoomUnavailable
		}

		// 4. Capacity
		if in.GuestsCount < 1 {
			return ErrInvalidGuestsCount
		}
		if in.GuestsCount > room.Capacity {
			return ErrCapacityExceeded
		}

		// 5. Conflicts
		conflicts, err := s.bookingRepo.FindConflicts(ctx, tx, room.ID, stay, nil)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			ids := make([]uint, len(conflicts))
			for i, c := range conflicts {
				ids[i] = c.ID
			}
			return &ConflictError{BookingIDs: ids}
		}

		// 6. Resolve the client inside the same transaction
		client, _, err := s.clients.FindOrCreate(ctx, tx, in.ClientEmail, in.Client)
		if err != nil {
			return err
		}

		// 7. Persist
		status := channel.InitialStatus()
		booking := &models.Booking{
			Reference:       uuid.NewString(),
			HotelID:         room.HotelID,
			ClientID:        client.ID,
			RoomID:          room.ID,
			CheckInDate:     stay.CheckIn,
			CheckOutDate:    stay.CheckOut,
			Status:          status,
			PaymentStatus:   models.PaymentPending,
			Channel:         channel,
			GuestsCount:     in.GuestsCount,
			TotalPrice:      stay.Total(room.Price),
			PaidAmount:      decimal.Zero,
			SpecialRequests: in.SpecialRequests,
		}
		if status == models.StatusConfirmed {
			now := s.now()
			booking.ConfirmedAt = &now
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}

		// 8. Room follows confirmed bookings only
		if status == models.StatusConfirmed {
			if err := s.markRoomBooked(ctx, tx, room); err != nil {
				return err
			}
		}

		booking.Client = client
		booking.Room = room
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, result.HotelID)
	log.Printf("[BookingService] created booking %d (%s) room=%d %s..%s status=%s",
		result.ID, result.Reference, result.RoomID,
		result.CheckInDate.Format(models.DateLayout), result.CheckOutDate.Format(models.DateLayout), result.Status)

	if result.Status == models.StatusConfirmed {
		s.notify(ctx, models.NotifyBookingConfirmation, result.ID)
	}
	return result, nil
}

func (s *bookingService) Confirm(ctx context.Context, bookingID uint) (_ *models.Booking, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.Confirm", trace.WithAttributes(attribute.Int64("booking.id", int64(bookingID))))
	defer func() { endSpan(span, err) }()

	var result *models.Booking
	err = s.withRoomTx(ctx, func(tx *gorm.DB) error {
		booking, room, err := s.lockBookingAndRoom(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if !booking.Status.CanTransitionTo(models.StatusConfirmed) {
			return fmt.Errorf("%w: cannot confirm a %s booking", ErrInvalidTransition, booking.Status)
		}

		now := s.now()
		if err := s.bookingRepo.Update(ctx, tx, booking.ID, map[string]any{
			"status":       models.StatusConfirmed,
			"confirmed_at": now,
		}); err != nil {
			return err
		}
		booking.Status = models.StatusConfirmed
		booking.ConfirmedAt = &now

		if err := s.markRoomBooked(ctx, tx, room); err != nil {
			return err
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, result.HotelID)
	s.notify(ctx, models.NotifyBookingConfirmation, result.ID)
	return result, nil
}

func (s *bookingService) Cancel(ctx context.Context, bookingID uint, reason string) (_ bool, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.Cancel", trace.WithAttributes(attribute.Int64("booking.id", int64(bookingID))))
	defer func() { endSpan(span, err) }()

	var cancelled *models.Booking
	err = s.withRoomTx(ctx, func(tx *gorm.DB) error {
		booking, room, err := s.lockBookingAndRoom(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		// Already terminal: nothing to do, and no second notification.
		if booking.Status.Terminal() {
			return nil
		}
		if !booking.Status.CanTransitionTo(models.StatusCancelled) {
			return fmt.Errorf("%w: cannot cancel a %s booking", ErrInvalidTransition, booking.Status)
		}

		now := s.now()
		if err := s.bookingRepo.Update(ctx, tx, booking.ID, map[string]any{
			"status":              models.StatusCancelled,
			"cancelled_at":        now,
			"cancellation_reason": reason,
		}); err != nil {
			return err
		}
		booking.Status = models.StatusCancelled
		booking.CancelledAt = &now
		booking.CancellationReason = reason

		if err := s.releaseRoomIfIdle(ctx, tx, room, booking.ID); err != nil {
			return err
		}
		cancelled = booking
		return nil
	})
	if err != nil {
		return false, err
	}
	if cancelled == nil {
		log.Printf("[BookingService] cancel booking %d: already terminal, no-op", bookingID)
		return false, nil
	}

	s.invalidate(ctx, cancelled.HotelID)
	s.notify(ctx, models.NotifyBookingCancellation, cancelled.ID)
	return true, nil
}

func (s *bookingService) MarkCompleted(ctx context.Context, bookingID uint) (_ *models.Booking, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.MarkCompleted", trace.WithAttributes(attribute.Int64("booking.id", int64(bookingID))))
	defer func() { endSpan(span, err) }()

	var result *models.Booking
	err = s.withRoomTx(ctx, func(tx *gorm.DB) error {
		booking, room, err := s.lockBookingAndRoom(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if !booking.Status.CanTransitionTo(models.StatusCompleted) {
			return fmt.Errorf("%w: cannot complete a %s booking", ErrInvalidTransition, booking.Status)
		}

		now := s.now()
		if err := s.bookingRepo.Update(ctx, tx, booking.ID, map[string]any{
			"status":       models.StatusCompleted,
			"completed_at": now,
		}); err != nil {
			return err
		}
		booking.Status = models.StatusCompleted
		booking.CompletedAt = &now

		if err := s.releaseRoomIfIdle(ctx, tx, room, booking.ID); err != nil {
			return err
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, result.HotelID)
	return result, nil
}

func (s *bookingService) RecordPayment(ctx context.Context, bookingID uint, amount decimal.Decimal, mode models.PaymentMode) (_ *models.Booking, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.RecordPayment", trace.WithAttributes(
		attribute.Int64("booking.id", int64(bookingID)),
		attribute.String("payment.mode", string(mode)),
	))
	defer func() { endSpan(span, err) }()

	switch mode {
	case models.PaymentFull:
	case models.PaymentPartialMode:
		if !amount.IsPositive() {
			return nil, fmt.Errorf("%w: partial amount must be greater than zero", ErrInvalidPayment)
		}
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidPayment, mode)
	}

	var result *models.Booking
	err = s.withRoomTx(ctx, func(tx *gorm.DB) error {
		// Payment only touches the booking row, so the booking lock is enough.
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return notFound(err, ErrBookingNotFound)
		}

		paid := booking.TotalPrice
		status := models.PaymentPaid
		if mode == models.PaymentPartialMode {
			paid = booking.PaidAmount.Add(amount)
			if paid.LessThan(booking.TotalPrice) {
				status = models.PaymentPartial
			}
		}

		if err := s.bookingRepo.Update(ctx, tx, booking.ID, map[string]any{
			"paid_amount":    paid,
			"payment_status": status,
		}); err != nil {
			return err
		}
		booking.PaidAmount = paid
		booking.PaymentStatus = status
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[BookingService] payment on booking %d: mode=%s paid=%s/%s status=%s",
		result.ID, mode, result.PaidAmount.StringFixed(2), result.TotalPrice.StringFixed(2), result.PaymentStatus)
	s.notify(ctx, models.NotifyPaymentConfirmation, result.ID)
	return result, nil
}

// FindConflicts is the read-only form used by availability screens. It
// takes no lock, so its answer can be stale by the time a booking is made.
func (s *bookingService) FindConflicts(ctx context.Context, roomID uint, checkIn, checkOut time.Time, excludeBookingID *uint) ([]models.Booking, error) {
	stay := models.NewStayRange(checkIn, checkOut)
	if !stay.Valid() {
		return nil, ErrInvalidDateRange
	}
	if _, err := s.roomRepo.FindByID(ctx, roomID); err != nil {
		return nil, notFound(err, ErrRoomNotFound)
	}
	return s.bookingRepo.FindConflicts(ctx, s.bookingRepo.GetDB(), roomID, stay, excludeBookingID)
}

// CompleteDue completes every confirmed booking whose check-out is on or
// before asOf. It is meant to be driven by an external scheduler.
func (s *bookingService) CompleteDue(ctx context.Context, asOf time.Time) (int, error) {
	due, err := s.bookingRepo.FindDueForCompletion(ctx, models.Date(asOf))
	if err != nil {
		return 0, err
	}

	var (
		completed int
		errs      []error
	)
	for _, b := range due {
		if _, err := s.MarkCompleted(ctx, b.ID); err != nil {
			// Someone else moved it since the scan.
			if errors.Is(err, ErrInvalidTransition) {
				continue
			}
			errs = append(errs, fmt.Errorf("booking %d: %w", b.ID, err))
			continue
		}
		completed++
	}
	log.Printf("[BookingService] completion sweep as of %s: %d of %d completed",
		models.Date(asOf).Format(models.DateLayout), completed, len(due))
	return completed, errors.Join(errs...)
}

func (s *bookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrBookingNotFound)
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error) {
	return s.bookingRepo.List(ctx, filter)
}

// withRoomTx runs fn in a transaction and maps lock failures to
// ErrConcurrencyConflict.
func (s *bookingService) withRoomTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.lockTimeout > 0 && tx.Dialector.Name() == "postgres" {
			if err := tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockTimeout.Milliseconds())).Error; err != nil {
				return err
			}
		}
		return fn(tx)
	})
	return classifyStorageError(err)
}

// lockBookingAndRoom locks the booking row and then its room row. Every
// lifecycle transition takes the locks in this order.
func (s *bookingService) lockBookingAndRoom(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Booking, *models.Room, error) {
	booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
	if err != nil {
		return nil, nil, notFound(err, ErrBookingNotFound)
	}
	room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, booking.RoomID)
	if err != nil {
		return nil, nil, err
	}
	return booking, room, nil
}

func (s *bookingService) markRoomBooked(ctx context.Context, tx *gorm.DB, room *models.Room) error {
	next, ok := models.NextRoomStatus(room.Status, models.RoomEventBooked)
	if !ok {
		return nil
	}
	if err := s.roomRepo.UpdateStatus(ctx, tx, room.ID, next); err != nil {
		return err
	}
	room.Status = next
	return nil
}

// releaseRoomIfIdle frees a reserved or occupied room once no other active
// booking has a guest in it today. Cleaning and maintenance are left alone.
func (s *bookingService) releaseRoomIfIdle(ctx context.Context, tx *gorm.DB, room *models.Room, bookingID uint) error {
	next, ok := models.NextRoomStatus(room.Status, models.RoomEventReleased)
	if !ok {
		return nil
	}
	busy, err := s.bookingRepo.ExistsCovering(ctx, tx, room.ID, models.Date(s.now()), bookingID)
	if err != nil {
		return err
	}
	if busy {
		return nil
	}
	if err := s.roomRepo.UpdateStatus(ctx, tx, room.ID, next); err != nil {
		return err
	}
	room.Status = next
	return nil
}

func (s *bookingService) invalidate(ctx context.Context, hotelID uint) {
	if s.cache != nil {
		s.cache.Invalidate(context.WithoutCancel(ctx), hotelID)
	}
}

// notify runs after commit. Its failure is logged and never returned.
func (s *bookingService) notify(ctx context.Context, kind models.NotificationKind, bookingID uint) {
	if s.notifier == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	var err error
	switch kind {
	case models.NotifyBookingConfirmation:
		err = s.notifier.SendBookingConfirmation(ctx, bookingID)
	case models.NotifyBookingCancellation:
		err = s.notifier.SendBookingCancellation(ctx, bookingID)
	case models.NotifyPaymentConfirmation:
		err = s.notifier.SendPaymentConfirmation(ctx, bookingID)
	}
	if err != nil {
		log.Printf("[BookingService] %s for booking %d failed: %v", kind, bookingID, err)
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
