package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/repository"
	"gorm.io/datatypes"
)

// Publisher hands a rendered message to the delivery system.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Message is what goes on the wire to the mail worker.
type Message struct {
	Kind      models.NotificationKind `json:"kind"`
	BookingID uint                    `json:"booking_id"`
	Reference string                  `json:"reference"`
	Recipient string                  `json:"recipient"`
	Subject   string                  `json:"subject"`
	Body      string                  `json:"body"`
}

// Dispatcher implements the booking engine's notification port. Each
// attempt leaves a notification_logs row whose status tells whether it
// reached the publisher.
type Dispatcher struct {
	bookingRepo repository.BookingRepository
	logRepo     repository.NotificationLogRepository
	publisher   Publisher
	renderer    *Renderer
	now         func() time.Time
}

func NewDispatcher(bookingRepo repository.BookingRepository, logRepo repository.NotificationLogRepository, publisher Publisher, renderer *Renderer) *Dispatcher {
	return &Dispatcher{
		bookingRepo: bookingRepo,
		logRepo:     logRepo,
		publisher:   publisher,
		renderer:    renderer,
		now:         time.Now,
	}
}

func (d *Dispatcher) SendBookingConfirmation(ctx context.Context, bookingID uint) error {
	return d.send(ctx, models.NotifyBookingConfirmation, bookingID)
}

func (d *Dispatcher) SendBookingCancellation(ctx context.Context, bookingID uint) error {
	return d.send(ctx, models.NotifyBookingCancellation, bookingID)
}

func (d *Dispatcher) SendPaymentConfirmation(ctx context.Context, bookingID uint) error {
	return d.send(ctx, models.NotifyPaymentConfirmation, bookingID)
}

func (d *Dispatcher) send(ctx context.Context, kind models.NotificationKind, bookingID uint) error {
	booking, err := d.bookingRepo.FindDetailed(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("load booking %d: %w", bookingID, err)
	}
	if booking.Client == nil || booking.Hotel == nil || booking.Room == nil {
		return errors.New("booking is missing client, hotel or room")
	}

	subject, body := d.renderer.Render(kind, booking)
	msg := Message{
		Kind:      kind,
		BookingID: booking.ID,
		Reference: booking.Reference,
		Recipient: booking.Client.Email,
		Subject:   subject,
		Body:      body,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	entry := &models.NotificationLog{
		BookingID: booking.ID,
		ClientID:  booking.ClientID,
		Kind:      kind,
		Recipient: msg.Recipient,
		Subject:   subject,
		Body:      body,
		Payload:   datatypes.JSON(payload),
		Status:    models.NotificationPending,
	}
	if err := d.logRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("create notification log: %w", err)
	}

	if err := d.publisher.Publish(ctx, "notification."+string(kind), msg); err != nil {
		if uerr := d.logRepo.UpdateStatus(ctx, entry.ID, map[string]any{
			"status":        models.NotificationFailed,
			"error_message": err.Error(),
		}); uerr != nil {
			log.Printf("[Notification] failed to mark log %d as failed: %v", entry.ID, uerr)
		}
		return fmt.Errorf("publish %s: %w", kind, err)
	}

	sentAt := d.now()
	if err := d.logRepo.UpdateStatus(ctx, entry.ID, map[string]any{
		"status":  models.NotificationSent,
		"sent_at": sentAt,
	}); err != nil {
		return fmt.Errorf("mark notification sent: %w", err)
	}
	log.Printf("[Notification] %s for booking %d queued to %s", kind, booking.ID, msg.Recipient)
	return nil
}

// LogPublisher is used when no broker is configured. It only writes to the log.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, routingKey string, payload any) error {
	if m, ok := payload.(Message); ok {
		log.Printf("[Notification] (no broker) %s -> %s: %s", routingKey, m.Recipient, m.Subject)
		return nil
	}
	log.Printf("[Notification] (no broker) %s", routingKey)
	return nil
}
