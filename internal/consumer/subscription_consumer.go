package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/service"
	amqp "github.com/rabbitmq/amqp091-go"
)

// SubscriptionChange is published by the billing side whenever a tenant's
// subscription moves.
type SubscriptionChange struct {
	HotelID            uint                      `json:"hotel_id"`
	SubscriptionStatus models.SubscriptionStatus `json:"subscription_status"`
	Plan               *models.Plan              `json:"plan,omitempty"`
}

type SubscriptionConsumer struct {
	tenants service.TenantService
}

func NewSubscriptionConsumer(tenants service.TenantService) *SubscriptionConsumer {
	return &SubscriptionConsumer{tenants: tenants}
}

// Start applies subscription changes until msgs is closed.
func (sc *SubscriptionConsumer) Start(ctx context.Context, msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			sc.handleMessage(ctx, msg)
		}
		log.Println("[SubscriptionConsumer] channel closed, stopping consumer")
	}()
}

func (sc *SubscriptionConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	var change SubscriptionChange
	if err := json.Unmarshal(msg.Body, &change); err != nil {
		log.Printf("[SubscriptionConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	hotel, err := sc.tenants.ChangeSubscription(ctx, change.HotelID, change.SubscriptionStatus, change.Plan)
	if err != nil {
		// Unknown hotel or bad status will never succeed; drop instead of looping.
		if errors.Is(err, service.ErrHotelNotFound) || errors.Is(err, service.ErrInvalidSubscription) {
			log.Printf("[SubscriptionConsumer] dropping change for hotel %d: %v", change.HotelID, err)
			msg.Nack(false, false)
			return
		}
		log.Printf("[SubscriptionConsumer] failed to apply change for hotel %d: %v", change.HotelID, err)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[SubscriptionConsumer] hotel %d is now %s (blocked=%t)", hotel.ID, hotel.SubscriptionStatus, hotel.IsBlocked)
	msg.Ack(false)
}
