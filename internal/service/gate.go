package service

import "github.com/Eursukkul/hotel-booking/internal/models"

// SubscriptionGate decides whether a tenant may take new bookings.
type SubscriptionGate interface {
	CanAcceptNewBookings(hotel *models.Hotel) bool
}

type subscriptionGate struct{}

func NewSubscriptionGate() SubscriptionGate {
	return subscriptionGate{}
}

func (subscriptionGate) CanAcceptNewBookings(hotel *models.Hotel) bool {
	return hotel != nil && hotel.CanAcceptNewBookings()
}
