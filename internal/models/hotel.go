package models

import "time"

type Plan string

const (
	PlanStarter Plan = "starter"
	PlanGrow    Plan = "grow"
)

type SubscriptionStatus string

const (
	SubscriptionTrial     SubscriptionStatus = "trial"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionBlocked   SubscriptionStatus = "blocked"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionTrial, SubscriptionActive, SubscriptionBlocked, SubscriptionCancelled:
		return true
	}
	return false
}

// Permits reports whether a tenant in this subscription state may take new bookings.
func (s SubscriptionStatus) Permits() bool {
	return s == SubscriptionTrial || s == SubscriptionActive
}

func (p Plan) Valid() bool {
	return p == PlanStarter || p == PlanGrow
}

type Hotel struct {
	ID                 uint               `gorm:"primaryKey" json:"id"`
	Slug               string             `gorm:"type:varchar(80);uniqueIndex;not null" json:"slug"`
	Name               string             `gorm:"type:varchar(200);not null" json:"name"`
	Email              string             `gorm:"type:varchar(200)" json:"email"`
	Phone              string             `gorm:"type:varchar(40)" json:"phone"`
	Address            string             `gorm:"type:varchar(300)" json:"address"`
	Plan               Plan               `gorm:"type:varchar(20);not null" json:"plan"`
	SubscriptionStatus SubscriptionStatus `gorm:"type:varchar(20);not null" json:"subscription_status"`
	IsBlocked          bool               `gorm:"not null" json:"is_blocked"`
	TrialUntil         *time.Time         `json:"trial_until,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// CanAcceptNewBookings is the subscription gate. It never consults the
// database and has no side effects.
func (h *Hotel) CanAcceptNewBookings() bool {
	return h.SubscriptionStatus.Permits() && !h.IsBlocked
}

// SyncBlockFromSubscription recomputes IsBlocked. Call it after every
// change of SubscriptionStatus.
func (h *Hotel) SyncBlockFromSubscription() {
	h.IsBlocked = !h.SubscriptionStatus.Permits()
}
