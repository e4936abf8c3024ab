package models

import (
	"strings"
	"time"
)

type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"email"`
	UserID    *string   `gorm:"type:varchar(64);index" json:"user_id,omitempty"`
	HotelID   *uint     `gorm:"index" json:"hotel_id,omitempty"`
	FirstName string    `gorm:"type:varchar(100)" json:"first_name"`
	LastName  string    `gorm:"type:varchar(100)" json:"last_name"`
	DNI       string    `gorm:"column:dni;type:varchar(40)" json:"dni"`
	Phone     string    `gorm:"type:varchar(40)" json:"phone"`
	Address   string    `gorm:"type:varchar(300)" json:"address"`
	Active    bool      `gorm:"not null" json:"active"`
	VIP       bool      `gorm:"column:vip;not null" json:"vip"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// NormalizeEmail is the identity key used to deduplicate clients.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
